package main

import (
	"context"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"leaveboard/internal/api"
)

type LoginPage struct {
	app.Compo

	username string
	password string
	busy     bool
	errMsg   string
}

func (l *LoginPage) OnMount(ctx app.Context) {
	l.redirectIfAuthed(ctx)
}

func (l *LoginPage) redirectIfAuthed(ctx app.Context) {
	if settleSession(ctx, l.redirectIfAuthed) && store.Authenticated() {
		navigateByRole(ctx)
	}
}

func (l *LoginPage) onSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if l.busy {
		return
	}
	l.busy = true
	l.errMsg = ""

	creds := api.Credentials{Username: l.username, Password: l.password}
	ctx.Async(func() {
		result := store.Login(context.Background(), creds)
		ctx.Dispatch(func(ctx app.Context) {
			l.busy = false
			if !result.OK {
				l.errMsg = result.Err
				return
			}
			navigateByRole(ctx)
		})
	})
}

func (l *LoginPage) Render() app.UI {
	return app.Div().
		Class("page auth-page").
		Body(
			&navbar{},
			app.Main().Class("auth-card").Body(
				app.H1().Text("Sign in"),
				app.If(l.errMsg != "", func() app.UI {
					return app.Div().Class("banner banner-error").Text(l.errMsg)
				}),
				app.Form().OnSubmit(l.onSubmit).Body(
					app.Label().For("username").Text("Username"),
					app.Input().
						ID("username").
						Type("text").
						Value(l.username).
						OnInput(func(ctx app.Context, e app.Event) {
							l.username = ctx.JSSrc().Get("value").String()
						}),
					app.Label().For("password").Text("Password"),
					app.Input().
						ID("password").
						Type("password").
						Value(l.password).
						OnInput(func(ctx app.Context, e app.Event) {
							l.password = ctx.JSSrc().Get("value").String()
						}),
					app.Button().
						Class("btn btn-primary").
						Type("submit").
						Disabled(l.busy).
						Text("Sign in"),
				),
				app.P().Class("auth-alt").Body(
					app.A().Href("/forgot-password").Text("Forgot password?"),
					app.Text(" · "),
					app.A().Href("/register").Text("Create an account"),
				),
			),
		)
}
