package main

import (
	"context"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"leaveboard/internal/api"
)

type RegisterPage struct {
	app.Compo

	form   api.Registration
	busy   bool
	errMsg string
}

func (r *RegisterPage) OnMount(ctx app.Context) {
	if r.form.Role == "" {
		r.form.Role = "employee"
	}
	r.redirectIfAuthed(ctx)
}

func (r *RegisterPage) redirectIfAuthed(ctx app.Context) {
	if settleSession(ctx, r.redirectIfAuthed) && store.Authenticated() {
		navigateByRole(ctx)
	}
}

func (r *RegisterPage) onSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if r.busy {
		return
	}
	r.busy = true
	r.errMsg = ""

	form := r.form
	ctx.Async(func() {
		result := store.Register(context.Background(), form)
		ctx.Dispatch(func(ctx app.Context) {
			r.busy = false
			if !result.OK {
				r.errMsg = result.Err
				return
			}
			navigateByRole(ctx)
		})
	})
}

func (r *RegisterPage) field(label, id, typ string, value string, set func(string)) app.UI {
	return app.Div().Class("form-field").Body(
		app.Label().For(id).Text(label),
		app.Input().
			ID(id).
			Type(typ).
			Value(value).
			OnInput(func(ctx app.Context, e app.Event) {
				set(ctx.JSSrc().Get("value").String())
			}),
	)
}

func (r *RegisterPage) Render() app.UI {
	return app.Div().
		Class("page auth-page").
		Body(
			&navbar{},
			app.Main().Class("auth-card").Body(
				app.H1().Text("Create an account"),
				app.If(r.errMsg != "", func() app.UI {
					return app.Div().Class("banner banner-error").Text(r.errMsg)
				}),
				app.Form().OnSubmit(r.onSubmit).Body(
					r.field("Full name", "full-name", "text", r.form.FullName, func(v string) { r.form.FullName = v }),
					r.field("Username", "username", "text", r.form.Username, func(v string) { r.form.Username = v }),
					r.field("Email", "email", "email", r.form.Email, func(v string) { r.form.Email = v }),
					r.field("Department", "department", "text", r.form.Department, func(v string) { r.form.Department = v }),
					r.field("Password", "password", "password", r.form.Password, func(v string) { r.form.Password = v }),
					app.Div().Class("form-field").Body(
						app.Label().For("role").Text("Role"),
						app.Select().
							ID("role").
							OnChange(func(ctx app.Context, e app.Event) {
								r.form.Role = ctx.JSSrc().Get("value").String()
							}).
							Body(
								app.Option().Value("employee").Text("Employee").Selected(r.form.Role == "employee"),
								app.Option().Value("manager").Text("Manager").Selected(r.form.Role == "manager"),
							),
					),
					app.Button().
						Class("btn btn-primary").
						Type("submit").
						Disabled(r.busy).
						Text("Create account"),
				),
				app.P().Class("auth-alt").Body(
					app.Text("Already have an account? "),
					app.A().Href("/login").Text("Sign in"),
				),
			),
		)
}
