package main

import (
	"context"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// ForgotPasswordPage runs the two-step reset flow: request a code for
// an email address, then redeem it with a new password.
type ForgotPasswordPage struct {
	app.Compo

	email       string
	otp         string
	newPassword string

	codeSent bool
	done     bool
	busy     bool
	errMsg   string
}

func (f *ForgotPasswordPage) onRequestCode(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if f.busy {
		return
	}
	f.busy = true
	f.errMsg = ""

	email := f.email
	ctx.Async(func() {
		err := client.SendPasswordResetCode(context.Background(), email)
		ctx.Dispatch(func(app.Context) {
			f.busy = false
			if err != nil {
				f.errMsg = err.Error()
				return
			}
			f.codeSent = true
		})
	})
}

func (f *ForgotPasswordPage) onReset(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if f.busy {
		return
	}
	f.busy = true
	f.errMsg = ""

	email, otp, password := f.email, f.otp, f.newPassword
	ctx.Async(func() {
		err := client.ResetPassword(context.Background(), email, otp, password)
		ctx.Dispatch(func(app.Context) {
			f.busy = false
			if err != nil {
				f.errMsg = err.Error()
				return
			}
			f.done = true
		})
	})
}

func (f *ForgotPasswordPage) Render() app.UI {
	return app.Div().
		Class("page auth-page").
		Body(
			&navbar{},
			app.Main().Class("auth-card").Body(
				app.H1().Text("Reset password"),
				app.If(f.errMsg != "", func() app.UI {
					return app.Div().Class("banner banner-error").Text(f.errMsg)
				}),
				app.If(f.done, func() app.UI {
					return app.Div().Body(
						app.P().Text("Your password has been reset."),
						app.A().Class("btn btn-primary").Href("/login").Text("Sign in"),
					)
				}).ElseIf(f.codeSent, func() app.UI {
					return app.Form().OnSubmit(f.onReset).Body(
						app.P().Text("If that address has an account, a reset code is on its way."),
						app.Label().For("otp").Text("Reset code"),
						app.Input().
							ID("otp").
							Type("text").
							Value(f.otp).
							OnInput(func(ctx app.Context, e app.Event) {
								f.otp = ctx.JSSrc().Get("value").String()
							}),
						app.Label().For("new-password").Text("New password"),
						app.Input().
							ID("new-password").
							Type("password").
							Value(f.newPassword).
							OnInput(func(ctx app.Context, e app.Event) {
								f.newPassword = ctx.JSSrc().Get("value").String()
							}),
						app.Button().
							Class("btn btn-primary").
							Type("submit").
							Disabled(f.busy).
							Text("Reset password"),
					)
				}).Else(func() app.UI {
					return app.Form().OnSubmit(f.onRequestCode).Body(
						app.Label().For("email").Text("Email"),
						app.Input().
							ID("email").
							Type("email").
							Value(f.email).
							OnInput(func(ctx app.Context, e app.Event) {
								f.email = ctx.JSSrc().Get("value").String()
							}),
						app.Button().
							Class("btn btn-primary").
							Type("submit").
							Disabled(f.busy).
							Text("Send reset code"),
					)
				}),
				app.P().Class("auth-alt").Body(
					app.A().Href("/login").Text("Back to sign in"),
				),
			),
		)
}
