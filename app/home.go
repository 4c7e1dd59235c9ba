package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// HomePage is the public landing page. Authenticated visitors never see
// it: the root route branches by role on every navigation.
type HomePage struct {
	app.Compo
}

func (h *HomePage) OnMount(ctx app.Context) {
	h.branch(ctx)
}

func (h *HomePage) OnNav(ctx app.Context) {
	h.branch(ctx)
}

func (h *HomePage) branch(ctx app.Context) {
	if !settleSession(ctx, h.branch) {
		return
	}
	if store.Authenticated() {
		navigateByRole(ctx)
	}
}

func (h *HomePage) Render() app.UI {
	if !store.Ready() || store.Authenticated() {
		return app.Div().Class("page-loading").Text("Loading...")
	}

	return app.Div().
		Class("page landing").
		Body(
			&navbar{},
			app.Main().Class("landing-hero").Body(
				app.H1().Text("Leaveboard"),
				app.P().Text("Request time off, track approvals, and keep your team's leave in one place."),
				app.Div().Class("landing-actions").Body(
					app.A().Class("btn btn-primary").Href("/login").Text("Sign in"),
					app.A().Class("btn").Href("/register").Text("Create an account"),
				),
			),
		)
}
