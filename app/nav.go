package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// themeKey is the storage key for the dark/light preference. It is
// independent of the session keys and survives logout.
const themeKey = "theme"

func currentTheme() string {
	var theme string
	_ = localStore{}.Get(themeKey, &theme)
	if theme == "dark" {
		return "dark"
	}
	return "light"
}

func applyTheme(theme string) {
	app.Window().Get("document").Get("body").Call("setAttribute", "data-theme", theme)
}

type navbar struct {
	app.Compo

	theme string
}

func (n *navbar) OnMount(ctx app.Context) {
	n.theme = currentTheme()
	applyTheme(n.theme)
}

func (n *navbar) onToggleTheme(ctx app.Context, e app.Event) {
	if n.theme == "dark" {
		n.theme = "light"
	} else {
		n.theme = "dark"
	}
	_ = localStore{}.Set(themeKey, n.theme)
	applyTheme(n.theme)
}

func (n *navbar) onLogout(ctx app.Context, e app.Event) {
	store.Logout()
	ctx.Navigate("/login")
}

func (n *navbar) Render() app.UI {
	user := store.User()

	themeLabel := "Dark"
	if n.theme == "dark" {
		themeLabel = "Light"
	}

	return app.Nav().
		Class("navbar").
		Body(
			app.A().Class("navbar-brand").Href("/").Text("Leaveboard"),
			app.If(user != nil && user.IsManager, func() app.UI {
				return app.Div().Class("navbar-links").Body(
					app.A().Href("/manager/dashboard").Text("Dashboard"),
					app.A().Href("/manager/approvals").Text("Approvals"),
				)
			}).ElseIf(user != nil, func() app.UI {
				return app.Div().Class("navbar-links").Body(
					app.A().Href("/employee").Text("Dashboard"),
					app.A().Href("/employee/my-requests").Text("My Requests"),
					app.A().Href("/employee/submit-request").Text("Submit Request"),
				)
			}),
			app.Div().Class("navbar-actions").Body(
				app.Button().Class("btn btn-ghost").Text(themeLabel).OnClick(n.onToggleTheme),
				app.If(user != nil, func() app.UI {
					return app.Span().Class("navbar-user").Text(user.DisplayName())
				}),
				app.If(user != nil, func() app.UI {
					return app.Button().Class("btn btn-ghost").Text("Sign out").OnClick(n.onLogout)
				}).Else(func() app.UI {
					return app.A().Href("/login").Text("Sign in")
				}),
			),
		)
}
