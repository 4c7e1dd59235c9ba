package main

import (
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"leaveboard/internal/domain"
)

// EmployeeDashboard shows the caller's leave balance and their most
// recent requests.
type EmployeeDashboard struct {
	app.Compo

	loader *listLoader
}

func (d *EmployeeDashboard) OnMount(ctx app.Context) {
	d.init(ctx)
}

func (d *EmployeeDashboard) OnNav(ctx app.Context) {
	d.init(ctx)
}

func (d *EmployeeDashboard) OnDismount() {
	if d.loader != nil {
		d.loader.stop()
	}
}

func (d *EmployeeDashboard) init(ctx app.Context) {
	if !guard(ctx, d.init) {
		return
	}
	if d.loader == nil {
		d.loader = newListLoader(client.MyRequests)
		d.loader.start(ctx)
	}
}

func (d *EmployeeDashboard) onRefresh(ctx app.Context, e app.Event) {
	d.loader.load(ctx)
}

func (d *EmployeeDashboard) Render() app.UI {
	if d.loader == nil || !d.loader.Loaded {
		return app.Div().Class("page-loading").Text("Loading...")
	}

	stats := domain.ComputeStats(d.loader.Items, time.Now())

	recent := recentFirst(d.loader.Items)
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return app.Div().
		Class("page").
		Body(
			&navbar{},
			app.Main().Class("dashboard").Body(
				app.Div().Class("page-header").Body(
					app.H1().Text("My Dashboard"),
					app.Button().
						Class("btn").
						Disabled(d.loader.Loading).
						Text("Refresh").
						OnClick(d.onRefresh),
				),
				errorBanner(d.loader),
				app.Div().Class("stat-grid").Body(
					statCard("Total days", stats.TotalLeaveDays),
					statCard("Used", stats.UsedLeaveDays),
					statCard("Remaining", stats.RemainingDays),
					statCard("Pending", stats.PendingRequests),
				),
				app.H2().Text("Recent requests"),
				app.If(len(recent) == 0, func() app.UI {
					return app.P().Class("empty").Text("No leave requests yet.")
				}).Else(func() app.UI {
					return requestTable(recent)
				}),
				app.A().Href("/employee/my-requests").Text("View all requests"),
			),
		)
}
