package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"leaveboard/internal/domain"
)

// ManagerDashboard shows the requests awaiting the manager's decision
// and the ones already decided, with this-month counters derived from
// the processed list.
type ManagerDashboard struct {
	app.Compo

	pending   *listLoader
	processed *listLoader

	tab    string
	search string

	decisionID     string
	decisionStatus string
	comments       string
	actErr         string
}

func (d *ManagerDashboard) OnMount(ctx app.Context) {
	if d.tab == "" {
		d.tab = "pending"
	}
	d.init(ctx)
}

func (d *ManagerDashboard) OnNav(ctx app.Context) {
	d.init(ctx)
}

func (d *ManagerDashboard) OnDismount() {
	if d.pending != nil {
		d.pending.stop()
	}
	if d.processed != nil {
		d.processed.stop()
	}
}

func (d *ManagerDashboard) init(ctx app.Context) {
	if !guard(ctx, d.init) {
		return
	}
	if d.pending == nil {
		d.pending = newListLoader(client.PendingApprovals)
		d.pending.start(ctx)
		d.processed = newListLoader(client.ProcessedApprovals)
		d.processed.start(ctx)
	}
}

func (d *ManagerDashboard) onRefresh(ctx app.Context, e app.Event) {
	d.pending.load(ctx)
	d.processed.load(ctx)
}

func (d *ManagerDashboard) openDecision(id, status string) func(app.Context, app.Event) {
	return func(ctx app.Context, e app.Event) {
		d.decisionID = id
		d.decisionStatus = status
		d.comments = ""
	}
}

func (d *ManagerDashboard) onCancelDecision(ctx app.Context, e app.Event) {
	d.decisionID = ""
}

func (d *ManagerDashboard) onConfirmDecision(ctx app.Context, e app.Event) {
	id, status, comments := d.decisionID, d.decisionStatus, d.comments
	d.decisionID = ""
	d.actErr = ""

	d.pending.patchStatus(id, status)
	decide(ctx, id, status, comments, func(ctx app.Context, err error) {
		if err != nil {
			d.actErr = err.Error()
		}
		d.pending.load(ctx)
		d.processed.load(ctx)
	})
}

func (d *ManagerDashboard) Render() app.UI {
	if d.pending == nil || !d.pending.Loaded || !d.processed.Loaded {
		return app.Div().Class("page-loading").Text("Loading...")
	}

	stats := domain.ComputeStats(d.processed.Items, time.Now())

	return app.Div().
		Class("page").
		Body(
			&navbar{},
			app.Main().Class("dashboard").Body(
				app.Div().Class("page-header").Body(
					app.H1().Text("Manager Dashboard"),
					app.Button().
						Class("btn").
						Disabled(d.pending.Loading || d.processed.Loading).
						Text("Refresh").
						OnClick(d.onRefresh),
				),
				errorBanner(d.pending),
				errorBanner(d.processed),
				app.If(d.actErr != "", func() app.UI {
					return app.Div().Class("banner banner-error").Text(d.actErr)
				}),
				app.Div().Class("stat-grid").Body(
					statCard("Awaiting decision", len(d.pending.Items)),
					statCard("Approved this month", stats.ApprovedThisMonth),
					statCard("Rejected this month", stats.RejectedThisMonth),
				),
				app.Div().Class("tabs").Body(
					d.tabButton("pending", "Pending ("+strconv.Itoa(len(d.pending.Items))+")"),
					d.tabButton("processed", "Processed ("+strconv.Itoa(len(d.processed.Items))+")"),
				),
				app.Div().Class("list-controls").Body(
					app.Input().
						Type("search").
						Placeholder("Search employee or type").
						Value(d.search).
						OnInput(func(ctx app.Context, e app.Event) {
							d.search = ctx.JSSrc().Get("value").String()
						}),
				),
				app.If(d.tab == "pending", func() app.UI {
					return d.renderPending()
				}).Else(func() app.UI {
					return d.renderProcessed()
				}),
				app.If(d.decisionID != "", func() app.UI {
					return d.renderDecisionModal()
				}),
			),
		)
}

func (d *ManagerDashboard) tabButton(tab, label string) app.UI {
	class := "tab"
	if d.tab == tab {
		class += " active"
	}
	return app.Button().
		Class(class).
		Text(label).
		OnClick(func(ctx app.Context, e app.Event) {
			d.tab = tab
		})
}

// filtered applies the search box to a held list, case-insensitively,
// without refetching.
func (d *ManagerDashboard) filtered(requests []domain.LeaveRequest) []domain.LeaveRequest {
	term := strings.ToLower(strings.TrimSpace(d.search))
	if term == "" {
		return requests
	}
	var out []domain.LeaveRequest
	for _, r := range requests {
		if strings.Contains(strings.ToLower(r.EmployeeName), term) ||
			strings.Contains(strings.ToLower(r.LeaveType), term) {
			out = append(out, r)
		}
	}
	return out
}

func (d *ManagerDashboard) renderPending() app.UI {
	requests := d.filtered(d.pending.Items)
	if len(requests) == 0 {
		return app.P().Class("empty").Text("Nothing awaiting your decision.")
	}
	return app.Table().Class("request-table").Body(
		app.THead().Body(
			app.Tr().Body(
				app.Th().Text("Employee"),
				app.Th().Text("Type"),
				app.Th().Text("From"),
				app.Th().Text("To"),
				app.Th().Text("Days"),
				app.Th().Text("Reason"),
				app.Th().Text("Actions"),
			),
		),
		app.TBody().Body(
			app.Range(requests).Slice(func(i int) app.UI {
				r := requests[i]
				return app.Tr().Body(
					app.Td().Text(r.EmployeeName),
					app.Td().Text(r.LeaveType),
					app.Td().Text(r.StartDate),
					app.Td().Text(r.EndDate),
					app.Td().Text(strconv.Itoa(r.DayCount())),
					app.Td().Text(r.Reason),
					app.Td().Body(
						app.Button().Class("btn btn-approve").Text("Approve").
							OnClick(d.openDecision(r.Key(), domain.StatusApproved)),
						app.Button().Class("btn btn-reject").Text("Reject").
							OnClick(d.openDecision(r.Key(), domain.StatusRejected)),
					),
				)
			}),
		),
	)
}

func (d *ManagerDashboard) renderProcessed() app.UI {
	requests := d.filtered(d.processed.Items)
	if len(requests) == 0 {
		return app.P().Class("empty").Text("No processed requests yet.")
	}
	return app.Table().Class("request-table").Body(
		app.THead().Body(
			app.Tr().Body(
				app.Th().Text("Employee"),
				app.Th().Text("Type"),
				app.Th().Text("From"),
				app.Th().Text("To"),
				app.Th().Text("Status"),
				app.Th().Text("Decided"),
				app.Th().Text("Comments"),
			),
		),
		app.TBody().Body(
			app.Range(requests).Slice(func(i int) app.UI {
				r := requests[i]
				return app.Tr().Body(
					app.Td().Text(r.EmployeeName),
					app.Td().Text(r.LeaveType),
					app.Td().Text(r.StartDate),
					app.Td().Text(r.EndDate),
					app.Td().Body(statusBadge(r.Status)),
					app.Td().Text(r.ActionTimestamp),
					app.Td().Text(r.Comments),
				)
			}),
		),
	)
}

func (d *ManagerDashboard) renderDecisionModal() app.UI {
	title := "Approve request"
	confirm := "Approve"
	if d.decisionStatus == domain.StatusRejected {
		title = "Reject request"
		confirm = "Reject"
	}
	return app.Div().Class("modal-backdrop").Body(
		app.Div().Class("modal").Body(
			app.H2().Text(title),
			app.Label().For("decision-comments").Text("Comments (optional)"),
			app.Textarea().
				ID("decision-comments").
				Text(d.comments).
				OnInput(func(ctx app.Context, e app.Event) {
					d.comments = ctx.JSSrc().Get("value").String()
				}),
			app.Div().Class("modal-actions").Body(
				app.Button().Class("btn").Text("Cancel").OnClick(d.onCancelDecision),
				app.Button().Class("btn btn-primary").Text(confirm).OnClick(d.onConfirmDecision),
			),
		),
	)
}
