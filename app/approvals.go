package main

import (
	"strconv"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"leaveboard/internal/domain"
)

// ApprovalsPage is the manager's working queue: every pending request
// with an inline comment box and approve/reject actions. Acting on a
// request patches it locally right away; the authoritative re-fetch
// wins once it lands.
type ApprovalsPage struct {
	app.Compo

	loader   *listLoader
	comments map[string]string
	actErr   string
}

func (p *ApprovalsPage) OnMount(ctx app.Context) {
	if p.comments == nil {
		p.comments = map[string]string{}
	}
	p.init(ctx)
}

func (p *ApprovalsPage) OnNav(ctx app.Context) {
	p.init(ctx)
}

func (p *ApprovalsPage) OnDismount() {
	if p.loader != nil {
		p.loader.stop()
	}
}

func (p *ApprovalsPage) init(ctx app.Context) {
	if !guard(ctx, p.init) {
		return
	}
	if p.loader == nil {
		p.loader = newListLoader(client.PendingApprovals)
		p.loader.start(ctx)
	}
}

func (p *ApprovalsPage) act(id, status string) func(app.Context, app.Event) {
	return func(ctx app.Context, e app.Event) {
		comments := p.comments[id]
		delete(p.comments, id)
		p.actErr = ""

		p.loader.patchStatus(id, status)
		decide(ctx, id, status, comments, func(ctx app.Context, err error) {
			if err != nil {
				p.actErr = err.Error()
			}
			p.loader.load(ctx)
		})
	}
}

func (p *ApprovalsPage) Render() app.UI {
	if p.loader == nil || !p.loader.Loaded {
		return app.Div().Class("page-loading").Text("Loading...")
	}

	return app.Div().
		Class("page").
		Body(
			&navbar{},
			app.Main().Class("list-page").Body(
				app.Div().Class("page-header").Body(
					app.H1().Text("Pending Approvals"),
					app.Button().
						Class("btn").
						Disabled(p.loader.Loading).
						Text("Refresh").
						OnClick(func(ctx app.Context, e app.Event) {
							p.loader.load(ctx)
						}),
				),
				errorBanner(p.loader),
				app.If(p.actErr != "", func() app.UI {
					return app.Div().Class("banner banner-error").Text(p.actErr)
				}),
				app.If(len(p.loader.Items) == 0, func() app.UI {
					return app.P().Class("empty").Text("Nothing awaiting your decision.")
				}).Else(func() app.UI {
					return app.Div().Class("approval-list").Body(
						app.Range(p.loader.Items).Slice(func(i int) app.UI {
							return p.renderItem(p.loader.Items[i])
						}),
					)
				}),
			),
		)
}

func (p *ApprovalsPage) renderItem(r domain.LeaveRequest) app.UI {
	id := r.Key()
	return app.Div().Class("approval-card").Body(
		app.Div().Class("approval-head").Body(
			app.Strong().Text(r.EmployeeName),
			app.Span().Text(r.Department),
			statusBadge(r.Status),
		),
		app.P().Text(r.LeaveType+": "+r.StartDate+" to "+r.EndDate+" ("+strconv.Itoa(r.DayCount())+" days)"),
		app.P().Class("approval-reason").Text(r.Reason),
		app.If(r.Status == domain.StatusPending, func() app.UI {
			return app.Div().Class("approval-actions").Body(
				app.Textarea().
					Placeholder("Comments (optional)").
					Text(p.comments[id]).
					OnInput(func(ctx app.Context, e app.Event) {
						p.comments[id] = ctx.JSSrc().Get("value").String()
					}),
				app.Button().Class("btn btn-approve").Text("Approve").
					OnClick(p.act(id, domain.StatusApproved)),
				app.Button().Class("btn btn-reject").Text("Reject").
					OnClick(p.act(id, domain.StatusRejected)),
			)
		}),
	)
}
