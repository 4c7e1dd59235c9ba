package main

import (
	"sort"
	"strings"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"leaveboard/internal/domain"
)

// MyRequestsPage lists every request the caller has submitted, with
// client-side filtering, sorting and search over the last successful
// fetch. None of the three triggers a re-fetch.
type MyRequestsPage struct {
	app.Compo

	loader *listLoader

	statusFilter string
	sortOrder    string
	search       string
}

func (p *MyRequestsPage) OnMount(ctx app.Context) {
	if p.statusFilter == "" {
		p.statusFilter = "all"
	}
	if p.sortOrder == "" {
		p.sortOrder = "newest"
	}
	p.init(ctx)
}

func (p *MyRequestsPage) OnNav(ctx app.Context) {
	p.init(ctx)
}

func (p *MyRequestsPage) OnDismount() {
	if p.loader != nil {
		p.loader.stop()
	}
}

func (p *MyRequestsPage) init(ctx app.Context) {
	if !guard(ctx, p.init) {
		return
	}
	if p.loader == nil {
		p.loader = newListLoader(client.MyRequests)
		p.loader.start(ctx)
	}
}

// visible applies the status filter, the search term and the sort order
// to the held list.
func (p *MyRequestsPage) visible() []domain.LeaveRequest {
	term := strings.ToLower(strings.TrimSpace(p.search))

	var out []domain.LeaveRequest
	for _, r := range p.loader.Items {
		if p.statusFilter != "all" && r.Status != p.statusFilter {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(r.Reason), term) &&
			!strings.Contains(strings.ToLower(r.LeaveType), term) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a := domain.ParseWhen(out[i].SubmittedAt)
		b := domain.ParseWhen(out[j].SubmittedAt)
		if p.sortOrder == "oldest" {
			return a.Before(b)
		}
		return a.After(b)
	})
	return out
}

func (p *MyRequestsPage) Render() app.UI {
	if p.loader == nil || !p.loader.Loaded {
		return app.Div().Class("page-loading").Text("Loading...")
	}

	visible := p.visible()

	return app.Div().
		Class("page").
		Body(
			&navbar{},
			app.Main().Class("list-page").Body(
				app.Div().Class("page-header").Body(
					app.H1().Text("My Requests"),
					app.A().Class("btn btn-primary").Href("/employee/submit-request").Text("New request"),
				),
				errorBanner(p.loader),
				app.Div().Class("list-controls").Body(
					app.Input().
						Type("search").
						Placeholder("Search reason or type").
						Value(p.search).
						OnInput(func(ctx app.Context, e app.Event) {
							p.search = ctx.JSSrc().Get("value").String()
						}),
					app.Select().
						OnChange(func(ctx app.Context, e app.Event) {
							p.statusFilter = ctx.JSSrc().Get("value").String()
						}).
						Body(
							app.Option().Value("all").Text("All statuses").Selected(p.statusFilter == "all"),
							app.Option().Value(domain.StatusPending).Text("Pending").Selected(p.statusFilter == domain.StatusPending),
							app.Option().Value(domain.StatusApproved).Text("Approved").Selected(p.statusFilter == domain.StatusApproved),
							app.Option().Value(domain.StatusRejected).Text("Rejected").Selected(p.statusFilter == domain.StatusRejected),
						),
					app.Select().
						OnChange(func(ctx app.Context, e app.Event) {
							p.sortOrder = ctx.JSSrc().Get("value").String()
						}).
						Body(
							app.Option().Value("newest").Text("Newest first").Selected(p.sortOrder == "newest"),
							app.Option().Value("oldest").Text("Oldest first").Selected(p.sortOrder == "oldest"),
						),
				),
				app.If(len(visible) == 0, func() app.UI {
					return app.P().Class("empty").Text("No requests match.")
				}).Else(func() app.UI {
					return requestTable(visible)
				}),
			),
		)
}
