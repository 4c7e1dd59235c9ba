package main

import (
	"sort"
	"strconv"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"leaveboard/internal/domain"
)

// Shared rendering helpers for the dashboard and list pages.

func statusBadge(status string) app.UI {
	return app.Span().Class("badge badge-" + status).Text(status)
}

func errorBanner(l *listLoader) app.UI {
	return app.If(l.Err != "", func() app.UI {
		return app.Div().Class("banner banner-error").Body(
			app.Span().Text(l.Err),
			app.Button().Class("btn").Text("Retry").OnClick(func(ctx app.Context, e app.Event) {
				l.load(ctx)
			}),
		)
	})
}

func statCard(label string, value int) app.UI {
	return app.Div().Class("stat-card").Body(
		app.Span().Class("stat-value").Text(strconv.Itoa(value)),
		app.Span().Class("stat-label").Text(label),
	)
}

// recentFirst returns a copy sorted by submission time, newest first.
func recentFirst(requests []domain.LeaveRequest) []domain.LeaveRequest {
	out := make([]domain.LeaveRequest, len(requests))
	copy(out, requests)
	sort.SliceStable(out, func(i, j int) bool {
		return domain.ParseWhen(out[i].SubmittedAt).After(domain.ParseWhen(out[j].SubmittedAt))
	})
	return out
}

func requestRow(r domain.LeaveRequest) app.UI {
	return app.Tr().Body(
		app.Td().Text(r.LeaveType),
		app.Td().Text(r.StartDate),
		app.Td().Text(r.EndDate),
		app.Td().Text(strconv.Itoa(r.DayCount())),
		app.Td().Body(statusBadge(r.Status)),
		app.Td().Text(r.Reason),
	)
}

func requestTable(requests []domain.LeaveRequest) app.UI {
	return app.Table().Class("request-table").Body(
		app.THead().Body(
			app.Tr().Body(
				app.Th().Text("Type"),
				app.Th().Text("From"),
				app.Th().Text("To"),
				app.Th().Text("Days"),
				app.Th().Text("Status"),
				app.Th().Text("Reason"),
			),
		),
		app.TBody().Body(
			app.Range(requests).Slice(func(i int) app.UI {
				return requestRow(requests[i])
			}),
		),
	)
}
