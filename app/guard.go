package main

import (
	"context"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// settleSession reports whether the one-time token revalidation has
// settled. When it has not, it starts the revalidation and schedules
// then to run afterwards, so the caller can re-check. Pages render a
// neutral loading state while this returns false.
func settleSession(ctx app.Context, then func(app.Context)) bool {
	if store.Ready() {
		return true
	}
	ctx.Async(func() {
		store.Initialize(context.Background())
		ctx.Dispatch(then)
	})
	return false
}

// guard gates a protected page. Unauthenticated sessions are sent to
// the login page; the attempted destination is not preserved. retry is
// re-run once a pending revalidation settles.
func guard(ctx app.Context, retry func(app.Context)) bool {
	if !settleSession(ctx, retry) {
		return false
	}
	if !store.Authenticated() {
		ctx.Navigate("/login")
		return false
	}
	return true
}

// navigateByRole sends an authenticated user to their landing page.
func navigateByRole(ctx app.Context) {
	if user := store.User(); user != nil && user.IsManager {
		ctx.Navigate("/manager/dashboard")
		return
	}
	ctx.Navigate("/employee")
}
