package main

import (
	"context"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"leaveboard/internal/domain"
	"leaveboard/internal/refresh"
)

// listLoader drives one page's fetch cycle. Mount, manual refresh, the
// tab becoming visible again, the periodic ticker and action completion
// all funnel into load; the embedded state discards any completion that
// a newer fetch has overtaken and keeps the previous list on failure.
type listLoader struct {
	refresh.ListState[domain.LeaveRequest]

	fetch func(context.Context) ([]domain.LeaveRequest, error)

	poller  *refresh.Poller
	release func()
}

func newListLoader(fetch func(context.Context) ([]domain.LeaveRequest, error)) *listLoader {
	return &listLoader{fetch: fetch}
}

// start performs the initial fetch and arms the periodic and
// visibility triggers. Call from the page's mount hook, after the
// route guard has passed.
func (l *listLoader) start(ctx app.Context) {
	l.load(ctx)

	l.poller = refresh.NewPoller(refresh.DefaultInterval)
	go l.poller.Run(pageVisible, func() bool { return l.Loading }, func() {
		ctx.Dispatch(func(ctx app.Context) { l.load(ctx) })
	})

	l.release = onVisibilityChange(func() {
		if pageVisible() {
			ctx.Dispatch(func(ctx app.Context) { l.load(ctx) })
		}
	})
}

// stop tears the triggers down. Call from the page's dismount hook.
func (l *listLoader) stop() {
	if l.poller != nil {
		l.poller.Stop()
	}
	if l.release != nil {
		l.release()
		l.release = nil
	}
}

// load issues a fetch. The completion applies only while its sequence
// is still the latest, so overlapping fetches settle in issue order.
func (l *listLoader) load(ctx app.Context) {
	seq := l.Begin()

	ctx.Async(func() {
		requests, err := l.fetch(context.Background())
		ctx.Dispatch(func(app.Context) {
			l.Apply(seq, requests, err)
		})
	})
}

// patchStatus optimistically rewrites one item's status in the held
// list. The next authoritative fetch replaces the whole list anyway.
func (l *listLoader) patchStatus(id, status string) {
	for i := range l.Items {
		if l.Items[i].Key() == id {
			l.Items[i].Status = status
			return
		}
	}
}

// decide sends an approve or reject for one request and hands the
// outcome back on the UI goroutine.
func decide(ctx app.Context, id, status, comments string, done func(app.Context, error)) {
	ctx.Async(func() {
		var err error
		if status == domain.StatusApproved {
			err = client.Approve(context.Background(), id, comments)
		} else {
			err = client.Reject(context.Background(), id, comments)
		}
		ctx.Dispatch(func(ctx app.Context) { done(ctx, err) })
	})
}

func pageVisible() bool {
	return app.Window().Get("document").Get("visibilityState").String() == "visible"
}

func onVisibilityChange(fn func()) func() {
	doc := app.Window().Get("document")
	cb := app.FuncOf(func(this app.Value, args []app.Value) any {
		fn()
		return nil
	})
	doc.Call("addEventListener", "visibilitychange", cb)
	return func() {
		doc.Call("removeEventListener", "visibilitychange", cb)
		cb.Release()
	}
}
