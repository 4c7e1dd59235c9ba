// Package refresh coordinates the repeated list fetches a dashboard
// page performs: an interval ticker gated on tab visibility and an
// in-flight flag, plus a fence that orders overlapping fetches so a
// slow response can never overwrite a newer one.
package refresh

import (
	"sync/atomic"
	"time"
)

// DefaultInterval is how often a visible page re-fetches its list.
const DefaultInterval = 30 * time.Second

// Fence hands out a sequence number per fetch. A completion is applied
// only while its sequence is still the latest issued; anything older is
// discarded.
type Fence struct {
	issued atomic.Uint64
}

// Next registers a new fetch and returns its sequence number.
func (f *Fence) Next() uint64 {
	return f.issued.Add(1)
}

// Latest reports whether seq is still the most recently issued fetch.
func (f *Fence) Latest(seq uint64) bool {
	return f.issued.Load() == seq
}

// ListState tracks a page's list through the fetch lifecycle. Begin
// registers a fetch; Apply settles it. A completion that a newer fetch
// has overtaken leaves the state untouched, and a failure keeps the
// previously held items while recording the error for the page's
// banner.
type ListState[T any] struct {
	fence Fence

	Items   []T
	Loading bool
	Loaded  bool
	Err     string
}

// Begin marks a fetch in flight and returns its sequence number.
func (s *ListState[T]) Begin() uint64 {
	s.Loading = true
	return s.fence.Next()
}

// Apply settles the fetch issued with seq.
func (s *ListState[T]) Apply(seq uint64, items []T, err error) {
	if !s.fence.Latest(seq) {
		return
	}
	s.Loading = false
	s.Loaded = true
	if err != nil {
		s.Err = err.Error()
		return
	}
	s.Err = ""
	s.Items = items
}

// Poller fires a callback on a fixed interval while the page is visible
// and no fetch is already in flight. A failed previous attempt does not
// stop the ticker.
type Poller struct {
	interval time.Duration
	stop     chan struct{}
	stopped  atomic.Bool
}

// NewPoller returns a poller with the given interval, falling back to
// DefaultInterval when d is not positive.
func NewPoller(d time.Duration) *Poller {
	if d <= 0 {
		d = DefaultInterval
	}
	return &Poller{interval: d, stop: make(chan struct{})}
}

// Run blocks, invoking tick on each interval for which visible() is
// true and busy() is false. It returns after Stop. Callers run it in
// its own goroutine from the page's mount hook.
func (p *Poller) Run(visible, busy func() bool, tick func()) {
	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-p.stop:
			return
		case <-t.C:
			if visible() && !busy() {
				tick()
			}
		}
	}
}

// Stop terminates Run. Safe to call more than once.
func (p *Poller) Stop() {
	if p.stopped.CompareAndSwap(false, true) {
		close(p.stop)
	}
}
