// Package backend keeps the feature list fresh behind the UI's back: a
// watcher goroutine polls the store through the tool invoker and publishes
// typed events over a channel the event loop re-arms after each receive.
package backend

import (
	"context"
	"sync"
	"time"

	"featboard/internal/feature"
)

// Event conveys a refreshed feature listing or the error that prevented one.
type Event struct {
	Features []feature.Summary
	Err      error
}

// Lister is the slice of the feature client the watcher needs.
type Lister interface {
	List(ctx context.Context) ([]feature.Summary, error)
}

// Watcher polls the store at a fixed interval and publishes events.
type Watcher struct {
	lister   Lister
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that refreshes the listing every interval.
func NewWatcher(lister Lister, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		lister:   lister,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(func(ctx context.Context) ([]feature.Summary, error) {
		throttle.wait()
		return w.lister.List(ctx)
	})

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns the channel of refresh events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current fetch
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll(fetch func(context.Context) ([]feature.Summary, error)) {
	defer w.wg.Done()

	emit := func() bool {
		features, err := fetch(w.ctx)
		evt := Event{Features: features, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
