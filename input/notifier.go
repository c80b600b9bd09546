package input

import (
	"context"
	"time"
)

// Notifier hands events from one producer to one consumer. Post never
// blocks; when the consumer has not caught up the event is dropped and Post
// reports it.
type Notifier struct {
	ch chan Event
}

// NewNotifier makes a notifier holding up to depth pending events. A depth
// below one is raised to one.
func NewNotifier(depth int) *Notifier {
	return &Notifier{ch: make(chan Event, max(depth, 1))}
}

// Post hands e to the consumer without blocking. It reports false and
// drops e when the notifier is full.
func (n *Notifier) Post(e Event) bool {
	select {
	case n.ch <- e:
		return true
	default:
		return false
	}
}

// Wait blocks until an event arrives or ctx is done.
func (n *Notifier) Wait(ctx context.Context) (Event, error) {
	select {
	case e := <-n.ch:
		return e, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// WaitTimeout blocks for at most d. The bool is false on timeout.
func (n *Notifier) WaitTimeout(d time.Duration) (Event, bool) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case e := <-n.ch:
		return e, true
	case <-timer.C:
		return 0, false
	}
}

// Pending returns the number of queued events.
func (n *Notifier) Pending() int {
	return len(n.ch)
}

// Pump feeds events from n to d until ctx is done or a handler fails.
func Pump(ctx context.Context, n *Notifier, d *Dispatcher) error {
	for {
		e, err := n.Wait(ctx)
		if err != nil {
			return err
		}
		if err := d.Dispatch(e); err != nil {
			return err
		}
	}
}
