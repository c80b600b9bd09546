// Package input carries button events from the goroutines that detect them
// to the goroutine that owns the game.
//
// A Notifier is the single-slot hand-off between one producer (a GPIO
// watcher, a key poller) and one consumer. The consumer feeds events to a
// Dispatcher, which calls its handlers in registration order.
package input

import (
	"errors"
	"fmt"
)

//go:generate stringer -type=Event -output=event_string.go

// Event identifies a player input.
type Event uint32

const (
	Left Event = iota
	Right
	RotateCW
	RotateCCW
	SoftDrop
	HardDrop
	Reset
)

// Events lists every Event in declaration order.
var Events = []Event{Left, Right, RotateCW, RotateCCW, SoftDrop, HardDrop, Reset}

// ErrUnknownEvent is returned for raw values or names outside Events.
var ErrUnknownEvent = errors.New("input: unknown event")

// ParseEvent maps a raw notification value onto an Event.
func ParseEvent(v uint32) (Event, error) {
	if v > uint32(Reset) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownEvent, v)
	}
	return Event(v), nil
}

// ParseEventName accepts the String form of an Event.
func ParseEventName(name string) (Event, error) {
	for _, e := range Events {
		if e.String() == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// Handler consumes one input event.
type Handler interface {
	Handle(Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(Event) error

// Handle calls f(e).
func (f HandlerFunc) Handle(e Event) error {
	return f(e)
}

// Dispatcher runs handlers synchronously in the order they were
// registered. It is not safe for concurrent use; register everything
// before the first Dispatch.
type Dispatcher struct {
	handlers []Handler
}

// Register appends h. Handlers run in registration order.
func (d *Dispatcher) Register(h Handler) {
	d.handlers = append(d.handlers, h)
}

// Len is the number of registered handlers.
func (d *Dispatcher) Len() int {
	return len(d.handlers)
}

// Dispatch stops at the first handler that fails.
func (d *Dispatcher) Dispatch(e Event) error {
	for i, h := range d.handlers {
		if err := h.Handle(e); err != nil {
			return fmt.Errorf("input: handler %d on %s: %w", i, e, err)
		}
	}
	return nil
}
