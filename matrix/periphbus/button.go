package periphbus

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// pollEdge bounds how long Watch blocks before checking its context.
const pollEdge = 100 * time.Millisecond

// Button is an active-low push button with a pull-up.
type Button struct {
	Pin      gpio.PinIn
	Debounce time.Duration
}

// OpenButton looks up a pin by gpioreg name.
func OpenButton(name string, debounce time.Duration) (*Button, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("%w: %q", ErrPin, name)
	}
	return &Button{Pin: pin, Debounce: debounce}, nil
}

// Watch calls fn on every falling edge until ctx is done. Edges closer than
// Debounce to the last accepted one are dropped. fn runs on the watching
// goroutine and should not block.
func (b *Button) Watch(ctx context.Context, fn func()) error {
	if err := b.Pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return fmt.Errorf("periphbus: button %s: %w", b.Pin, err)
	}

	var last time.Time
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !b.Pin.WaitForEdge(pollEdge) {
			continue
		}

		now := time.Now()
		if !last.IsZero() && now.Sub(last) < b.Debounce {
			continue
		}
		last = now
		fn()
	}
}
