package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/plus3/dotfall/input"
)

// Flusher pushes a rendered frame out. *matrix.Display satisfies it.
type Flusher interface {
	Flush() error
}

// Loop serialises ticks, input and flushes coming from different
// goroutines. Every Step runs tick then flush under one lock, so a frame is
// never flushed half rendered.
type Loop struct {
	mu      sync.Mutex
	game    *Game
	display Flusher

	// OnError receives flush failures from Run. When nil, Run returns the
	// first failure.
	OnError func(error)
}

var _ input.Handler = (*Loop)(nil)

// NewLoop wraps g and the display it renders into.
func NewLoop(g *Game, display Flusher) *Loop {
	return &Loop{game: g, display: display}
}

// Step ticks the game and flushes the display.
func (l *Loop) Step() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.game.Tick()
	return l.display.Flush()
}

// Do queues an action for the next Step.
func (l *Loop) Do(a Action) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.game.Do(a)
}

// Handle queues the action bound to e.
func (l *Loop) Handle(e input.Event) error {
	a, ok := ActionFor(e)
	if !ok {
		return fmt.Errorf("%w: %s", input.ErrUnknownEvent, e)
	}
	l.Do(a)
	return nil
}

// View runs fn with the game locked. fn must not keep g.
func (l *Loop) View(fn func(g *Game)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fn(l.game)
}

// Run steps every interval until ctx is done.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := l.Step(); err != nil {
				if l.OnError == nil {
					return err
				}
				l.OnError(err)
			}
		}
	}
}
