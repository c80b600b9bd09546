package game_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/plus3/dotfall/game"
	"github.com/plus3/dotfall/input"
	"github.com/plus3/dotfall/matrix"
	"github.com/plus3/dotfall/matrix/emulator"
	"github.com/plus3/dotfall/tetromino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flushCounter struct {
	mu  sync.Mutex
	n   int
	err error
}

func (f *flushCounter) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return f.err
}

func (f *flushCounter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n
}

func TestLoopStep(t *testing.T) {
	g, _ := newGame(t, classic(16), tetromino.O)
	f := &flushCounter{}
	loop := game.NewLoop(g, f)

	require.NoError(t, loop.Step())
	assert.Equal(t, 1, f.count())

	require.NoError(t, loop.Handle(input.Right))
	require.NoError(t, loop.Step())

	loop.View(func(g *game.Game) {
		p, ok := g.CurrentPiece()
		require.True(t, ok)
		assert.Equal(t, 1, p.Position.X)
	})

	assert.ErrorIs(t, loop.Handle(input.Event(42)), input.ErrUnknownEvent)
}

func TestLoopRun(t *testing.T) {
	t.Run("returns flush error", func(t *testing.T) {
		g, _ := newGame(t, classic(16), tetromino.O)
		f := &flushCounter{err: errors.New("bus gone")}
		loop := game.NewLoop(g, f)

		err := loop.Run(context.Background(), time.Millisecond)
		assert.ErrorIs(t, err, f.err)
	})

	t.Run("reports errors and stops on cancel", func(t *testing.T) {
		g, _ := newGame(t, classic(16), tetromino.O)
		f := &flushCounter{err: errors.New("bus gone")}
		loop := game.NewLoop(g, f)

		var mu sync.Mutex
		var seen int
		loop.OnError = func(error) {
			mu.Lock()
			seen++
			mu.Unlock()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		err := loop.Run(ctx, time.Millisecond)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		mu.Lock()
		assert.Positive(t, seen)
		mu.Unlock()
	})
}

func TestLoopConcurrentInput(t *testing.T) {
	g, _ := newGame(t, classic(16), tetromino.T)
	loop := game.NewLoop(g, &flushCounter{})

	n := input.NewNotifier(8)
	var d input.Dispatcher
	d.Register(loop)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = input.Pump(ctx, n, &d)
	}()
	go func() {
		defer wg.Done()
		_ = loop.Run(ctx, time.Millisecond)
	}()

	for i := 0; i < 20; i++ {
		n.Post(input.Left)
		n.Post(input.RotateCW)
		time.Sleep(time.Millisecond)
	}
	wg.Wait()

	loop.View(func(g *game.Game) {
		assert.Positive(t, g.Stats().Ticks)
	})
}

func TestEndToEndOnMatrix(t *testing.T) {
	chain, err := emulator.New(2)
	require.NoError(t, err)
	display, err := matrix.New(chain, chain, 2)
	require.NoError(t, err)
	require.NoError(t, display.Initialize())

	cfg := game.DefaultConfig()
	cfg.Mode = game.Demo
	g, err := game.New(cfg, display, &tetromino.Sequence{Kinds: []tetromino.Kind{tetromino.I}})
	require.NoError(t, err)

	loop := game.NewLoop(g, display)
	require.NoError(t, loop.Step())

	buf := chain.Buffer(matrix.FirstPanelFirst)
	assert.Equal(t, display.Snapshot(), buf)
	for x := 0; x < 4; x++ {
		assert.Equal(t, byte(1), buf[x], "field cell (%d, 0)", x)
	}

	rows := matrix.Transform(display.Snapshot(), 2)
	assert.Equal(t, byte(0x80), rows[0][0])
	assert.Equal(t, byte(0x80), rows[3][0])
	assert.Equal(t, byte(0x00), rows[4][0])

	before := display.Stats().Flushes
	g.Do(game.MoveLeft)
	require.NoError(t, loop.Step())
	assert.Equal(t, before+1, display.Stats().Flushes)
}
