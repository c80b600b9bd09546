package game_test

import (
	"errors"
	"testing"

	"github.com/plus3/dotfall/game"
	"github.com/plus3/dotfall/matrix"
	"github.com/plus3/dotfall/matrix/emulator"
	"github.com/plus3/dotfall/tetromino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type screen []byte

func (s screen) Set(i int, v byte) {
	if i >= 0 && i < len(s) {
		s[i] = v
	}
}

func (s screen) Len() int { return len(s) }

func (s screen) lit() int {
	n := 0
	for _, v := range s {
		if v != 0 {
			n++
		}
	}
	return n
}

func newGame(t *testing.T, cfg game.Config, kinds ...tetromino.Kind) (*game.Game, screen) {
	t.Helper()
	s := make(screen, 128)
	g, err := game.New(cfg, s, &tetromino.Sequence{Kinds: kinds})
	require.NoError(t, err)
	return g, s
}

func classic(height int) game.Config {
	cfg := game.DefaultConfig()
	cfg.Height = height
	return cfg
}

func TestNewValidation(t *testing.T) {
	gen := &tetromino.Sequence{Kinds: []tetromino.Kind{tetromino.O}}

	cfg := game.DefaultConfig()
	cfg.Height = 17
	_, err := game.New(cfg, make(screen, 128), gen)
	assert.ErrorIs(t, err, game.ErrFieldTooLarge)

	cfg = game.DefaultConfig()
	cfg.Width = 0
	_, err = game.New(cfg, make(screen, 128), gen)
	assert.ErrorIs(t, err, game.ErrFieldSize)

	cfg = game.DefaultConfig()
	cfg.GravityEvery = 0
	_, err = game.New(cfg, make(screen, 128), gen)
	assert.ErrorIs(t, err, game.ErrConfig)

	assert.Panics(t, func() {
		_, _ = game.New(game.DefaultConfig(), make(screen, 128), nil)
	})
}

func TestNewRejectsWideFieldOnMatrix(t *testing.T) {
	chain, err := emulator.New(2)
	require.NoError(t, err)
	display, err := matrix.New(chain, chain, 2)
	require.NoError(t, err)
	gen := &tetromino.Sequence{Kinds: []tetromino.Kind{tetromino.O}}

	cfg := game.DefaultConfig()
	cfg.Width, cfg.Height = 16, 8
	_, err = game.New(cfg, display, gen)
	assert.ErrorIs(t, err, game.ErrFieldSize)

	cfg.Width, cfg.Height = 8, 16
	_, err = game.New(cfg, display, gen)
	assert.NoError(t, err)

	cfg.Width = 16
	cfg.Height = 8
	_, err = game.New(cfg, make(screen, 128), gen)
	assert.NoError(t, err, "plain targets take any width")
}

func TestDemoMode(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Mode = game.Demo
	g, s := newGame(t, cfg, tetromino.I)

	assert.Equal(t, game.Spawning, g.State())
	_, ok := g.CurrentPiece()
	assert.False(t, ok)

	g.Tick()
	assert.Equal(t, game.Falling, g.State())
	p, ok := g.CurrentPiece()
	require.True(t, ok)
	assert.Equal(t, tetromino.I, p.Kind)
	assert.Equal(t, 0, p.Position.Y)
	assert.Equal(t, screen{1, 1, 1, 1, 0, 0, 0, 0}, s[:8])

	g.Tick()
	p, _ = g.CurrentPiece()
	assert.Equal(t, 1, p.Position.Y, "gravity moves one cell per tick")
	assert.Equal(t, screen{0, 0, 0, 0, 0, 0, 0, 0}, s[:8])
	assert.Equal(t, screen{1, 1, 1, 1, 0, 0, 0, 0}, s[8:16])

	for i := 0; i < 14; i++ {
		g.Tick()
	}
	p, _ = g.CurrentPiece()
	assert.Equal(t, 15, p.Position.Y)
	assert.Equal(t, game.Falling, g.State())

	g.Tick()
	assert.Equal(t, game.Falling, g.State(), "the next piece is dealt in the discarding tick")
	p, ok = g.CurrentPiece()
	require.True(t, ok)
	assert.Equal(t, 0, p.Position.Y)
	assert.Equal(t, uint64(1), g.Stats().Discarded)
	assert.Equal(t, uint64(2), g.Stats().Spawned)
	assert.Equal(t, 4, s.lit())
	assert.Equal(t, screen{1, 1, 1, 1, 0, 0, 0, 0}, s[:8])
	assert.Zero(t, g.Field().Count(), "nothing lands in demo mode")

	g.Tick()
	p, _ = g.CurrentPiece()
	assert.Equal(t, 1, p.Position.Y)
}

func TestDemoCycle(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Mode = game.Demo
	g, _ := newGame(t, cfg, tetromino.O)

	for i := 0; i < 1+3*cfg.Height; i++ {
		g.Tick()
	}
	assert.Equal(t, uint64(3), g.Stats().Discarded, "one piece per Height ticks")
	assert.Equal(t, uint64(4), g.Stats().Spawned)
}

func TestDemoHardDrop(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Mode = game.Demo
	g, _ := newGame(t, cfg, tetromino.T)

	g.Tick()
	g.Do(game.HardDrop)
	g.Tick()
	assert.Equal(t, uint64(1), g.Stats().Discarded)
	p, ok := g.CurrentPiece()
	require.True(t, ok)
	assert.Equal(t, 0, p.Position.Y)
}

func TestClassicLanding(t *testing.T) {
	g, s := newGame(t, classic(16), tetromino.O)

	g.Tick()
	for i := 0; i < 14; i++ {
		g.Tick()
	}
	p, _ := g.CurrentPiece()
	assert.Equal(t, 14, p.Position.Y, "piece rests on the floor")

	g.Tick()
	assert.Equal(t, game.Falling, g.State(), "lock delay keeps the piece active")

	g.Tick()
	assert.Equal(t, game.Landed, g.State())
	assert.Equal(t, 4, g.Field().Count())
	assert.Equal(t, byte(1), s[14*8])
	assert.Equal(t, byte(1), s[15*8+1])

	g.Tick()
	assert.Equal(t, game.Falling, g.State())
	assert.Equal(t, 8, s.lit(), "board and new piece are both drawn")
}

func TestClassicStacking(t *testing.T) {
	g, _ := newGame(t, classic(16), tetromino.O)

	g.Do(game.HardDrop)
	g.Tick()
	assert.Equal(t, game.Landed, g.State())

	g.Do(game.HardDrop)
	g.Tick()
	board := g.Board()
	for _, y := range []int{12, 13, 14, 15} {
		assert.Equal(t, byte(1), board[y*8], "row %d", y)
	}
	assert.Equal(t, uint64(2), g.Stats().Locked)
}

func TestClassicLineClear(t *testing.T) {
	g, s := newGame(t, classic(16), tetromino.O)

	for k := 0; k < 4; k++ {
		for i := 0; i < 2*k; i++ {
			g.Do(game.MoveRight)
		}
		g.Do(game.HardDrop)
		g.Tick()
	}

	assert.Equal(t, uint64(2), g.Stats().Lines)
	assert.Zero(t, g.Field().Count())
	assert.Zero(t, s.lit())
}

func TestClassicWalls(t *testing.T) {
	g, _ := newGame(t, classic(16), tetromino.I)
	g.Tick()

	for i := 0; i < 10; i++ {
		g.Do(game.MoveRight)
	}
	g.Tick()
	p, _ := g.CurrentPiece()
	assert.Equal(t, 4, p.Position.X, "stops at the right wall")

	g.Do(game.RotateCW)
	g.Tick()
	p, _ = g.CurrentPiece()
	assert.Equal(t, 1, p.Width)

	for i := 0; i < 10; i++ {
		g.Do(game.MoveRight)
	}
	g.Do(game.RotateCCW)
	g.Tick()
	p, _ = g.CurrentPiece()
	assert.Equal(t, 7, p.Position.X)
	assert.Equal(t, 1, p.Width, "rotation into the wall is rejected")
}

func TestGameOver(t *testing.T) {
	g, s := newGame(t, classic(2), tetromino.O)

	g.Tick()
	g.Tick()
	g.Tick()
	assert.Equal(t, game.Landed, g.State())

	g.Tick()
	assert.Equal(t, game.GameOver, g.State())
	assert.NotZero(t, s.lit(), "game over frame is drawn")

	g.Tick()
	assert.Equal(t, game.GameOver, g.State())

	g.Do(game.Reset)
	g.Tick()
	assert.Equal(t, game.Spawning, g.State())
	assert.Zero(t, g.Field().Count())
	assert.Zero(t, g.Stats().Locked)

	g.Tick()
	assert.Equal(t, game.Falling, g.State())
}

func TestResetRepaints(t *testing.T) {
	g, s := newGame(t, classic(16), tetromino.O, tetromino.T, tetromino.I)
	for i := 0; i < 40; i++ {
		g.Tick()
	}
	require.Positive(t, g.Field().Count())
	require.NotZero(t, s.lit())

	g.Do(game.Reset)
	g.Tick()
	assert.Equal(t, game.Spawning, g.State())
	assert.Zero(t, g.Field().Count())
	assert.Zero(t, s.lit(), "the reset tick draws the empty field")
}

type resetter struct{ armed bool }

func (r *resetter) Execute(frame *game.Frame) {
	if r.armed {
		frame.Commands.Reset()
		r.armed = false
	}
}

func TestCommandResetRepaints(t *testing.T) {
	g, s := newGame(t, classic(16), tetromino.O)
	r := &resetter{}
	g.Scheduler().Register(r)

	g.Tick()
	require.Equal(t, 4, s.lit())

	r.armed = true
	g.Tick()
	assert.Equal(t, game.Spawning, g.State())
	assert.Zero(t, s.lit(), "a reset queued after rendering still repaints")
}

func TestGravityEvery(t *testing.T) {
	cfg := classic(16)
	cfg.GravityEvery = 3
	g, _ := newGame(t, cfg, tetromino.T)

	g.Tick()
	for i := 0; i < 3; i++ {
		g.Tick()
	}
	p, _ := g.CurrentPiece()
	assert.Equal(t, 1, p.Position.Y)
}

func TestSchedulerStats(t *testing.T) {
	g, _ := newGame(t, classic(16), tetromino.S)
	g.Tick()
	g.Tick()

	stats := g.Scheduler().Stats()
	require.Equal(t, 7, stats.SystemCount)
	assert.Equal(t, int64(14), stats.TotalExecutions)
	assert.Equal(t, "SpawnSystem", stats.Systems[0].Name)
	assert.Equal(t, "RenderSystem", stats.Systems[6].Name)
	assert.Equal(t, uint64(2), g.Stats().Ticks)
}

type tickCounter struct {
	ticks    []uint64
	deferred int
}

func (c *tickCounter) Execute(frame *game.Frame) {
	c.ticks = append(c.ticks, frame.Tick)
	frame.Commands.Defer(func() { c.deferred++ })
}

func TestCustomSystem(t *testing.T) {
	g, _ := newGame(t, classic(16), tetromino.Z)
	c := &tickCounter{}
	g.Scheduler().Register(c)

	g.Tick()
	g.Tick()
	assert.Equal(t, []uint64{1, 2}, c.ticks)
	assert.Equal(t, 2, c.deferred)
}

func TestParseMode(t *testing.T) {
	m, err := game.ParseMode("demo")
	require.NoError(t, err)
	assert.Equal(t, game.Demo, m)
	assert.Equal(t, "classic", game.Classic.String())

	_, err = game.ParseMode("zen")
	assert.True(t, errors.Is(err, game.ErrConfig))
}
