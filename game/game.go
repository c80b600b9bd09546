// Package game runs a falling-block game on a flat pixel target.
//
// Each Tick runs the scheduler once: spawn, input, gravity, lock, line
// clear, out-of-bounds and render, in that order. Render writes every field
// cell to the target with Set; the caller flushes the display afterwards.
// Field cell (x, y) is target index y*Width + x, which on an eight pixel
// wide matrix chain is the portrait layout with panel 0 on top.
package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/plus3/dotfall/matrix"
	"github.com/plus3/dotfall/tetromino"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
)

var on = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// Target receives the rendered field. *matrix.Display satisfies it.
type Target = matrix.Target

// Stats counts game events. Reset clears everything but Ticks.
type Stats struct {
	Ticks     uint64
	Spawned   uint64
	Locked    uint64
	Discarded uint64
	Lines     uint64
}

// PieceView is a read-only copy of the active piece.
type PieceView struct {
	Kind     tetromino.Kind
	Position tetromino.Point
	Width    int
	Height   int
	Rotation int
	Shape    string
}

// Game is not safe for concurrent use; see Loop.
type Game struct {
	cfg    Config
	target Target
	gen    tetromino.Generator
	field  *Field

	piece     *tetromino.Piece
	state     State
	actions   []Action
	spawned   bool
	grounded  int
	gravity   int
	forceLock bool
	stats     Stats

	scratch   cells
	canvas    *matrix.Canvas
	scheduler *Scheduler
	lastTick  time.Time
}

// cells is the composition buffer the overlay canvas draws into.
type cells []byte

func (c cells) Set(i int, v byte) {
	if i >= 0 && i < len(c) {
		c[i] = v
	}
}

func (c cells) Len() int { return len(c) }

// New creates a game rendering into target. The default systems are
// registered; more can be added through Scheduler.
func New(cfg Config, target Target, gen tetromino.Generator) (*Game, error) {
	if target == nil || gen == nil {
		panic("game: New requires a target and a generator")
	}
	if err := cfg.validate(target.Len()); err != nil {
		return nil, err
	}
	if _, ok := target.(*matrix.Display); ok && cfg.Width != matrix.PanelSize {
		return nil, fmt.Errorf("%w: width %d on a matrix chain, must be %d",
			ErrFieldSize, cfg.Width, matrix.PanelSize)
	}

	g := &Game{
		cfg:     cfg,
		target:  target,
		gen:     gen,
		field:   NewField(cfg.Width, cfg.Height),
		state:   Spawning,
		scratch: make(cells, cfg.Width*cfg.Height),
	}
	g.canvas = matrix.NewCanvas(g.scratch, cfg.Width, cfg.Height)

	g.scheduler = NewScheduler(g)
	g.scheduler.Register(&SpawnSystem{})
	g.scheduler.Register(&InputSystem{})
	g.scheduler.Register(&GravitySystem{})
	g.scheduler.Register(&LockSystem{})
	g.scheduler.Register(&LineClearSystem{})
	g.scheduler.Register(&OutOfBoundsSystem{})
	g.scheduler.Register(&RenderSystem{})
	return g, nil
}

// Tick advances the game by one step and renders it into the target.
func (g *Game) Tick() {
	now := time.Now()
	dt := 0.0
	if !g.lastTick.IsZero() {
		dt = now.Sub(g.lastTick).Seconds()
	}
	g.scheduler.Once(dt)
}

// Do queues an action for the next tick.
func (g *Game) Do(a Action) {
	g.actions = append(g.actions, a)
}

// CurrentPiece reports the active piece, if any.
func (g *Game) CurrentPiece() (PieceView, bool) {
	if g.piece == nil {
		return PieceView{}, false
	}
	p := g.piece
	return PieceView{
		Kind:     p.Kind,
		Position: p.Position,
		Width:    p.Width,
		Height:   p.Height,
		Rotation: p.Rotation,
		Shape:    p.String(),
	}, true
}

// State is the state the last tick left the game in.
func (g *Game) State() State { return g.state }

// Stats returns a copy of the counters.
func (g *Game) Stats() Stats { return g.stats }

// Config returns the configuration the game was created with.
func (g *Game) Config() Config { return g.cfg }

// Field exposes the landed board.
func (g *Game) Field() *Field { return g.field }

// Scheduler exposes the tick scheduler so hosts can add systems.
func (g *Game) Scheduler() *Scheduler { return g.scheduler }

// Board returns the landed cells, width*height bytes.
func (g *Game) Board() []byte {
	return g.field.Snapshot()
}

// Reset empties the board and starts over on the next tick.
func (g *Game) Reset() {
	g.reset()
}

func (g *Game) reset() {
	g.field.Reset()
	g.piece = nil
	g.state = Spawning
	g.actions = g.actions[:0]
	g.grounded = 0
	g.gravity = 0
	g.forceLock = false
	g.stats = Stats{Ticks: g.stats.Ticks}
}

// try replaces the active piece with p when p is a legal position.
func (g *Game) try(p tetromino.Piece) bool {
	ok := g.field.FitsAcross(p)
	if g.cfg.Mode == Classic {
		ok = g.field.Fits(p)
	}
	if ok {
		*g.piece = p
	}
	return ok
}

// spawn deals the next piece. In classic mode a piece that does not fit
// ends the game.
func (g *Game) spawn() {
	p := g.gen.Next(g.cfg.Width)
	if g.cfg.Mode == Classic && !g.field.Fits(p) {
		g.state = GameOver
		return
	}

	g.piece = &p
	g.grounded = 0
	g.gravity = 0
	g.spawned = true
	g.state = Falling
	g.stats.Spawned++
}

// render composites the board and the active piece and writes every field
// cell to the target. Game over replaces the view with a framed "GO".
func (g *Game) render() {
	view := g.scratch
	w, h := g.cfg.Width, g.cfg.Height

	if g.state == GameOver {
		clear(view)
		tinydraw.Rectangle(g.canvas, 0, 0, int16(w), int16(h), on)
		tinyfont.WriteLine(g.canvas, &tinyfont.TomThumb, 0, int16(h/2+3), "GO", on)
	} else {
		g.field.paint(view)
		if g.piece != nil {
			for pt := range g.piece.Points() {
				if pt.X >= 0 && pt.X < w && pt.Y >= 0 && pt.Y < h {
					view[pt.Y*w+pt.X] = 1
				}
			}
		}
	}

	for i, v := range view {
		g.target.Set(i, v)
	}
}

func (g *Game) hardDrop() {
	if g.cfg.Mode == Demo {
		g.piece.Position.Y = g.cfg.Height
		return
	}
	for g.try(g.piece.Moved(0, 1)) {
	}
	g.forceLock = true
}
