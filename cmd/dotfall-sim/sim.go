package main

import (
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/dotfall/debugui"
	debugui_ebiten "github.com/plus3/dotfall/debugui/ebiten"
	"github.com/plus3/dotfall/game"
	"github.com/plus3/dotfall/input"
	"github.com/plus3/dotfall/matrix"
	"github.com/plus3/dotfall/matrix/emulator"
)

var keyBindings = map[ebiten.Key]input.Event{
	ebiten.KeyArrowLeft:  input.Left,
	ebiten.KeyArrowRight: input.Right,
	ebiten.KeyArrowUp:    input.RotateCW,
	ebiten.KeyX:          input.RotateCW,
	ebiten.KeyZ:          input.RotateCCW,
	ebiten.KeyArrowDown:  input.SoftDrop,
	ebiten.KeySpace:      input.HardDrop,
	ebiten.KeyR:          input.Reset,
}

// Sim implements ebiten.Game over an emulated chain.
type Sim struct {
	chain      *emulator.Chain
	display    *matrix.Display
	loop       *game.Loop
	dispatcher *input.Dispatcher
	layout     Layout

	tick     time.Duration
	lastStep time.Time
	paused   bool

	// debug is nil when the overlay is disabled.
	debug *debugui_ebiten.Host
}

func (s *Sim) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if s.debug != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
			s.debug.Enabled = !s.debug.Enabled
		}
		s.debug.Update(debugui.Collect(s.loop, s.display, s.chain))
	}

	if s.debug == nil || !s.debug.WantsKeyboard() {
		s.handleKeys()
	}

	if !s.paused && time.Since(s.lastStep) >= s.tick {
		s.lastStep = time.Now()
		if err := s.loop.Step(); err != nil {
			log.Printf("step: %v", err)
		}
	}
	return nil
}

func (s *Sim) handleKeys() {
	for key, event := range keyBindings {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if err := s.dispatcher.Dispatch(event); err != nil {
			log.Printf("input: %v", err)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		s.paused = !s.paused
		if err := s.display.Shutdown(s.paused); err != nil {
			log.Printf("shutdown: %v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		s.nudgeIntensity(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		s.nudgeIntensity(1)
	}
}

func (s *Sim) nudgeIntensity(delta int) {
	next := int(s.display.Intensity()) + delta
	if next < int(matrix.MinIntensity) || next > int(matrix.MaxIntensity) {
		return
	}
	if err := s.display.SetIntensity(matrix.Intensity(next)); err != nil {
		log.Printf("intensity: %v", err)
	}
}

func (s *Sim) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	order := s.display.ChainOrder()
	chips := s.chain.Snapshot()
	lit := s.chain.Visible(order)
	radius := s.layout.Radius()

	for i, v := range lit {
		panel := i / matrix.PanelCells
		chip := chips[emulator.ChipFor(order, panel, len(chips))]
		x, y := s.layout.Center(i)
		vector.DrawFilledCircle(screen, x, y, radius, ledColor(v != 0, chip.Intensity), true)
	}

	if s.debug != nil {
		s.debug.Draw(screen)
	}
}

func (s *Sim) Layout(outsideWidth, outsideHeight int) (int, int) {
	if s.debug != nil {
		s.debug.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return s.layout.Size()
}
