// Command dotfall-sim plays the game on an emulated MAX7219 chain drawn in
// a window.
package main

import (
	"flag"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	debugui_ebiten "github.com/plus3/dotfall/debugui/ebiten"
	"github.com/plus3/dotfall/game"
	"github.com/plus3/dotfall/input"
	"github.com/plus3/dotfall/matrix"
	"github.com/plus3/dotfall/matrix/emulator"
	"github.com/plus3/dotfall/tetromino"
)

func main() {
	panels := flag.Int("panels", 2, "Number of 8x8 panels in the chain.")
	tick := flag.Duration("tick", 500*time.Millisecond, "Time between game ticks.")
	modeName := flag.String("mode", game.Classic.String(), "Game mode: demo or classic.")
	orderName := flag.String("chain", matrix.FirstPanelFirst.String(), "Chain order: first-panel-first or last-panel-first.")
	intensity := flag.Uint("intensity", uint(matrix.DefaultIntensity), "LED intensity, 0 to 15.")
	scale := flag.Int("scale", 32, "Pixels per LED.")
	seed := flag.Uint64("seed", 0, "Piece generator seed; 0 picks one at random.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug overlay.")
	flag.Parse()

	mode, err := game.ParseMode(*modeName)
	if err != nil {
		log.Fatalf("Invalid -mode: %v", err)
	}
	order, err := matrix.ParseChainOrder(*orderName)
	if err != nil {
		log.Fatalf("Invalid -chain: %v", err)
	}
	level, err := matrix.ParseIntensity(byte(min(*intensity, 0xFF)))
	if err != nil {
		log.Fatalf("Invalid -intensity: %v", err)
	}

	chain, err := emulator.New(*panels)
	if err != nil {
		log.Fatalf("Failed to create emulator: %v", err)
	}
	display, err := matrix.New(chain, chain, *panels, matrix.WithChainOrder(order), matrix.WithIntensity(level))
	if err != nil {
		log.Fatalf("Failed to create display: %v", err)
	}
	if err := display.Initialize(); err != nil {
		log.Fatalf("Failed to initialize display: %v", err)
	}

	if *seed == 0 {
		*seed = rand.Uint64()
	}
	log.Printf("Seed %d, %d panels, %s mode", *seed, *panels, mode)

	cfg := game.DefaultConfig()
	cfg.Height = *panels * matrix.PanelSize
	cfg.Mode = mode
	g, err := game.New(cfg, display, tetromino.NewBag(rand.New(rand.NewPCG(*seed, *seed))))
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	loop := game.NewLoop(g, display)
	dispatcher := &input.Dispatcher{}
	dispatcher.Register(loop)

	sim := &Sim{
		chain:      chain,
		display:    display,
		loop:       loop,
		dispatcher: dispatcher,
		layout:     Layout{Panels: *panels, Scale: *scale, Gap: *scale / 4, Margin: *scale / 2},
		tick:       *tick,
	}

	w, h := sim.layout.Size()
	if *debug {
		backend := debugui_ebiten.NewBackend("dotfall", w+360, max(h, 620))
		sim.debug = debugui_ebiten.NewHost(backend, 120)
		sim.debug.Overlay.Left = float32(w)
	} else {
		ebiten.SetWindowSize(w, h)
		ebiten.SetWindowTitle("dotfall")
	}

	if err := ebiten.RunGame(sim); err != nil {
		log.Fatalf("Simulator stopped: %v", err)
	}
}
