// Command dotfall plays the game on a MAX7219 chain wired to the host's SPI
// port, with push buttons on GPIO pins.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/plus3/dotfall/game"
	"github.com/plus3/dotfall/input"
	"github.com/plus3/dotfall/matrix"
	"github.com/plus3/dotfall/matrix/periphbus"
	"github.com/plus3/dotfall/tetromino"
)

func main() {
	cfg := periphbus.DefaultConfig()
	flag.StringVar(&cfg.Port, "spi", "", "SPI port name; empty selects the first port.")
	flag.StringVar(&cfg.CS, "cs", cfg.CS, "GPIO driving the LOAD (CS) line.")
	flag.Var(&cfg.Frequency, "hz", "SPI clock frequency, e.g. 1MHz.")
	flag.DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "Maximum time for one SPI write.")

	panels := flag.Int("panels", 4, "Number of 8x8 panels in the chain.")
	intensity := flag.Uint("intensity", uint(matrix.DefaultIntensity), "LED intensity, 0 to 15.")
	orderName := flag.String("chain", matrix.FirstPanelFirst.String(), "Chain order: first-panel-first or last-panel-first.")
	tick := flag.Duration("tick", 500*time.Millisecond, "Time between game ticks.")
	modeName := flag.String("mode", game.Classic.String(), "Game mode: demo or classic.")
	debounce := flag.Duration("debounce", 30*time.Millisecond, "Button debounce interval.")

	buttons := map[input.Event]*string{
		input.Left:     flag.String("left", "", "GPIO for the move left button."),
		input.Right:    flag.String("right", "", "GPIO for the move right button."),
		input.RotateCW: flag.String("rotate", "", "GPIO for the rotate button."),
		input.HardDrop: flag.String("drop", "", "GPIO for the hard drop button."),
		input.Reset:    flag.String("reset", "", "GPIO for the reset button."),
	}
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

	if err := periphbus.Init(); err != nil {
		log.Fatalf("Failed to initialize host drivers: %v", err)
	}
	dev, err := periphbus.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open SPI: %v", err)
	}
	defer dev.Close()
	log.Printf("Opened %s, LOAD on %s", dev.Bus, cfg.CS)

	display, err := matrix.New(dev.Bus, dev.Latch, *panels, matrix.WithChainOrder(order), matrix.WithIntensity(level))
	if err != nil {
		log.Fatalf("Failed to create display: %v", err)
	}
	if err := display.Initialize(); err != nil {
		log.Fatalf("Failed to initialize display: %v", err)
	}

	gcfg := game.DefaultConfig()
	gcfg.Height = *panels * matrix.PanelSize
	gcfg.Mode = mode
	g, err := game.New(gcfg, display, tetromino.NewBag(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))))
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	loop := game.NewLoop(g, display)
	loop.OnError = func(err error) {
		log.Printf("Flush failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := input.NewNotifier(8)
	dispatcher := &input.Dispatcher{}
	dispatcher.Register(loop)
	dispatcher.Register(input.HandlerFunc(func(e input.Event) error {
		log.Printf("Button %s", e)
		return nil
	}))

	var wg sync.WaitGroup
	for event, name := range buttons {
		if *name == "" {
			continue
		}
		button, err := periphbus.OpenButton(*name, *debounce)
		if err != nil {
			log.Fatalf("Failed to open -%s button: %v", event, err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := button.Watch(ctx, func() {
				if !notifier.Post(event) {
					log.Printf("Dropped %s, input queue full", event)
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Button %s stopped: %v", event, err)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := input.Pump(ctx, notifier, dispatcher); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Input stopped: %v", err)
		}
	}()

	log.Printf("Running %s mode on %d panels, tick %s", mode, *panels, *tick)
	if err := loop.Run(ctx, *tick); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Game loop stopped: %v", err)
	}
	wg.Wait()

	if err := display.Clear(); err != nil {
		log.Printf("Failed to clear display: %v", err)
	}
	if err := display.Shutdown(true); err != nil {
		log.Printf("Failed to shut down display: %v", err)
	}
	log.Println("Stopped.")
}
