// Command dotfall-bench drives demo or classic games headless on an
// emulated chain as fast as it can and reports tick and flush timings.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/dotfall/game"
	"github.com/plus3/dotfall/input"
	"github.com/plus3/dotfall/matrix"
	"github.com/plus3/dotfall/matrix/emulator"
	"github.com/plus3/dotfall/tetromino"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the benchmark should run for.")
	panels := flag.Int("panels", 4, "Number of 8x8 panels in the emulated chain.")
	modeName := flag.String("mode", game.Classic.String(), "Game mode: demo or classic.")
	seed := flag.Uint64("seed", 1, "Seed for pieces and simulated input.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	mode, err := game.ParseMode(*modeName)
	if err != nil {
		log.Fatalf("Invalid -mode: %v", err)
	}

	log.Println("Starting dotfall benchmark...")

	chain, err := emulator.New(*panels)
	if err != nil {
		log.Fatalf("Failed to create emulator: %v", err)
	}
	display, err := matrix.New(chain, chain, *panels)
	if err != nil {
		log.Fatalf("Failed to create display: %v", err)
	}
	if err := display.Initialize(); err != nil {
		log.Fatalf("Failed to initialize display: %v", err)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	cfg := game.DefaultConfig()
	cfg.Height = *panels * matrix.PanelSize
	cfg.Mode = mode
	g, err := game.New(cfg, display, tetromino.NewBag(rng))
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	report := &Report{
		Duration: *duration,
		Panels:   *panels,
		Mode:     mode.String(),
		Seed:     *seed,
		TickTime: Stats{
			Samples: make([]time.Duration, 0),
		},
		FlushTime: Stats{
			Samples: make([]time.Duration, 0),
		},
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			// A random button press every few ticks keeps every system busy.
			if rng.IntN(4) == 0 {
				if a, ok := game.ActionFor(input.Events[rng.IntN(len(input.Events)-1)]); ok {
					g.Do(a)
				}
			}
			if g.State() == game.GameOver {
				g.Do(game.Reset)
			}

			tickStart := time.Now()
			g.Tick()
			report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))

			flushStart := time.Now()
			if err := display.Flush(); err != nil {
				log.Fatalf("Flush failed: %v", err)
			}
			report.FlushTime.Samples = append(report.FlushTime.Samples, time.Since(flushStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Game = g.Stats()
	report.Display = display.Stats()
	report.Chain = chain.Stats()
	report.TickTime.Finalize()
	report.FlushTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Benchmark finished.")

	fmt.Println("\n\n--- Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
