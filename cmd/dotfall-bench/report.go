package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/dotfall/game"
	"github.com/plus3/dotfall/matrix"
	"github.com/plus3/dotfall/matrix/emulator"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Panels   int
	Mode     string
	Seed     uint64

	// Results
	TotalTime      time.Duration
	TickTime       Stats
	FlushTime      Stats
	Game           game.Stats
	Display        matrix.Stats
	Chain          emulator.Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// TicksPerSecond is the achieved tick rate over the whole run.
func (r *Report) TicksPerSecond() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.Game.Ticks) / r.TotalTime.Seconds()
}

const reportTemplate = `
# dotfall Benchmark Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Panels:** {{.Panels}}
- **Mode:** {{.Mode}}
- **Seed:** {{.Seed}}

## Game
- **Ticks:** {{.Game.Ticks}} ({{printf "%.0f" .TicksPerSecond}}/s)
- **Pieces Spawned:** {{.Game.Spawned}}
- **Pieces Locked:** {{.Game.Locked}}
- **Pieces Discarded:** {{.Game.Discarded}}
- **Lines Cleared:** {{.Game.Lines}}
- **Tick Time:** avg {{.TickTime.Avg}}, min {{.TickTime.Min}}, max {{.TickTime.Max}}

## Display
- **Flushes:** {{.Display.Flushes}} ({{.Display.SkippedFlushes}} skipped, {{.Display.FailedFlushes}} failed)
- **Latch Frames:** {{.Display.Frames}}
- **Bytes Written:** {{.Display.Bytes}}
- **Flush Time:** avg {{.FlushTime.Avg}}, min {{.FlushTime.Min}}, max {{.FlushTime.Max}}
- **Chain Latches:** {{.Chain.Latches}} ({{.Chain.Invalid}} invalid)

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
