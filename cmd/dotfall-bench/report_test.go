package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/dotfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)

	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:  time.Second,
		Panels:    2,
		Mode:      "demo",
		TotalTime: 2 * time.Second,
		Game:      game.Stats{Ticks: 500, Lines: 3},
	}
	assert.InDelta(t, 250.0, r.TicksPerSecond(), 1e-9)

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "- **Ticks:** 500 (250/s)")
	assert.Contains(t, out, "- **Lines Cleared:** 3")
	assert.NotContains(t, out, "GC Pause")
}
