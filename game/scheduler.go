package game

import (
	"context"
	"reflect"
	"time"
)

// System is one step of a game tick.
type System interface {
	Execute(frame *Frame)
}

// Frame is what every system sees during one tick.
type Frame struct {
	DeltaTime float64
	Tick      uint64
	Game      *Game
	Commands  *Commands
}

// Commands buffers work that must run after every system of the tick.
type Commands struct {
	reset  bool
	defers []func()
}

// Reset queues a full game reset.
func (c *Commands) Reset() {
	c.reset = true
}

// Defer queues fn to run after the last system.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies the queued work to g and empties the buffer. A reset
// repaints the target so it matches the emptied game.
func (c *Commands) Flush(g *Game) {
	if c.reset {
		g.reset()
		g.render()
	}
	for _, fn := range c.defers {
		fn()
	}

	c.reset = false
	clear(c.defers)
	c.defers = c.defers[:0]
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	LastTick        time.Duration
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs systems in registration order, once per tick.
type Scheduler struct {
	game        *Game
	systems     []System
	systemStats []*systemStatsInternal
	commands    Commands
	tick        uint64
	lastTick    time.Duration
}

// NewScheduler returns a scheduler with no systems. Game.New registers
// the default ones on its own scheduler.
func NewScheduler(g *Game) *Scheduler {
	return &Scheduler{
		game:    g,
		systems: make([]System, 0),
	}
}

// Register appends a system. Systems must be non-nil.
func (s *Scheduler) Register(system System) {
	if system == nil {
		panic("game: Register called with a nil system")
	}
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once executes all registered systems once with the given delta time and
// counts the tick in the game's Stats.
func (s *Scheduler) Once(dt float64) {
	s.tick++
	s.game.stats.Ticks++
	frame := &Frame{
		DeltaTime: dt,
		Tick:      s.tick,
		Game:      s.game,
		Commands:  &s.commands,
	}

	begin := time.Now()
	s.game.lastTick = begin
	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.commands.Flush(s.game)
	s.lastTick = time.Since(begin)
}

// Run executes all systems repeatedly at the given interval until the
// context is cancelled. Nothing else may touch the game meanwhile; use Loop
// when input or flushes come from other goroutines.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		LastTick:    s.lastTick,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
