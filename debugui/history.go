package debugui

import "time"

// History is a fixed ring of samples in the layout PlotLines expects.
type History struct {
	values []float32
	next   int
	filled int
}

// NewHistory keeps the last frames samples.
func NewHistory(frames int) *History {
	if frames < 1 {
		frames = 1
	}
	return &History{values: make([]float32, frames)}
}

// Push records v, overwriting the oldest sample when full.
func (h *History) Push(v float32) {
	h.values[h.next] = v
	h.next = (h.next + 1) % len(h.values)
	if h.filled < len(h.values) {
		h.filled++
	}
}

// Len reports how many samples have been pushed, up to capacity.
func (h *History) Len() int { return h.filled }

// Average is the mean of the pushed samples, zero when empty.
func (h *History) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.values[:h.filled] {
		sum += v
	}
	return sum / float32(h.filled)
}

// Max is the largest pushed sample, zero when empty.
func (h *History) Max() float32 {
	var m float32
	for _, v := range h.values[:h.filled] {
		if v > m {
			m = v
		}
	}
	return m
}

// Ordered returns the samples oldest first.
func (h *History) Ordered() []float32 {
	out := make([]float32, 0, h.filled)
	if h.filled < len(h.values) {
		return append(out, h.values[:h.filled]...)
	}
	out = append(out, h.values[h.next:]...)
	return append(out, h.values[:h.next]...)
}

// FrameTimer measures the time between frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

// NewFrameTimer starts timing from now.
func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// DeltaTime returns the seconds since the previous call.
func (ft *FrameTimer) DeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
