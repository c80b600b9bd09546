// Package emulator models a daisy chain of MAX7219 chips at the wire level.
//
// A Chain implements matrix.Bus and matrix.Latch. Bytes written while the
// latch is asserted shift through one 16-bit register per chip; releasing
// the latch makes every chip execute the command sitting in its own shift
// register. Chips are numbered by their distance from the controller, so
// chip 0 is wired to the controller's data line and receives the last
// command of a frame.
package emulator

import (
	"errors"
	"sync"

	"github.com/plus3/dotfall/matrix"
)

var (
	ErrNotSelected = errors.New("emulator: write while latch is released")
	ErrChipCount   = errors.New("emulator: chip count must be positive")
)

// Chip is the register file of one MAX7219.
type Chip struct {
	Digits    [matrix.PanelSize]byte
	Decode    matrix.DecodeMode
	Intensity matrix.Intensity
	ScanLimit matrix.ScanLimit
	Shutdown  bool
	Test      bool
}

// Lit reports whether the LED at (row, col) is visibly on, taking display
// test, shutdown and scan limit into account. Column 0 is bit 7.
func (c Chip) Lit(row, col int) bool {
	if row < 0 || row >= matrix.PanelSize || col < 0 || col >= matrix.PanelSize {
		return false
	}
	if c.Test {
		return true
	}
	if c.Shutdown || row > int(c.ScanLimit) {
		return false
	}
	return c.Digits[row]&(0x80>>col) != 0
}

func powerOn() Chip {
	return Chip{Shutdown: true}
}

// Stats counts traffic seen by the chain.
type Stats struct {
	Writes   uint64
	Bytes    uint64
	Latches  uint64
	Commands uint64
	Invalid  uint64
}

// Option configures a Chain.
type Option func(*Chain)

// WithRecording keeps every committed frame, indexed by chip, for Frames.
func WithRecording() Option {
	return func(c *Chain) {
		c.record = true
	}
}

// Chain is a virtual daisy chain. It is safe for concurrent use.
type Chain struct {
	mu       sync.Mutex
	chips    []Chip
	shift    []byte
	selected bool
	fault    error
	record   bool
	frames   [][]matrix.Command
	stats    Stats
}

var (
	_ matrix.Bus   = (*Chain)(nil)
	_ matrix.Latch = (*Chain)(nil)
)

// New returns a chain of powered-up chips, all in shutdown as real parts
// come up.
func New(chips int, opts ...Option) (*Chain, error) {
	if chips <= 0 {
		return nil, ErrChipCount
	}

	c := &Chain{
		chips: make([]Chip, chips),
		shift: make([]byte, 2*chips),
	}
	for i := range c.chips {
		c.chips[i] = powerOn()
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Assert pulls LOAD low.
func (c *Chain) Assert() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = true
	return nil
}

// Write shifts p into the chain. The oldest byte moves toward the far end.
func (c *Chain) Write(p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fault != nil {
		err := c.fault
		c.fault = nil
		return err
	}
	if !c.selected {
		return ErrNotSelected
	}

	for _, b := range p {
		copy(c.shift, c.shift[1:])
		c.shift[len(c.shift)-1] = b
	}
	c.stats.Writes++
	c.stats.Bytes += uint64(len(p))
	return nil
}

// Deassert releases LOAD. On the rising edge every chip executes the
// command in its shift register.
func (c *Chain) Deassert() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.selected {
		return nil
	}
	c.selected = false
	c.stats.Latches++

	var frame []matrix.Command
	if c.record {
		frame = make([]matrix.Command, len(c.chips))
	}

	n := len(c.shift)
	for k := range c.chips {
		addr, value := c.shift[n-2-2*k], c.shift[n-1-2*k]
		reg, err := matrix.ParseRegister(addr & 0x0F)
		if err != nil {
			c.stats.Invalid++
			continue
		}
		if frame != nil {
			frame[k] = matrix.Command{Register: reg, Value: value}
		}
		if reg == matrix.RegNoOp {
			continue
		}
		c.chips[k].apply(reg, value)
		c.stats.Commands++
	}

	if frame != nil {
		c.frames = append(c.frames, frame)
	}
	return nil
}

func (chip *Chip) apply(reg matrix.Register, value byte) {
	if row, ok := reg.Row(); ok {
		chip.Digits[row] = value
		return
	}

	switch reg {
	case matrix.RegDecodeMode:
		chip.Decode = matrix.DecodeMode(value)
	case matrix.RegIntensity:
		chip.Intensity = matrix.Intensity(value & 0x0F)
	case matrix.RegScanLimit:
		chip.ScanLimit = matrix.ScanLimit(value & 0x07)
	case matrix.RegShutdown:
		chip.Shutdown = value&0x01 == 0
	case matrix.RegDisplayTest:
		chip.Test = value&0x01 != 0
	}
}

// InjectFault makes the next Write fail with err.
func (c *Chain) InjectFault(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fault = err
}

// Reset returns every chip to its power-on state and drops recorded frames.
func (c *Chain) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.chips {
		c.chips[i] = powerOn()
	}
	clear(c.shift)
	c.selected = false
	c.frames = nil
	c.stats = Stats{}
}

// Len is the number of chips.
func (c *Chain) Len() int { return len(c.chips) }

// Selected reports whether LOAD is currently low.
func (c *Chain) Selected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.selected
}

// Chip returns a copy of chip k, counted from the controller.
func (c *Chain) Chip(k int) Chip {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.chips[k]
}

// Snapshot copies the register file of every chip.
func (c *Chain) Snapshot() []Chip {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Chip, len(c.chips))
	copy(out, c.chips)
	return out
}

// Stats returns a copy of the counters.
func (c *Chain) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stats
}

// Frames returns the committed frames recorded since New or Reset.
func (c *Chain) Frames() [][]matrix.Command {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([][]matrix.Command, len(c.frames))
	copy(out, c.frames)
	return out
}

// ChipFor returns the chip that holds a panel for the given chain order.
func ChipFor(order matrix.ChainOrder, panel, chips int) int {
	if order == matrix.LastPanelFirst {
		return panel
	}
	return chips - 1 - panel
}

// Buffer decodes the digit registers back into a pixel buffer laid out the
// way matrix.Display lays out its cache. Lit cells read as 1.
func (c *Chain) Buffer(order matrix.ChainOrder) []byte {
	return c.decode(order, func(chip Chip, row int) byte {
		return chip.Digits[row]
	})
}

// Visible is Buffer with display test, shutdown and scan limit applied.
func (c *Chain) Visible(order matrix.ChainOrder) []byte {
	return c.decode(order, func(chip Chip, row int) byte {
		var b byte
		for col := 0; col < matrix.PanelSize; col++ {
			if chip.Lit(row, col) {
				b |= 0x80 >> col
			}
		}
		return b
	})
}

func (c *Chain) decode(order matrix.ChainOrder, rowByte func(Chip, int) byte) []byte {
	chips := c.Snapshot()

	rows := make([][]byte, matrix.PanelSize)
	for row := range rows {
		rows[row] = make([]byte, len(chips))
		for panel := range chips {
			rows[row][panel] = rowByte(chips[ChipFor(order, panel, len(chips))], row)
		}
	}
	return matrix.Untransform(rows)
}
