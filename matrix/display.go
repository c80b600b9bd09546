// Package matrix drives a daisy chain of MAX7219/MAX7221 8x8 LED matrix
// panels from a cached pixel buffer.
//
// The Display keeps one byte per pixel and a dirty flag. Flush converts the
// buffer into digit register writes with Transform and sends one latch frame
// per display row: the latch is asserted, one {register, value} command is
// written per panel, and the latch is released to commit the frame on every
// chip at once.
package matrix

import (
	"errors"
	"fmt"
)

// Bus writes raw bytes to the chain. The slice is only valid for the
// duration of the call.
type Bus interface {
	Write(p []byte) error
}

// Latch drives the shared chip select (LOAD) line. Assert pulls it low,
// Deassert releases it high, which commits the shifted commands.
type Latch interface {
	Assert() error
	Deassert() error
}

// ChainOrder fixes which panel receives the first command of a frame.
type ChainOrder uint8

const (
	// FirstPanelFirst writes panel 0 first. On a shift-through chain this
	// puts panel 0 on the chip farthest from the controller.
	FirstPanelFirst ChainOrder = iota
	// LastPanelFirst writes the last panel first, so panel 0 lands on the
	// chip nearest to the controller.
	LastPanelFirst
)

// String returns the form ParseChainOrder accepts.
func (o ChainOrder) String() string {
	switch o {
	case FirstPanelFirst:
		return "first-panel-first"
	case LastPanelFirst:
		return "last-panel-first"
	}
	return fmt.Sprintf("ChainOrder(%d)", uint8(o))
}

// ParseChainOrder accepts the String form of a ChainOrder.
func ParseChainOrder(s string) (ChainOrder, error) {
	switch s {
	case "first-panel-first", "first":
		return FirstPanelFirst, nil
	case "last-panel-first", "last":
		return LastPanelFirst, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrChainOrder, s)
}

// Stats counts the traffic a Display produced.
type Stats struct {
	Frames         uint64
	Commands       uint64
	Bytes          uint64
	Flushes        uint64
	SkippedFlushes uint64
	FailedFlushes  uint64
}

// Option configures a Display at construction.
type Option func(*Display)

// WithIntensity sets the brightness written by Initialize.
func WithIntensity(i Intensity) Option {
	return func(d *Display) {
		d.intensity = i
	}
}

// WithChainOrder fixes the panel order within a latch frame.
func WithChainOrder(o ChainOrder) Option {
	return func(d *Display) {
		d.order = o
	}
}

// WithBuffer makes the Display use buf as its pixel buffer. Its length must
// be BufferLen(panels).
func WithBuffer(buf []byte) Option {
	return func(d *Display) {
		d.buf = buf
	}
}

// Display is the pixel cache and protocol driver for one chain. It is not
// safe for concurrent use.
type Display struct {
	bus       Bus
	latch     Latch
	panels    int
	order     ChainOrder
	intensity Intensity

	buf   []byte
	dirty bool

	// scratch for one row of panel bytes and one command
	row []byte
	cmd [2]byte

	stats Stats
}

// New creates a Display for a chain of panels. It does not touch the bus;
// call Initialize before the first Flush.
func New(bus Bus, latch Latch, panels int, opts ...Option) (*Display, error) {
	if bus == nil || latch == nil {
		panic("matrix: New requires a bus and a latch")
	}
	if panels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrPanelCount, panels)
	}

	d := &Display{
		bus:       bus,
		latch:     latch,
		panels:    panels,
		order:     FirstPanelFirst,
		intensity: DefaultIntensity,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.buf == nil {
		d.buf = make([]byte, BufferLen(panels))
	} else if len(d.buf) != BufferLen(panels) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBufferSize, len(d.buf), BufferLen(panels))
	}
	if d.intensity > MaxIntensity {
		return nil, fmt.Errorf("%w: %d", ErrIntensity, d.intensity)
	}
	if d.order != FirstPanelFirst && d.order != LastPanelFirst {
		return nil, fmt.Errorf("%w: %d", ErrChainOrder, d.order)
	}

	d.row = make([]byte, panels)
	return d, nil
}

// Initialize brings every chip out of test and shutdown mode, selects raw
// (no-decode) output on all eight digits, sets the intensity and clears the
// panels.
func (d *Display) Initialize() error {
	bringUp := []Command{
		{RegDisplayTest, 0},
		{RegShutdown, NormalOperation.Byte()},
		{RegDecodeMode, NoDecode.Byte()},
		{RegScanLimit, ScanAll.Byte()},
		{RegIntensity, d.intensity.Byte()},
	}
	for _, c := range bringUp {
		if err := d.broadcast(c.Register, c.Value); err != nil {
			return fmt.Errorf("initialize %s: %w", c.Register, err)
		}
	}
	return d.Clear()
}

// Set stores value at a flat pixel index. Indices outside the buffer are
// ignored. The buffer is marked dirty only when the cell changes.
func (d *Display) Set(index int, value byte) {
	if index < 0 || index >= len(d.buf) {
		return
	}
	if d.buf[index] != value {
		d.buf[index] = value
		d.dirty = true
	}
}

// Get returns the cached value at index, or 0 outside the buffer.
func (d *Display) Get(index int) byte {
	if index < 0 || index >= len(d.buf) {
		return 0
	}
	return d.buf[index]
}

// Fill sets every pixel to value and marks the buffer dirty.
func (d *Display) Fill(value byte) {
	for i := range d.buf {
		d.buf[i] = value
	}
	d.dirty = true
}

// Flush sends the buffer to the chain, one latch frame per row. It does
// nothing while the buffer is clean. On failure the buffer stays dirty and
// the next Flush repaints every row.
func (d *Display) Flush() error {
	if !d.dirty {
		d.stats.SkippedFlushes++
		return nil
	}

	for row := 0; row < PanelSize; row++ {
		transformRow(d.buf, row, d.row)
		if err := d.writeFrame(digitRegisters[row], d.row); err != nil {
			d.stats.FailedFlushes++
			return fmt.Errorf("flush row %d: %w", row, err)
		}
	}

	d.dirty = false
	d.stats.Flushes++
	return nil
}

// Clear blanks the buffer and flushes it.
func (d *Display) Clear() error {
	d.Fill(0)
	return d.Flush()
}

// SetIntensity changes the brightness of every panel.
func (d *Display) SetIntensity(i Intensity) error {
	if i > MaxIntensity {
		return fmt.Errorf("%w: %d", ErrIntensity, i)
	}
	if err := d.broadcast(RegIntensity, i.Byte()); err != nil {
		return err
	}
	d.intensity = i
	return nil
}

// Shutdown blanks (true) or wakes (false) every panel. Digit registers keep
// their contents while shut down.
func (d *Display) Shutdown(off bool) error {
	mode := NormalOperation
	if off {
		mode = PowerDown
	}
	return d.broadcast(RegShutdown, mode.Byte())
}

// DisplayTest lights every LED at full brightness while on.
func (d *Display) DisplayTest(on bool) error {
	var v byte
	if on {
		v = 1
	}
	return d.broadcast(RegDisplayTest, v)
}

// Len is the pixel buffer length, 64 per panel.
func (d *Display) Len() int { return len(d.buf) }

// Panels is the number of chained panels.
func (d *Display) Panels() int { return d.panels }

// Dirty reports unflushed changes.
func (d *Display) Dirty() bool { return d.dirty }

// Intensity is the level last written to the chain.
func (d *Display) Intensity() Intensity { return d.intensity }

// ChainOrder is the order fixed at construction.
func (d *Display) ChainOrder() ChainOrder { return d.order }

// Stats returns a copy of the wire counters.
func (d *Display) Stats() Stats { return d.stats }

// Snapshot returns a copy of the pixel buffer.
func (d *Display) Snapshot() []byte {
	out := make([]byte, len(d.buf))
	copy(out, d.buf)
	return out
}

// broadcast writes the same command to every panel in one frame.
func (d *Display) broadcast(reg Register, value byte) error {
	for i := range d.row {
		d.row[i] = value
	}
	return d.writeFrame(reg, d.row)
}

// writeFrame sends one command per panel between Assert and Deassert.
// values[p] is the value for panel p. The latch is released even when a
// write fails.
func (d *Display) writeFrame(reg Register, values []byte) (err error) {
	if err := d.latch.Assert(); err != nil {
		return fmt.Errorf("%w: select: %w", ErrBus, err)
	}
	defer func() {
		if derr := d.latch.Deassert(); derr != nil {
			err = errors.Join(err, fmt.Errorf("%w: deselect: %w", ErrBus, derr))
		}
		if err == nil {
			d.stats.Frames++
		}
	}()

	for i := 0; i < d.panels; i++ {
		panel := i
		if d.order == LastPanelFirst {
			panel = d.panels - 1 - i
		}

		d.cmd[0] = reg.Byte()
		d.cmd[1] = values[panel]
		if err := d.bus.Write(d.cmd[:]); err != nil {
			return fmt.Errorf("%w: panel %d: %w", ErrBus, panel, err)
		}
		d.stats.Commands++
		d.stats.Bytes += uint64(len(d.cmd))
	}
	return nil
}
