// Package tinygobus adapts TinyGo peripherals to matrix.Bus and
// matrix.Latch. It builds with the regular toolchain too; machine.SPI
// satisfies drivers.SPI and machine.Pin satisfies OutputPin and InputPin.
package tinygobus

import (
	"tinygo.org/x/drivers"

	"github.com/plus3/dotfall/matrix"
)

// OutputPin is the part of machine.Pin the latch drives.
type OutputPin interface {
	High()
	Low()
}

// InputPin is the part of machine.Pin Keys reads. Get is true when high.
type InputPin interface {
	Get() bool
}

// SPI is a matrix.Bus over a TinyGo SPI peripheral.
type SPI struct {
	bus drivers.SPI
}

var _ matrix.Bus = (*SPI)(nil)

// NewSPI wraps a configured TinyGo SPI bus.
func NewSPI(bus drivers.SPI) *SPI {
	return &SPI{bus: bus}
}

// Write transmits p and discards what the bus shifts back.
func (s *SPI) Write(p []byte) error {
	return s.bus.Tx(p, nil)
}

// Latch drives LOAD on a GPIO. Pin writes cannot fail on TinyGo targets.
type Latch struct {
	pin OutputPin
}

var _ matrix.Latch = (*Latch)(nil)

// NewLatch takes ownership of pin and releases it.
func NewLatch(pin OutputPin) *Latch {
	pin.High()
	return &Latch{pin: pin}
}

// Assert pulls LOAD low.
func (l *Latch) Assert() error {
	l.pin.Low()
	return nil
}

// Deassert drives LOAD high, committing the frame.
func (l *Latch) Deassert() error {
	l.pin.High()
	return nil
}
