// Package periphbus connects a matrix.Display to Linux SPI and GPIO through
// periph.io.
//
// The MAX7219 chain needs LOAD held low across one command per panel, so the
// chip select is driven as a plain GPIO and the SPI port is opened with
// spi.NoCS.
package periphbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/plus3/dotfall/matrix"
)

var (
	// ErrTimeout is returned when a transfer outlives the write timeout.
	ErrTimeout = errors.New("periphbus: spi write timed out")
	// ErrBusy is returned while a timed out transfer is still on the wire.
	ErrBusy = errors.New("periphbus: spi busy with an earlier transfer")
	// ErrPin is returned when a gpioreg name does not resolve.
	ErrPin = errors.New("periphbus: gpio pin not found")
)

// Init loads the periph.io host drivers. It must run before Open.
func Init() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periphbus: host init: %w", err)
	}
	return nil
}

// SPI is a matrix.Bus over a periph.io spi.Conn. Writes are serialised, and
// after a timeout every Write fails with ErrBusy until the stuck transfer
// returns.
type SPI struct {
	mu      sync.Mutex
	conn    spi.Conn
	timeout time.Duration
	// stuck is the result channel of a timed out transfer, nil when idle.
	stuck chan error
}

var _ matrix.Bus = (*SPI)(nil)

// NewSPI wraps conn. A positive timeout bounds every Write.
func NewSPI(conn spi.Conn, timeout time.Duration) *SPI {
	return &SPI{conn: conn, timeout: timeout}
}

// Write sends p in one transfer.
func (s *SPI) Write(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stuck != nil {
		select {
		case <-s.stuck:
			s.stuck = nil
		default:
			return ErrBusy
		}
	}

	if s.timeout <= 0 {
		return s.conn.Tx(p, nil)
	}

	// the transfer may outlive this call
	w := make([]byte, len(p))
	copy(w, p)

	done := make(chan error, 1)
	go func() {
		done <- s.conn.Tx(w, nil)
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		s.stuck = done
		return fmt.Errorf("%w after %s", ErrTimeout, s.timeout)
	}
}

// Busy reports whether a timed out transfer has not returned yet.
func (s *SPI) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stuck == nil {
		return false
	}
	select {
	case <-s.stuck:
		s.stuck = nil
		return false
	default:
		return true
	}
}

// String names the underlying connection.
func (s *SPI) String() string {
	return s.conn.String()
}

// Latch drives LOAD/CS on a GPIO output. Assert pulls it low.
type Latch struct {
	pin gpio.PinOut
}

var _ matrix.Latch = (*Latch)(nil)

// NewLatch drives pin. Open leaves it high.
func NewLatch(pin gpio.PinOut) *Latch {
	return &Latch{pin: pin}
}

// Assert pulls CS low.
func (l *Latch) Assert() error {
	return l.pin.Out(gpio.Low)
}

// Deassert drives CS high, latching the frame into the chain.
func (l *Latch) Deassert() error {
	return l.pin.Out(gpio.High)
}

// Config selects the SPI port and the CS pin.
type Config struct {
	// Port is the spireg name; empty selects the first port.
	Port string
	// CS is the gpioreg name of the LOAD line.
	CS           string
	Frequency    physic.Frequency
	Mode         spi.Mode
	WriteTimeout time.Duration
}

// DefaultConfig matches a MAX7219 on a Raspberry Pi SPI0 with CS on GPIO8.
func DefaultConfig() Config {
	return Config{
		CS:           "GPIO8",
		Frequency:    physic.MegaHertz,
		Mode:         spi.Mode0,
		WriteTimeout: 100 * time.Millisecond,
	}
}

// Device is an opened SPI port plus its latch pin.
type Device struct {
	Bus   *SPI
	Latch *Latch
	port  spi.PortCloser
}

// Open connects to the SPI port and claims the CS pin, leaving it high.
func Open(cfg Config) (*Device, error) {
	pin := gpioreg.ByName(cfg.CS)
	if pin == nil {
		return nil, fmt.Errorf("%w: %q", ErrPin, cfg.CS)
	}
	if err := pin.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("periphbus: cs %s: %w", cfg.CS, err)
	}

	port, err := spireg.Open(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("periphbus: open spi %q: %w", cfg.Port, err)
	}

	conn, err := port.Connect(cfg.Frequency, cfg.Mode|spi.NoCS, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("periphbus: connect spi: %w", err)
	}

	return &Device{
		Bus:   NewSPI(conn, cfg.WriteTimeout),
		Latch: NewLatch(pin),
		port:  port,
	}, nil
}

// Close releases the SPI port.
func (d *Device) Close() error {
	return d.port.Close()
}
