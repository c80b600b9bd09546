package game

import (
	"errors"
	"fmt"
)

var (
	ErrFieldSize     = errors.New("game: invalid field dimensions")
	ErrFieldTooLarge = errors.New("game: field does not fit the display")
	ErrConfig        = errors.New("game: invalid config")
)

// Mode selects the rule set.
type Mode uint8

const (
	// Demo lets pieces fall through the field and respawn once they leave
	// it. Nothing lands and nothing collides.
	Demo Mode = iota
	// Classic keeps a landed board, collides against it and the walls,
	// clears full rows and ends when a new piece cannot spawn.
	Classic
)

// String returns "demo" or "classic".
func (m Mode) String() string {
	switch m {
	case Demo:
		return "demo"
	case Classic:
		return "classic"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode accepts the String form of a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "demo":
		return Demo, nil
	case "classic":
		return Classic, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrConfig, s)
}

// Config sizes the field and picks the rules. Cell (x, y) renders to
// target index y*Width + x, which is the portrait layout of a matrix chain
// only when Width is matrix.PanelSize; New rejects any other width on a
// *matrix.Display.
type Config struct {
	Width  int
	Height int
	Mode   Mode
	// LockDelay is how many extra gravity steps a grounded piece survives
	// before it locks.
	LockDelay int
	// GravityEvery moves the piece down once every GravityEvery ticks.
	GravityEvery int
}

// DefaultConfig is a classic game on a two panel portrait chain.
func DefaultConfig() Config {
	return Config{
		Width:        8,
		Height:       16,
		Mode:         Classic,
		LockDelay:    1,
		GravityEvery: 1,
	}
}

func (c Config) validate(cells int) error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrFieldSize, c.Width, c.Height)
	}
	if c.Width*c.Height > cells {
		return fmt.Errorf("%w: %dx%d needs %d cells, display has %d",
			ErrFieldTooLarge, c.Width, c.Height, c.Width*c.Height, cells)
	}
	if c.Mode != Demo && c.Mode != Classic {
		return fmt.Errorf("%w: mode %d", ErrConfig, c.Mode)
	}
	if c.LockDelay < 0 {
		return fmt.Errorf("%w: lock delay %d", ErrConfig, c.LockDelay)
	}
	if c.GravityEvery < 1 {
		return fmt.Errorf("%w: gravity every %d ticks", ErrConfig, c.GravityEvery)
	}
	return nil
}
