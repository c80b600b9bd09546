// Package tetromino models the seven falling-block pieces: their shapes,
// clockwise rotation and random spawning.
package tetromino

import (
	"iter"
)

//go:generate stringer -type=Kind -output=kind_string.go

// Kind is one of the seven piece shapes.
type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// Kinds lists every piece kind in declaration order.
var Kinds = []Kind{I, O, T, S, Z, J, L}

// Point is a field cell, y growing downward.
type Point struct {
	X, Y int
}

// shapes holds the spawn orientation of each kind, row-major, top row first.
var shapes = [...]struct {
	width  int
	height int
	cells  string
}{
	I: {4, 1, "XXXX"},
	O: {2, 2, "XX" + "XX"},
	T: {3, 2, ".X." + "XXX"},
	S: {3, 2, ".XX" + "XX."},
	Z: {3, 2, "XX." + ".XX"},
	J: {3, 2, "X.." + "XXX"},
	L: {3, 2, "..X" + "XXX"},
}

// Piece is a shape with a position. Position is the top-left corner of the
// bounding box in field coordinates, y growing downward.
type Piece struct {
	Kind     Kind
	Width    int
	Height   int
	Cells    []bool
	Position Point
	// Rotation counts clockwise quarter turns from the spawn orientation.
	Rotation int
}

// New builds a piece of the given kind in its spawn orientation at (0, 0).
func New(kind Kind) Piece {
	s := shapes[kind]
	p := Piece{
		Kind:   kind,
		Width:  s.width,
		Height: s.height,
		Cells:  make([]bool, len(s.cells)),
	}
	for i, c := range s.cells {
		p.Cells[i] = c == 'X'
	}
	return p
}

// Filled reports whether the shape covers (row, col) of its bounding box.
func (p Piece) Filled(row, col int) bool {
	if row < 0 || row >= p.Height || col < 0 || col >= p.Width {
		return false
	}
	return p.Cells[row*p.Width+col]
}

// Rotated returns a copy turned 90 degrees clockwise. The bounding box
// swaps: the result is Height wide and Width tall, and its cell (r, c)
// is the source cell (Height-1-c, r). The position is kept.
func (p Piece) Rotated() Piece {
	out := p
	out.Width, out.Height = p.Height, p.Width
	out.Cells = make([]bool, len(p.Cells))
	out.Rotation = (p.Rotation + 1) % 4

	for r := 0; r < out.Height; r++ {
		for c := 0; c < out.Width; c++ {
			out.Cells[r*out.Width+c] = p.Cells[(p.Height-1-c)*p.Width+r]
		}
	}
	return out
}

// RotatedCCW returns a copy turned 90 degrees counter-clockwise.
func (p Piece) RotatedCCW() Piece {
	return p.Rotated().Rotated().Rotated()
}

// Rotate turns the piece clockwise in place.
func (p *Piece) Rotate() {
	*p = p.Rotated()
}

// Moved returns a copy shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	out := p
	out.Position.X += dx
	out.Position.Y += dy
	return out
}

// Clone returns a copy that shares no memory with p.
func (p Piece) Clone() Piece {
	out := p
	out.Cells = append([]bool(nil), p.Cells...)
	return out
}

// Points yields the field coordinates of every filled cell.
func (p Piece) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for r := 0; r < p.Height; r++ {
			for c := 0; c < p.Width; c++ {
				if !p.Cells[r*p.Width+c] {
					continue
				}
				if !yield(Point{X: p.Position.X + c, Y: p.Position.Y + r}) {
					return
				}
			}
		}
	}
}

// String draws the shape with X for filled cells, one line per row.
func (p Piece) String() string {
	b := make([]byte, 0, (p.Width+1)*p.Height)
	for r := 0; r < p.Height; r++ {
		if r > 0 {
			b = append(b, '\n')
		}
		for c := 0; c < p.Width; c++ {
			if p.Cells[r*p.Width+c] {
				b = append(b, 'X')
			} else {
				b = append(b, '.')
			}
		}
	}
	return string(b)
}
