package game

import (
	"github.com/kamstrup/intmap"

	"github.com/plus3/dotfall/tetromino"
)

// Field is the landed board. Cells are keyed by y*width + x, with y growing
// downward from the top row.
type Field struct {
	width  int
	height int
	cells  *intmap.Map[int, tetromino.Kind]
}

// NewField returns an empty board.
func NewField(width, height int) *Field {
	return &Field{
		width:  width,
		height: height,
		cells:  intmap.New[int, tetromino.Kind](width * height),
	}
}

// Width is the number of columns.
func (f *Field) Width() int { return f.width }

// Height is the number of rows.
func (f *Field) Height() int { return f.height }

// Count returns the number of landed cells.
func (f *Field) Count() int { return f.cells.Len() }

func (f *Field) inside(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// Cell returns the kind that landed at (x, y).
func (f *Field) Cell(x, y int) (tetromino.Kind, bool) {
	if !f.inside(x, y) {
		return 0, false
	}
	return f.cells.Get(y*f.width + x)
}

// Blocked reports whether a piece cell may not occupy (x, y). The walls and
// the floor block; the space above the top row does not.
func (f *Field) Blocked(x, y int) bool {
	if x < 0 || x >= f.width || y >= f.height {
		return true
	}
	if y < 0 {
		return false
	}
	_, ok := f.cells.Get(y*f.width + x)
	return ok
}

// Fits reports whether p can sit at its position without overlapping the
// walls, the floor or the board.
func (f *Field) Fits(p tetromino.Piece) bool {
	for pt := range p.Points() {
		if f.Blocked(pt.X, pt.Y) {
			return false
		}
	}
	return true
}

// FitsAcross only checks the side walls.
func (f *Field) FitsAcross(p tetromino.Piece) bool {
	return p.Position.X >= 0 && p.Position.X+p.Width <= f.width
}

// Lock writes the cells of p into the board and returns how many landed
// inside the field.
func (f *Field) Lock(p tetromino.Piece) int {
	n := 0
	for pt := range p.Points() {
		if f.inside(pt.X, pt.Y) {
			f.cells.Put(pt.Y*f.width+pt.X, p.Kind)
			n++
		}
	}
	return n
}

func (f *Field) rowFull(y int) bool {
	for x := 0; x < f.width; x++ {
		if _, ok := f.cells.Get(y*f.width + x); !ok {
			return false
		}
	}
	return true
}

// FullRows lists the complete rows, top to bottom.
func (f *Field) FullRows() []int {
	var rows []int
	for y := 0; y < f.height; y++ {
		if f.rowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearLines removes every full row, drops the rows above it and returns
// the number of rows removed.
func (f *Field) ClearLines() int {
	cleared := 0
	dst := f.height - 1
	for y := f.height - 1; y >= 0; y-- {
		if f.rowFull(y) {
			cleared++
			continue
		}
		if dst != y {
			f.copyRow(y, dst)
		}
		dst--
	}
	for y := dst; y >= 0; y-- {
		f.clearRow(y)
	}
	return cleared
}

func (f *Field) copyRow(src, dst int) {
	for x := 0; x < f.width; x++ {
		if k, ok := f.cells.Get(src*f.width + x); ok {
			f.cells.Put(dst*f.width+x, k)
		} else {
			f.cells.Del(dst*f.width + x)
		}
	}
}

func (f *Field) clearRow(y int) {
	for x := 0; x < f.width; x++ {
		f.cells.Del(y*f.width + x)
	}
}

// Reset removes every landed cell.
func (f *Field) Reset() {
	f.cells.Clear()
}

// Snapshot returns the board as width*height bytes, 1 for landed cells.
func (f *Field) Snapshot() []byte {
	out := make([]byte, f.width*f.height)
	f.paint(out)
	return out
}

func (f *Field) paint(dst []byte) {
	for i := range dst {
		if _, ok := f.cells.Get(i); ok {
			dst[i] = 1
		} else {
			dst[i] = 0
		}
	}
}
