package tetromino

import "math/rand/v2"

// Rand is the source of uniform integers in [0, n). *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

func orGlobal(rng Rand) Rand {
	if rng == nil {
		return globalRand{}
	}
	return rng
}

// Place rotates p clockwise a random number of times in [0, 4) and puts it
// at y = 0 on a random column that keeps the rotated shape inside a field
// of fieldWidth columns. Pieces wider than the field are placed at x = 0.
func Place(rng Rand, p Piece, fieldWidth int) Piece {
	rng = orGlobal(rng)

	for n := rng.IntN(4); n > 0; n-- {
		p = p.Rotated()
	}

	p.Position = Point{}
	if span := fieldWidth - p.Width + 1; span > 0 {
		p.Position.X = rng.IntN(span)
	}
	return p
}

// Random picks a kind uniformly and places it with Place.
func Random(rng Rand, fieldWidth int) Piece {
	rng = orGlobal(rng)
	return Place(rng, New(Kinds[rng.IntN(len(Kinds))]), fieldWidth)
}

// Generator chooses the next piece to spawn.
type Generator interface {
	Next(fieldWidth int) Piece
}

// Uniform draws every piece independently with Random.
type Uniform struct {
	Rand Rand
}

// Next returns a Random piece.
func (u *Uniform) Next(fieldWidth int) Piece {
	return Random(u.Rand, fieldWidth)
}

// Bag deals all seven kinds in a shuffled order before reshuffling, so no
// kind waits more than twelve pieces.
type Bag struct {
	Rand Rand
	next []Kind
}

// NewBag creates a bag drawing from rng, or from the global source when rng
// is nil.
func NewBag(rng Rand) *Bag {
	return &Bag{Rand: rng}
}

// Next deals the next kind of the bag, refilling and shuffling it when
// empty.
func (b *Bag) Next(fieldWidth int) Piece {
	rng := orGlobal(b.Rand)

	if len(b.next) == 0 {
		b.next = append(b.next[:0], Kinds...)
		for i := len(b.next) - 1; i > 0; i-- {
			j := rng.IntN(i + 1)
			b.next[i], b.next[j] = b.next[j], b.next[i]
		}
	}

	kind := b.next[0]
	b.next = b.next[1:]
	return Place(rng, New(kind), fieldWidth)
}

// Peek returns the kinds left in the current bag.
func (b *Bag) Peek() []Kind {
	return append([]Kind(nil), b.next...)
}

// Sequence replays a fixed list of kinds, cycling when it runs out. Pieces
// spawn unrotated at column X, clamped into the field. An empty list cycles
// through every kind in Kinds order.
type Sequence struct {
	Kinds []Kind
	X     int
	pos   int
}

// Next deals the next kind of the list.
func (s *Sequence) Next(fieldWidth int) Piece {
	kinds := s.Kinds
	if len(kinds) == 0 {
		kinds = Kinds
	}
	p := New(kinds[s.pos%len(kinds)])
	s.pos++

	p.Position.X = max(0, min(s.X, fieldWidth-p.Width))
	return p
}
