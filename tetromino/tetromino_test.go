package tetromino_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/plus3/dotfall/tetromino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	sizes := map[tetromino.Kind][2]int{
		tetromino.I: {4, 1},
		tetromino.O: {2, 2},
		tetromino.T: {3, 2},
		tetromino.S: {3, 2},
		tetromino.Z: {3, 2},
		tetromino.J: {3, 2},
		tetromino.L: {3, 2},
	}

	for _, kind := range tetromino.Kinds {
		p := tetromino.New(kind)
		assert.Equal(t, sizes[kind][0], p.Width, kind.String())
		assert.Equal(t, sizes[kind][1], p.Height, kind.String())
		assert.Len(t, p.Cells, p.Width*p.Height)

		filled := 0
		for range p.Points() {
			filled++
		}
		assert.Equal(t, 4, filled, "%s has four cells", kind)
	}
}

func TestRotation(t *testing.T) {
	t.Run("dimension swap", func(t *testing.T) {
		for _, kind := range tetromino.Kinds {
			p := tetromino.New(kind)
			r := p.Rotated()
			assert.Equal(t, p.Height, r.Width, kind.String())
			assert.Equal(t, p.Width, r.Height, kind.String())
			assert.Equal(t, 1, r.Rotation)
		}
	})

	t.Run("four turns round trip", func(t *testing.T) {
		for _, kind := range tetromino.Kinds {
			p := tetromino.New(kind)
			r := p.Rotated().Rotated().Rotated().Rotated()
			assert.Equal(t, p.Width, r.Width)
			assert.Equal(t, p.Height, r.Height)
			assert.Equal(t, p.Cells, r.Cells, kind.String())
			assert.Equal(t, 0, r.Rotation)
		}
	})

	t.Run("rotated is pure", func(t *testing.T) {
		p := tetromino.New(tetromino.T)
		before := p.Clone()
		_ = p.Rotated()
		assert.Equal(t, before, p)
	})

	t.Run("clockwise", func(t *testing.T) {
		p := tetromino.New(tetromino.T)
		assert.Equal(t, ".X.\nXXX", p.String())

		p.Rotate()
		assert.Equal(t, "X.\nXX\nX.", p.String())
	})

	t.Run("counter clockwise undoes clockwise", func(t *testing.T) {
		for _, kind := range tetromino.Kinds {
			p := tetromino.New(kind)
			assert.Equal(t, p.Cells, p.Rotated().RotatedCCW().Cells, kind.String())
		}
	})

	t.Run("I turns vertical", func(t *testing.T) {
		p := tetromino.New(tetromino.I).Rotated()
		assert.Equal(t, 1, p.Width)
		assert.Equal(t, 4, p.Height)
		for r := 0; r < 4; r++ {
			assert.True(t, p.Filled(r, 0))
		}
		assert.False(t, p.Filled(4, 0))
	})
}

func TestPoints(t *testing.T) {
	p := tetromino.New(tetromino.O).Moved(3, 5)
	got := slices.Collect(p.Points())
	assert.Equal(t, []tetromino.Point{{X: 3, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 6}, {X: 4, Y: 6}}, got)

	var first []tetromino.Point
	for pt := range p.Points() {
		first = append(first, pt)
		break
	}
	assert.Len(t, first, 1)
}

func TestSpawnBound(t *testing.T) {
	const fieldWidth = 8
	rng := rand.New(rand.NewPCG(7, 11))

	for _, kind := range tetromino.Kinds {
		for rotation := 0; rotation < 4; rotation++ {
			base := tetromino.New(kind)
			for i := 0; i < rotation; i++ {
				base.Rotate()
			}
			for i := 0; i < 1000; i++ {
				p := tetromino.Place(rng, base, fieldWidth)
				require.GreaterOrEqual(t, p.Position.X, 0)
				require.Less(t, p.Position.X+p.Width-1, fieldWidth, "%s rotation %d", kind, rotation)
				require.Equal(t, 0, p.Position.Y)
			}
		}
	}

	for i := 0; i < 1000; i++ {
		p := tetromino.Random(rng, fieldWidth)
		require.Less(t, p.Position.X+p.Width-1, fieldWidth)
	}
}

func TestPlaceNarrowField(t *testing.T) {
	p := tetromino.Place(rand.New(rand.NewPCG(1, 1)), tetromino.New(tetromino.I), 2)
	assert.GreaterOrEqual(t, p.Position.X, 0)
}

func TestBag(t *testing.T) {
	bag := tetromino.NewBag(rand.New(rand.NewPCG(3, 4)))

	for round := 0; round < 5; round++ {
		seen := map[tetromino.Kind]int{}
		for i := 0; i < len(tetromino.Kinds); i++ {
			seen[bag.Next(8).Kind]++
		}
		assert.Len(t, seen, len(tetromino.Kinds), "round %d deals every kind once", round)
		assert.Empty(t, bag.Peek())
	}

	var nilRand tetromino.Bag
	assert.NotPanics(t, func() { nilRand.Next(8) })
}

func TestUniformAndSequence(t *testing.T) {
	u := &tetromino.Uniform{Rand: rand.New(rand.NewPCG(5, 6))}
	for i := 0; i < 100; i++ {
		p := u.Next(8)
		assert.Less(t, p.Position.X+p.Width-1, 8)
	}

	s := &tetromino.Sequence{Kinds: []tetromino.Kind{tetromino.I, tetromino.O}, X: 6}
	p := s.Next(8)
	assert.Equal(t, tetromino.I, p.Kind)
	assert.Equal(t, 4, p.Position.X, "clamped so the piece fits")
	assert.Equal(t, tetromino.O, s.Next(8).Kind)
	assert.Equal(t, tetromino.I, s.Next(8).Kind)
}

func TestEmptySequence(t *testing.T) {
	s := &tetromino.Sequence{}
	var got []tetromino.Kind
	assert.NotPanics(t, func() {
		for range tetromino.Kinds {
			got = append(got, s.Next(8).Kind)
		}
	})
	assert.Equal(t, tetromino.Kinds, got)
	assert.Equal(t, tetromino.I, s.Next(8).Kind, "wraps around")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "T", tetromino.T.String())
	assert.Equal(t, "Kind(9)", tetromino.Kind(9).String())
}
