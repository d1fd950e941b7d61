package core_test

import (
	"sort"
	"testing"

	"github.com/herohde/ichess/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestCoordChebyshevNorm(t *testing.T) {
	tests := []struct {
		c    core.Coord
		want int32
	}{
		{core.Coord{X: 0, Y: 0}, 0},
		{core.Coord{X: 3, Y: -1}, 3},
		{core.Coord{X: -2, Y: 5}, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.c.ChebyshevNorm())
	}
}

func TestCoordInBox(t *testing.T) {
	assert.True(t, core.Coord{X: 2, Y: -2}.InBox(2))
	assert.False(t, core.Coord{X: 3, Y: 0}.InBox(2))
}

func TestCoordArithmetic(t *testing.T) {
	a := core.Coord{X: 1, Y: 2}
	b := core.Coord{X: 3, Y: -1}
	assert.Equal(t, core.Coord{X: 4, Y: 1}, a.Add(b))
	assert.Equal(t, core.Coord{X: -2, Y: 3}, a.Sub(b))
	assert.Equal(t, core.Coord{X: -1, Y: -2}, a.Neg())
	assert.Equal(t, core.Coord{X: 2, Y: 4}, a.Mul(2))
}

func TestSquareNoneOrdersFirst(t *testing.T) {
	none := core.NoneSquare
	real := core.SquareFromCoord(core.Coord{X: -100, Y: -100})
	assert.True(t, none.Less(real))
	assert.False(t, real.Less(none))
	assert.False(t, none.Less(none))
}

func TestSquareLexicographicOrder(t *testing.T) {
	a := core.SquareFromCoord(core.Coord{X: 1, Y: 5})
	b := core.SquareFromCoord(core.Coord{X: 1, Y: 6})
	c := core.SquareFromCoord(core.Coord{X: 2, Y: 0})
	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.False(t, c.Less(a))
}

func TestSquareRoundTripsThroughCoord(t *testing.T) {
	c := core.Coord{X: -7, Y: 13}
	sq := core.SquareFromCoord(c)
	assert.False(t, sq.IsNone())
	assert.Equal(t, c, sq.Coord())
}

func TestSquareRawRoundTrip(t *testing.T) {
	sq := core.SquareFromCoord(core.Coord{X: 4, Y: -9})
	assert.Equal(t, sq, core.SquareFromRaw(sq.Raw()))
	assert.Equal(t, core.NoneSquare, core.SquareFromRaw(core.NoneSquare.Raw()))
}

func TestSquareShiftedLeavesNoneUnchanged(t *testing.T) {
	delta := core.Coord{X: 1, Y: -1}
	assert.Equal(t, core.NoneSquare, core.NoneSquare.Shifted(delta))

	sq := core.SquareFromCoord(core.Coord{X: 2, Y: 2})
	shifted := sq.Shifted(delta)
	assert.Equal(t, core.Coord{X: 3, Y: 1}, shifted.Coord())
	assert.Equal(t, sq, shifted.ShiftedNeg(delta))
}

func TestPositionCanonicalizeSortsWithinRuns(t *testing.T) {
	squares := []core.Square{
		core.SquareFromCoord(core.Coord{X: 2, Y: 2}),
		core.SquareFromCoord(core.Coord{X: -1, Y: 0}),
		core.NoneSquare,
	}
	pos := core.NewPosition(squares)
	pos.Canonicalize([]core.Run{{Start: 0, End: 3}})

	got := pos.Squares()
	assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Less(got[j]) }))
	assert.True(t, got[0].IsNone())
}

func TestPositionCanonicalizeIsIdempotent(t *testing.T) {
	squares := []core.Square{
		core.SquareFromCoord(core.Coord{X: 5, Y: -5}),
		core.SquareFromCoord(core.Coord{X: -5, Y: 5}),
		core.SquareFromCoord(core.Coord{X: 0, Y: 3}),
	}
	pos := core.NewPosition(squares)
	runs := []core.Run{{Start: 0, End: 3}}
	pos.Canonicalize(runs)
	once := pos.Clone()
	pos.Canonicalize(runs)
	assert.Equal(t, once, pos)
}

func TestPositionIsOccupied(t *testing.T) {
	sq := core.SquareFromCoord(core.Coord{X: 1, Y: 1})
	pos := core.NewPosition([]core.Square{sq, core.NoneSquare})
	assert.True(t, pos.IsOccupied(sq))
	assert.False(t, pos.IsOccupied(core.SquareFromCoord(core.Coord{X: 9, Y: 9})))
	assert.False(t, pos.IsOccupiedExcept(sq, 0))
}

func TestPositionPresentSkipsNone(t *testing.T) {
	sq := core.SquareFromCoord(core.Coord{X: 1, Y: 1})
	pos := core.NewPosition([]core.Square{core.NoneSquare, sq})
	present := pos.Present()
	assert.Len(t, present, 1)
	assert.Equal(t, 1, present[0].Idx)
	assert.Equal(t, sq, present[0].Sq)
}
