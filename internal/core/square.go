package core

import "math"

// Square packs a Coord into a single int64 so Position values stay small,
// comparable and hashable as plain Go values. NONE represents a captured
// piece and sorts before every real square.
type Square int64

// NoneSquare represents a captured piece.
const NoneSquare Square = math.MinInt64

func SquareFromCoord(c Coord) Square {
	return Square((int64(c.X) << 32) | int64(uint32(c.Y)))
}

func (s Square) IsNone() bool {
	return s == NoneSquare
}

// Raw returns the packed i64 representation, used by the bundle binary format.
func (s Square) Raw() int64 {
	return int64(s)
}

func SquareFromRaw(raw int64) Square {
	return Square(raw)
}

// Coord decodes a non-NONE square back to a coordinate. Callers must not call
// this on NoneSquare.
func (s Square) Coord() Coord {
	if s.IsNone() {
		panic("core: Coord() called on NoneSquare")
	}
	x := int32(int64(s) >> 32)
	y := int32(int64(s))
	return Coord{X: x, Y: y}
}

// Shifted translates a square by delta; NoneSquare shifts to itself.
func (s Square) Shifted(delta Coord) Square {
	if s.IsNone() {
		return s
	}
	c := s.Coord()
	return SquareFromCoord(Coord{X: c.X + delta.X, Y: c.Y + delta.Y})
}

// ShiftedNeg translates a square by -delta; NoneSquare shifts to itself.
func (s Square) ShiftedNeg(delta Coord) Square {
	return s.Shifted(Coord{X: -delta.X, Y: -delta.Y})
}

// Less orders NoneSquare first, then lexicographically by (x, y). This is
// the ordering used to canonicalize identical-piece runs within a Position.
func (s Square) Less(o Square) bool {
	if s.IsNone() || o.IsNone() {
		return s.IsNone() && !o.IsNone()
	}
	a, b := s.Coord(), o.Coord()
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

func (s Square) String() string {
	if s.IsNone() {
		return "-"
	}
	return s.Coord().String()
}
