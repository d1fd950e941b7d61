// Package core holds the primitive king-relative geometry types shared by
// every other package: Coord, Square and Position.
package core

import "fmt"

// Coord is a king-relative offset on the infinite board.
type Coord struct {
	X, Y int32
}

// Origin is the zero offset, always occupied by the black king.
var Origin = Coord{}

func NewCoord(x, y int32) Coord {
	return Coord{X: x, Y: y}
}

func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

func (c Coord) Neg() Coord {
	return Coord{X: -c.X, Y: -c.Y}
}

func (c Coord) Mul(k int32) Coord {
	return Coord{X: c.X * k, Y: c.Y * k}
}

// ChebyshevNorm returns max(|x|, |y|), the board's L-infinity distance from the origin.
func (c Coord) ChebyshevNorm() int32 {
	return max32(abs32(c.X), abs32(c.Y))
}

// InBox reports whether both coordinates lie within [-bound, bound].
func (c Coord) InBox(bound int32) bool {
	return abs32(c.X) <= bound && abs32(c.Y) <= bound
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
