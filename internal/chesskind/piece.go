// Package chesskind describes piece kinds, their movement directions and the
// fixed-slot layout a Position's squares are interpreted against.
package chesskind

import "github.com/herohde/ichess/internal/core"

// PieceKind identifies how a piece moves. There is no Pawn: this model only
// ever analyses fixed material against a lone king.
type PieceKind int

const (
	King PieceKind = iota
	Queen
	Rook
	Bishop
	Knight
)

func (k PieceKind) String() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	default:
		return "?"
	}
}

// SlideDirs returns the unit directions a sliding piece may step along,
// repeatedly up to some bound. King and Knight are not sliders and return nil.
func (k PieceKind) SlideDirs() []core.Coord {
	switch k {
	case Queen:
		return QueenDirs
	case Rook:
		return RookDirs
	case Bishop:
		return BishopDirs
	default:
		return nil
	}
}

var (
	KingSteps = []core.Coord{
		{X: -1, Y: -1}, {X: -1, Y: 0}, {X: -1, Y: 1},
		{X: 0, Y: -1}, {X: 0, Y: 1},
		{X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1},
	}

	KnightSteps = []core.Coord{
		{X: -2, Y: -1}, {X: -2, Y: 1}, {X: -1, Y: -2}, {X: -1, Y: 2},
		{X: 1, Y: -2}, {X: 1, Y: 2}, {X: 2, Y: -1}, {X: 2, Y: 1},
	}

	BishopDirs = []core.Coord{
		{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
	}

	RookDirs = []core.Coord{
		{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
	}

	QueenDirs = []core.Coord{
		{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
		{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
	}
)
