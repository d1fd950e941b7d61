// Package rules implements attack detection, legal-position checks, and move
// generation for "fixed white material vs a lone black king" on the infinite
// board, in king-relative coordinates.
package rules

import (
	"fmt"

	"github.com/herohde/ichess/internal/chesskind"
	"github.com/herohde/ichess/internal/core"
)

// Rules bundles the fixed material layout and the slider move bound a
// scenario plays with.
type Rules struct {
	Layout    chesskind.PieceLayout
	MoveBound int32
}

// New validates and constructs a Rules value. MoveBound must be at least 1,
// and the layout must fit within core.MaxPieces slots.
func New(layout chesskind.PieceLayout, moveBound int32) (Rules, error) {
	if moveBound < 1 {
		return Rules{}, fmt.Errorf("rules: move bound must be >= 1, got %d", moveBound)
	}
	if layout.PieceCount() > core.MaxPieces {
		return Rules{}, fmt.Errorf("rules: layout has %d pieces, exceeds max %d", layout.PieceCount(), core.MaxPieces)
	}
	return Rules{Layout: layout, MoveBound: moveBound}, nil
}

// IsLegalPosition reports whether pos respects the basic invariants: no piece
// on the origin, no two pieces sharing a square, and (if present) the white
// king not adjacent to the black king.
func (r Rules) IsLegalPosition(pos core.Position) bool {
	var seen [core.MaxPieces]core.Square
	n := 0

	for _, sq := range pos.Squares() {
		if sq.IsNone() {
			continue
		}
		if sq.Coord() == core.Origin {
			return false
		}
		for i := 0; i < n; i++ {
			if seen[i] == sq {
				return false
			}
		}
		seen[n] = sq
		n++
	}

	if kIdx, ok := r.Layout.WhiteKingIndex(); ok {
		ks := pos.Get(kIdx)
		if !ks.IsNone() && ks.Coord().ChebyshevNorm() <= 1 {
			return false
		}
	}
	return true
}

// IsAttacked reports whether any white piece in pos attacks target.
func (r Rules) IsAttacked(target core.Coord, pos core.Position) bool {
	for i := 0; i < pos.Count(); i++ {
		sq := pos.Get(i)
		if sq.IsNone() {
			continue
		}
		if r.pieceAttacks(r.Layout.Kind(i), sq.Coord(), target, pos) {
			return true
		}
	}
	return false
}

func (r Rules) pieceAttacks(kind chesskind.PieceKind, from, target core.Coord, pos core.Position) bool {
	switch kind {
	case chesskind.King:
		d := target.Sub(from)
		return d.ChebyshevNorm() == 1
	case chesskind.Knight:
		d := target.Sub(from)
		ax, ay := abs32(d.X), abs32(d.Y)
		return (ax == 2 && ay == 1) || (ax == 1 && ay == 2)
	case chesskind.Rook:
		return r.riderAttacks(from, target, chesskind.RookDirs, pos)
	case chesskind.Bishop:
		return r.riderAttacks(from, target, chesskind.BishopDirs, pos)
	case chesskind.Queen:
		return r.riderAttacks(from, target, chesskind.QueenDirs, pos)
	default:
		return false
	}
}

func (r Rules) riderAttacks(from, target core.Coord, dirs []core.Coord, pos core.Position) bool {
	v := target.Sub(from)
	if v == (core.Coord{}) {
		return false
	}

	dir, dist, ok := normalizedDirAndDistance(v)
	if !ok {
		return false
	}
	if !containsDir(dirs, dir) {
		return false
	}

	for _, otherSq := range pos.Squares() {
		if otherSq.IsNone() {
			continue
		}
		other := otherSq.Coord()
		if other == from {
			continue
		}
		w := other.Sub(from)
		if s, aligned := scalarAlongDirIfAligned(w, dir); aligned {
			if s > 0 && s < dist {
				return false
			}
		}
	}
	return true
}

// BlackMove pairs the king step taken with the resulting re-centered position.
type BlackMove struct {
	Delta core.Coord
	Next  core.Position
}

// LegalBlackMoves returns every legal black king move from pos.
func (r Rules) LegalBlackMoves(pos core.Position) []core.Position {
	moves := r.LegalBlackMovesWithDelta(pos)
	out := make([]core.Position, len(moves))
	for i, m := range moves {
		out[i] = m.Next
	}
	return out
}

// LegalBlackMovesWithDelta returns every legal black king move from pos,
// along with the king-relative step taken — useful for scenarios that track
// an absolute king anchor.
func (r Rules) LegalBlackMovesWithDelta(pos core.Position) []BlackMove {
	var out []BlackMove

	for _, delta := range chesskind.KingSteps {
		if kIdx, ok := r.Layout.WhiteKingIndex(); ok {
			ks := pos.Get(kIdx)
			if !ks.IsNone() && ks.Coord() == delta {
				continue
			}
		}

		next := pos.Clone()
		for i := 0; i < next.Count(); i++ {
			sq := next.Get(i)
			if sq.IsNone() {
				continue
			}
			if sq.Coord() == delta {
				next.Set(i, core.NoneSquare)
			} else {
				next.Set(i, sq.ShiftedNeg(delta))
			}
		}
		next.Canonicalize(r.Layout.IdenticalRuns())

		if !r.IsLegalPosition(next) {
			continue
		}
		if r.IsAttacked(core.Origin, next) {
			continue
		}

		out = append(out, BlackMove{Delta: delta, Next: next})
	}

	return out
}

// LegalWhiteMoves returns every legal white move from pos. If allowPass, a
// "do nothing" move (an unchanged copy of pos) is included first.
func (r Rules) LegalWhiteMoves(pos core.Position, allowPass bool) []core.Position {
	var out []core.Position

	if allowPass {
		out = append(out, pos.Clone())
	}

	for i := 0; i < pos.Count(); i++ {
		sq := pos.Get(i)
		if sq.IsNone() {
			continue
		}
		from := sq.Coord()
		kind := r.Layout.Kind(i)

		switch kind {
		case chesskind.King:
			for _, d := range chesskind.KingSteps {
				to := from.Add(d)
				if to == core.Origin || to.ChebyshevNorm() <= 1 {
					continue
				}
				out = append(out, r.tryPlace(pos, i, to)...)
			}
		case chesskind.Knight:
			for _, d := range chesskind.KnightSteps {
				to := from.Add(d)
				if to == core.Origin {
					continue
				}
				out = append(out, r.tryPlace(pos, i, to)...)
			}
		case chesskind.Rook, chesskind.Bishop, chesskind.Queen:
			for _, dir := range kind.SlideDirs() {
				for step := int32(1); step <= r.MoveBound; step++ {
					to := from.Add(dir.Mul(step))
					if to == core.Origin {
						break
					}
					toSq := core.SquareFromCoord(to)
					if pos.IsOccupiedExcept(toSq, i) {
						break
					}
					next := pos.Clone()
					next.Set(i, toSq)
					next.Canonicalize(r.Layout.IdenticalRuns())
					if r.IsLegalPosition(next) {
						out = append(out, next)
					}
				}
			}
		}
	}

	return out
}

func (r Rules) tryPlace(pos core.Position, idx int, to core.Coord) []core.Position {
	toSq := core.SquareFromCoord(to)
	if pos.IsOccupiedExcept(toSq, idx) {
		return nil
	}
	next := pos.Clone()
	next.Set(idx, toSq)
	next.Canonicalize(r.Layout.IdenticalRuns())
	if !r.IsLegalPosition(next) {
		return nil
	}
	return []core.Position{next}
}

// IsCheckmate reports whether the black king is attacked and has no legal move.
func (r Rules) IsCheckmate(pos core.Position) bool {
	if !r.IsAttacked(core.Origin, pos) {
		return false
	}
	return len(r.LegalBlackMoves(pos)) == 0
}

// IsStalemate reports whether the black king is not attacked but has no legal move.
func (r Rules) IsStalemate(pos core.Position) bool {
	if r.IsAttacked(core.Origin, pos) {
		return false
	}
	return len(r.LegalBlackMoves(pos)) == 0
}

func normalizedDirAndDistance(v core.Coord) (core.Coord, int32, bool) {
	dx, dy := v.X, v.Y

	if dx == 0 && dy != 0 {
		return core.Coord{X: 0, Y: sign32(dy)}, abs32(dy), true
	}
	if dy == 0 && dx != 0 {
		return core.Coord{X: sign32(dx), Y: 0}, abs32(dx), true
	}
	if dx != 0 && dy != 0 && abs32(dx) == abs32(dy) {
		return core.Coord{X: sign32(dx), Y: sign32(dy)}, abs32(dx), true
	}
	return core.Coord{}, 0, false
}

func scalarAlongDirIfAligned(v, dir core.Coord) (int32, bool) {
	if dir.X == 0 {
		if v.X != 0 || dir.Y == 0 {
			return 0, false
		}
		s := v.Y / dir.Y
		if s*dir.Y == v.Y {
			return s, true
		}
		return 0, false
	}
	s := v.X / dir.X
	if s*dir.X == v.X && s*dir.Y == v.Y {
		return s, true
	}
	return 0, false
}

func containsDir(dirs []core.Coord, d core.Coord) bool {
	for _, x := range dirs {
		if x == d {
			return true
		}
	}
	return false
}

func sign32(v int32) int32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
