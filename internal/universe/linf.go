// Package universe builds canonical candidate sets: every piece placement
// within an L-infinity ball around the black king, or within an absolute
// bounding box for both the king anchor and every piece.
package universe

import (
	"sort"

	"github.com/herohde/ichess/internal/chesskind"
	"github.com/herohde/ichess/internal/core"
)

// SquaresInLinfBall returns every square within [-bound, bound] on both axes,
// excluding the origin, sorted ascending.
func SquaresInLinfBall(bound int32) []core.Square {
	var out []core.Square
	for x := -bound; x <= bound; x++ {
		for y := -bound; y <= bound; y++ {
			if x == 0 && y == 0 {
				continue
			}
			out = append(out, core.SquareFromCoord(core.Coord{X: x, Y: y}))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// IsInBound reports whether sq lies within the L-infinity bound; NONE always
// counts as in-bound since a captured piece has no location to violate it.
func IsInBound(sq core.Square, bound int32) bool {
	if sq.IsNone() {
		return true
	}
	return sq.Coord().InBox(bound)
}

// EnumerateInLinfBound enumerates every canonical Position whose
// non-captured pieces all lie within |x|,|y| <= bound. If allowCaptures,
// pieces may also be absent (core.NoneSquare).
func EnumerateInLinfBound(layout chesskind.PieceLayout, bound int32, allowCaptures bool) []core.Position {
	squares := SquaresInLinfBall(bound)
	used := make([]bool, len(squares))
	var cur [core.MaxPieces]core.Square
	var out []core.Position

	runs := layout.IdenticalRuns()

	var rec func(groupIdx int)
	rec = func(groupIdx int) {
		if groupIdx == len(runs) {
			pos := core.NewPosition(cur[:layout.PieceCount()])
			pos.Canonicalize(runs)
			out = append(out, pos)
			return
		}

		run := runs[groupIdx]
		kind := layout.Kind(run.Start)
		length := run.End - run.Start

		allowed := func(idx int) bool {
			if kind != chesskind.King {
				return true
			}
			return squares[idx].Coord().ChebyshevNorm() > 1
		}

		minK := length
		if allowCaptures {
			minK = 0
		}

		for k := minK; k <= length; k++ {
			chooseK(squares, used, allowed, 0, k, nil, func(chosen []int) {
				noneCount := length - k
				for j := 0; j < noneCount; j++ {
					cur[run.Start+j] = core.NoneSquare
				}
				for offset, idx := range chosen {
					cur[run.Start+noneCount+offset] = squares[idx]
				}
				rec(groupIdx + 1)
			})
		}
	}
	rec(0)

	return out
}

// chooseK enumerates every size-k subset of squares[start:] satisfying
// allowed, invoking f once per subset with the chosen indices (ascending).
// used marks indices already claimed by an earlier piece run in the current
// recursion branch.
func chooseK(squares []core.Square, used []bool, allowed func(int) bool, start, k int, chosen []int, f func([]int)) {
	if len(chosen) == k {
		f(chosen)
		return
	}
	for i := start; i < len(squares); i++ {
		if used[i] || !allowed(i) {
			continue
		}
		used[i] = true
		chooseK(squares, used, allowed, i+1, k, append(chosen, i), f)
		used[i] = false
	}
}
