package universe

import (
	"github.com/herohde/ichess/internal/chesskind"
	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/scenario"
)

// ForEachStateInAbsBox enumerates every canonical scenario.State whose
// absolute king anchor and every absolute piece square lie within
// [-bound, bound] on both axes, calling f once per state. If allowCaptures,
// pieces may also be absent.
func ForEachStateInAbsBox(layout chesskind.PieceLayout, bound int32, allowCaptures bool, f func(scenario.State)) {
	_ = TryForEachStateInAbsBox(layout, bound, allowCaptures, func(s scenario.State) error {
		f(s)
		return nil
	})
}

// TryForEachStateInAbsBox is ForEachStateInAbsBox with an early-exit callback:
// returning a non-nil error from f aborts enumeration and propagates it.
func TryForEachStateInAbsBox(layout chesskind.PieceLayout, bound int32, allowCaptures bool, f func(scenario.State) error) error {
	if bound < 0 {
		panic("universe: bound must be >= 0")
	}

	side := int(2*bound + 1)
	absSquares := make([]core.Square, 0, side*side)
	for x := -bound; x <= bound; x++ {
		for y := -bound; y <= bound; y++ {
			absSquares = append(absSquares, core.SquareFromCoord(core.Coord{X: x, Y: y}))
		}
	}

	used := make([]bool, len(absSquares))
	var curAbs [core.MaxPieces]core.Square
	runs := layout.IdenticalRuns()

	var rec func(groupIdx int, absKing core.Coord) error
	rec = func(groupIdx int, absKing core.Coord) error {
		if groupIdx == len(runs) {
			var curRel [core.MaxPieces]core.Square
			for i := 0; i < layout.PieceCount(); i++ {
				sq := curAbs[i]
				if sq.IsNone() {
					curRel[i] = core.NoneSquare
				} else {
					curRel[i] = core.SquareFromCoord(sq.Coord().Sub(absKing))
				}
			}
			pos := core.NewPosition(curRel[:layout.PieceCount()])
			pos.Canonicalize(runs)
			return f(scenario.NewState(absKing, pos))
		}

		run := runs[groupIdx]
		kind := layout.Kind(run.Start)
		length := run.End - run.Start

		allowed := func(idx int) bool {
			if kind != chesskind.King {
				return true
			}
			rel := absSquares[idx].Coord().Sub(absKing)
			return rel.ChebyshevNorm() > 1
		}

		minK := length
		if allowCaptures {
			minK = 0
		}

		for k := minK; k <= length; k++ {
			var errOut error
			chooseK(absSquares, used, allowed, 0, k, nil, func(chosen []int) {
				if errOut != nil {
					return
				}
				noneCount := length - k
				for j := 0; j < noneCount; j++ {
					curAbs[run.Start+j] = core.NoneSquare
				}
				for offset, idx := range chosen {
					curAbs[run.Start+noneCount+offset] = absSquares[idx]
				}
				if err := rec(groupIdx+1, absKing); err != nil {
					errOut = err
				}
			})
			if errOut != nil {
				return errOut
			}
		}
		return nil
	}

	for kx := -bound; kx <= bound; kx++ {
		for ky := -bound; ky <= bound; ky++ {
			absKing := core.Coord{X: kx, Y: ky}

			for i := range used {
				used[i] = false
			}
			kingIdx := int(kx+bound)*side + int(ky+bound)
			used[kingIdx] = true

			if err := rec(0, absKing); err != nil {
				return err
			}
		}
	}

	return nil
}
