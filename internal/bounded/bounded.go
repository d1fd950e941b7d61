// Package bounded computes a bundle of cross-check metrics over a finite
// absolute-box universe: universe size, in/escape move counts, checkmates,
// trap/tempo sizes, and the forced-mate winning region size. It exists for
// parity harnesses that want one JSON-friendly summary of a bounded
// scenario rather than calling each solver separately.
package bounded

import (
	"context"

	"github.com/herohde/ichess/internal/buchi"
	"github.com/herohde/ichess/internal/forcedmate"
	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/scenario"
	"github.com/herohde/ichess/internal/trap"
	"github.com/herohde/ichess/internal/universe"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Counts is the full metric bundle, grounded on the original's BoundedCounts.
type Counts struct {
	UniverseStates       int
	BlackMovesIn         uint64
	BlackMovesEscape     uint64
	WhiteMovesIn         uint64
	WhiteMovesEscape     uint64
	CheckmatesInUniverse int
	Trap                 int
	Tempo                int
	Mate                 int
}

// Compute requires s.Candidates.Kind == scenario.InAbsoluteBox. It enumerates
// the finite universe, scans every state for move escapes and checkmates,
// then runs the trap, tempo and forced-mate solvers over the same scenario.
func Compute(ctx context.Context, s scenario.Scenario, tracker *resources.Tracker) (Counts, error) {
	if err := s.Validate(); err != nil {
		return Counts{}, err
	}
	if s.Candidates.Kind != scenario.InAbsoluteBox {
		return Counts{}, scenario.NewInvalidScenario("bounded.Compute requires candidates kind InAbsoluteBox")
	}

	univ := make(map[scenario.State]struct{})
	universe.ForEachStateInAbsBox(s.Rules.Layout, s.Candidates.Bound, s.Candidates.AllowCaptures, func(st scenario.State) {
		if !s.Rules.IsLegalPosition(st.Pos) {
			return
		}
		if s.Laws != nil && !s.Laws.AllowState(st) {
			return
		}
		if s.Domain != nil && !s.Domain.Inside(st) {
			return
		}
		if _, ok := univ[st]; !ok {
			univ[st] = struct{}{}
		}
	})
	if err := tracker.BumpStates("bounded.universe", uint64(len(univ))); err != nil {
		return Counts{}, err
	}

	var blackIn, blackEscape, whiteIn, whiteEscape uint64
	var mates int
	for st := range univ {
		if contextx.IsCancelled(ctx) {
			return Counts{}, ctx.Err()
		}
		if err := tracker.BumpSteps("bounded.scan", 1); err != nil {
			return Counts{}, err
		}

		if s.Rules.IsCheckmate(st.Pos) {
			mates++
		}

		for _, bm := range s.Rules.LegalBlackMovesWithDelta(st.Pos) {
			to := scenario.State{Pos: bm.Next}
			if s.TrackAbsKing {
				to.AbsKing = st.AbsKing.Add(bm.Delta)
			} else {
				to.AbsKing = st.AbsKing
			}
			if s.Laws != nil && (!s.Laws.AllowBlackMove(st, to, bm.Delta) || !s.Laws.AllowState(to)) {
				continue
			}
			if _, ok := univ[to]; ok {
				blackIn++
			} else {
				blackEscape++
			}
		}

		for _, wpos := range s.Rules.LegalWhiteMoves(st.Pos, s.WhiteCanPass) {
			to := scenario.State{AbsKing: st.AbsKing, Pos: wpos}
			if s.Laws != nil && !s.Laws.AllowWhiteMove(st, to) {
				continue
			}
			if _, ok := univ[to]; ok {
				whiteIn++
			} else {
				whiteEscape++
			}
		}
	}

	trapResult, err := trap.Compute(ctx, s, tracker)
	if err != nil {
		return Counts{}, err
	}
	tempoResult, err := buchi.Compute(ctx, s, trapResult.Trap, tracker)
	if err != nil {
		return Counts{}, err
	}
	mateResult, err := forcedmate.Compute(ctx, s, false, lang.Optional[uint32]{}, tracker)
	if err != nil {
		return Counts{}, err
	}

	return Counts{
		UniverseStates:       len(univ),
		BlackMovesIn:         blackIn,
		BlackMovesEscape:     blackEscape,
		WhiteMovesIn:         whiteIn,
		WhiteMovesEscape:     whiteEscape,
		CheckmatesInUniverse: mates,
		Trap:                 len(trapResult.Trap),
		Tempo:                len(tempoResult.Trap),
		Mate:                 len(mateResult.Winning),
	}, nil
}
