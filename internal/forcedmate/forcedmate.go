// Package forcedmate computes the forced-mate winning region inside a
// bounded universe: the set of black-to-move states from which White can
// force checkmate without Black ever escaping the universe. Unlike the trap
// and Buchi solvers, this one operates on scenario.State (not bare
// core.Position), since an escape is only observable when the scenario
// tracks an absolute king anchor.
package forcedmate

import (
	"context"

	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/scenario"
	"github.com/herohde/ichess/internal/universe"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Result holds the forced-mate winning region, and optionally a
// distance-to-mate (in plies) for every winning state.
type Result struct {
	Winning map[scenario.State]struct{}
	DTM     map[scenario.State]uint32
}

// Contains reports whether s is in the forced-mate winning region.
func (r Result) Contains(s scenario.State) bool {
	_, ok := r.Winning[s]
	return ok
}

// node tags a graph index as belonging to the black or white player, for the
// single attractor worklist below.
type node struct {
	isBlack bool
	idx     int
}

// Compute builds the bounded universe named by s.Candidates (which must be
// scenario.InAbsoluteBox) and runs a reachability attractor from checkmate
// terminals. If dtmDepthLimit is set, DTM layering runs at most limit+3
// relaxation passes; a winning node whose value is still unknown after that
// makes Compute return an InvalidScenario error. The limit never changes which
// states are winning.
func Compute(ctx context.Context, s scenario.Scenario, computeDTM bool, dtmDepthLimit lang.Optional[uint32], tracker *resources.Tracker) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Candidates.Kind != scenario.InAbsoluteBox {
		return nil, scenario.NewInvalidScenario("forcedmate.Compute requires candidates kind InAbsoluteBox")
	}

	states, idx, err := buildUniverse(s, tracker)
	if err != nil {
		return nil, err
	}
	n := len(states)

	bwSucc, wbSucc, blackHasEscape, err := buildEdges(s, states, idx, tracker)
	if err != nil {
		return nil, err
	}

	predBofW := make([][]int, n)
	predWofB := make([][]int, n)
	for bi := 0; bi < n; bi++ {
		for _, wi := range bwSucc[bi] {
			predBofW[wi] = append(predBofW[wi], bi)
		}
	}
	for wi := 0; wi < n; wi++ {
		for _, bi := range wbSucc[wi] {
			predWofB[bi] = append(predWofB[bi], wi)
		}
	}

	isMate := make([]bool, n)
	winB := make([]bool, n)
	winW := make([]bool, n)
	remaining := make([]int, n)
	for bi := 0; bi < n; bi++ {
		remaining[bi] = len(bwSucc[bi])
		if blackHasEscape[bi] {
			remaining[bi]++
		}
	}

	var queue []node
	for bi := 0; bi < n; bi++ {
		if blackHasEscape[bi] || len(bwSucc[bi]) != 0 {
			continue
		}
		if s.Rules.IsAttacked(core.Origin, states[bi].Pos) {
			isMate[bi] = true
			winB[bi] = true
			queue = append(queue, node{isBlack: true, idx: bi})
		}
	}

	for len(queue) > 0 {
		if contextx.IsCancelled(ctx) {
			return nil, ctx.Err()
		}
		if err := tracker.BumpSteps("forcedmate.attractor", 1); err != nil {
			return nil, err
		}

		cur := queue[0]
		queue = queue[1:]

		if cur.isBlack {
			for _, wi := range predWofB[cur.idx] {
				if winW[wi] {
					continue
				}
				winW[wi] = true
				queue = append(queue, node{isBlack: false, idx: wi})
			}
			continue
		}

		for _, bi := range predBofW[cur.idx] {
			if winB[bi] {
				continue
			}
			if remaining[bi] > 0 {
				remaining[bi]--
			}
			if remaining[bi] == 0 && len(bwSucc[bi]) != 0 {
				winB[bi] = true
				queue = append(queue, node{isBlack: true, idx: bi})
			}
		}
	}

	winning := make(map[scenario.State]struct{})
	for bi := 0; bi < n; bi++ {
		if winB[bi] {
			winning[states[bi]] = struct{}{}
		}
	}
	logw.Debugf(ctx, "forcedmate: universe=%d, winning=%d", n, len(winning))

	var dtm map[scenario.State]uint32
	if computeDTM {
		dtm, err = computeDTMLayers(ctx, s, tracker, states, bwSucc, wbSucc, winB, winW, isMate, dtmDepthLimit)
		if err != nil {
			return nil, err
		}
	}

	return &Result{Winning: winning, DTM: dtm}, nil
}

func buildUniverse(s scenario.Scenario, tracker *resources.Tracker) ([]scenario.State, map[scenario.State]int, error) {
	seen := make(map[scenario.State]struct{})
	var states []scenario.State

	universe.ForEachStateInAbsBox(s.Rules.Layout, s.Candidates.Bound, s.Candidates.AllowCaptures, func(st scenario.State) {
		if _, ok := seen[st]; ok {
			return
		}
		if !s.Rules.IsLegalPosition(st.Pos) {
			return
		}
		if s.Laws != nil && !s.Laws.AllowState(st) {
			return
		}
		if s.Domain != nil && !s.Domain.Inside(st) {
			return
		}
		seen[st] = struct{}{}
		states = append(states, st)
	})

	if err := tracker.BumpStates("forcedmate.universe", uint64(len(states))); err != nil {
		return nil, nil, err
	}

	idx := make(map[scenario.State]int, len(states))
	for i, st := range states {
		idx[st] = i
	}
	return states, idx, nil
}

func buildEdges(s scenario.Scenario, states []scenario.State, idx map[scenario.State]int, tracker *resources.Tracker) (bwSucc, wbSucc [][]int, blackHasEscape []bool, err error) {
	n := len(states)
	bwSucc = make([][]int, n)
	wbSucc = make([][]int, n)
	blackHasEscape = make([]bool, n)

	for bi, st := range states {
		if err := tracker.BumpSteps("forcedmate.build_edges", 1); err != nil {
			return nil, nil, nil, err
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

			if wi, ok := idx[to]; ok {
				bwSucc[bi] = appendUnique(bwSucc[bi], wi)
			} else {
				blackHasEscape[bi] = true
			}
		}

		for _, wpos := range s.Rules.LegalWhiteMoves(st.Pos, s.WhiteCanPass) {
			to := scenario.State{AbsKing: st.AbsKing, Pos: wpos}
			if s.Laws != nil && !s.Laws.AllowWhiteMove(st, to) {
				continue
			}
			if bi2, ok := idx[to]; ok {
				wbSucc[bi] = appendUnique(wbSucc[bi], bi2)
			}
		}
	}

	return bwSucc, wbSucc, blackHasEscape, nil
}

const infDTM = ^uint32(0)

func computeDTMLayers(ctx context.Context, s scenario.Scenario, tracker *resources.Tracker, states []scenario.State, bwSucc, wbSucc [][]int, winB, winW, isMate []bool, depthLimit lang.Optional[uint32]) (map[scenario.State]uint32, error) {
	n := len(states)
	dtmB := make([]uint32, n)
	dtmW := make([]uint32, n)
	for i := range dtmB {
		dtmB[i] = infDTM
		dtmW[i] = infDTM
	}
	for bi := 0; bi < n; bi++ {
		if winB[bi] && isMate[bi] {
			dtmB[bi] = 0
		}
	}

	limit, hasLimit := depthLimit.V()

	for iteration := 0; ; iteration++ {
		if contextx.IsCancelled(ctx) {
			return nil, ctx.Err()
		}
		if err := tracker.BumpSteps("forcedmate.dtm_iter", 1); err != nil {
			return nil, err
		}

		changed := false

		for wi := 0; wi < n; wi++ {
			if !winW[wi] {
				continue
			}
			best := infDTM
			for _, bi := range wbSucc[wi] {
				if !winB[bi] {
					continue
				}
				if dtmB[bi] < best {
					best = dtmB[bi]
				}
			}
			cand := infDTM
			if best != infDTM {
				cand = best + 1
			}
			if cand < dtmW[wi] {
				dtmW[wi] = cand
				changed = true
			}
		}

		for bi := 0; bi < n; bi++ {
			if !winB[bi] || isMate[bi] {
				continue
			}
			if len(bwSucc[bi]) == 0 {
				return nil, scenario.NewInvalidScenario("DTM requested but found a winning non-mate black node with no moves")
			}

			var maxV uint32
			for _, wi := range bwSucc[bi] {
				if !winW[wi] {
					return nil, scenario.NewInvalidScenario("DTM requested but winning black node has non-winning successor")
				}
				v := dtmW[wi]
				if v == infDTM {
					maxV = infDTM
					break
				}
				if v > maxV {
					maxV = v
				}
			}
			cand := infDTM
			if maxV != infDTM {
				cand = maxV + 1
			}
			if cand < dtmB[bi] {
				dtmB[bi] = cand
				changed = true
			}
		}

		logw.Debugf(ctx, "forcedmate dtm: iteration=%d, changed=%t", iteration, changed)

		if !changed {
			break
		}
		if hasLimit && uint32(iteration) > limit+1 {
			break
		}
	}

	out := make(map[scenario.State]uint32, n)
	for bi := 0; bi < n; bi++ {
		if !winB[bi] {
			continue
		}
		v := dtmB[bi]
		if v == infDTM {
			return nil, scenario.NewInvalidScenario("DTM did not converge for all winning nodes")
		}
		if v == 0 && !s.Rules.IsAttacked(core.Origin, states[bi].Pos) {
			return nil, scenario.NewInvalidScenario("DTM map contains a depth-0 node that is not in check")
		}
		out[states[bi]] = v
	}
	return out, nil
}

func appendUnique(s []int, v int) []int {
	for _, existing := range s {
		if existing == v {
			return s
		}
	}
	return append(s, v)
}
