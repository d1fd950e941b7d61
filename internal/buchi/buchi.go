// Package buchi computes the maximal tempo trap: the largest subset of an
// inescapable trap in which White can force a pass-eligible position to
// recur infinitely often, regardless of how Black plays. This is a Buchi
// winning-region computation over the bipartite Black/White move graph
// induced by the trap.
package buchi

import (
	"context"

	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/scenario"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Result holds the computed tempo trap, a subset of the inescapable trap it
// was computed against.
type Result struct {
	Trap map[core.Position]struct{}
}

// Contains reports whether p is a member of the tempo trap.
func (r Result) Contains(p core.Position) bool {
	_, ok := r.Trap[p]
	return ok
}

// graph is the bipartite Black/White move graph restricted to an
// inescapable trap, with a winning-subgame marker per node used by the
// attractor loop in computeWinningRegion.
type graph struct {
	bList []core.Position
	bIdx  map[core.Position]int
	wList []core.Position
	wIdx  map[core.Position]int

	bwSucc [][]int // black node -> white node indices
	wbSucc [][]int // white node -> black node indices (only edges back into the trap)

	isAcceptW []bool

	inZB []bool
	inZW []bool
}

// Compute runs the Buchi winning-region algorithm against btmTrap (typically
// the result of internal/trap's fixed point) and returns the maximal tempo
// trap it contains.
func Compute(ctx context.Context, s scenario.Scenario, btmTrap map[core.Position]struct{}, tracker *resources.Tracker) (*Result, error) {
	g, err := computeWinningRegion(ctx, s, btmTrap, tracker)
	if err != nil {
		return nil, err
	}
	return &Result{Trap: extractBSet(g)}, nil
}

// ComputeWithStrategy additionally extracts a memoryless White strategy:
// for every White node (a position immediately after a Black move) inside
// the tempo trap, a chosen Black-to-move successor that keeps play inside
// the tempo trap, preferring pass where it is accepting.
func ComputeWithStrategy(ctx context.Context, s scenario.Scenario, btmTrap map[core.Position]struct{}, tracker *resources.Tracker) (*Result, map[core.Position]core.Position, error) {
	g, err := computeWinningRegion(ctx, s, btmTrap, tracker)
	if err != nil {
		return nil, nil, err
	}
	strat, err := extractTempoStrategy(g)
	if err != nil {
		return nil, nil, err
	}
	return &Result{Trap: extractBSet(g)}, strat, nil
}

func computeWinningRegion(ctx context.Context, s scenario.Scenario, btmTrap map[core.Position]struct{}, tracker *resources.Tracker) (*graph, error) {
	bList := make([]core.Position, 0, len(btmTrap))
	for p := range btmTrap {
		bList = append(bList, p)
	}
	if err := tracker.BumpStates("buchi.black_nodes", uint64(len(bList))); err != nil {
		return nil, err
	}

	bIdx := make(map[core.Position]int, len(bList))
	for i, p := range bList {
		bIdx[p] = i
	}

	var wList []core.Position
	wIdx := make(map[core.Position]int)
	bwSucc := make([][]int, len(bList))

	for bi, bpos := range bList {
		if err := tracker.BumpSteps("buchi.build_bw", 1); err != nil {
			return nil, err
		}

		from := scenario.State{Pos: bpos}
		for _, bm := range s.Rules.LegalBlackMovesWithDelta(bpos) {
			wpos := bm.Next
			to := scenario.State{Pos: wpos}
			if s.Laws != nil && (!s.Laws.AllowBlackMove(from, to, bm.Delta) || !s.Laws.AllowState(to)) {
				continue
			}

			wi, ok := wIdx[wpos]
			if !ok {
				wi = len(wList)
				wList = append(wList, wpos)
				wIdx[wpos] = wi
				if err := tracker.BumpStates("buchi.white_nodes", 1); err != nil {
					return nil, err
				}
			}
			bwSucc[bi] = appendUnique(bwSucc[bi], wi)
		}
	}

	wbSucc := make([][]int, len(wList))
	for wi, wpos := range wList {
		if err := tracker.BumpSteps("buchi.build_wb", 1); err != nil {
			return nil, err
		}

		from := scenario.State{Pos: wpos}
		for _, bnext := range s.Rules.LegalWhiteMoves(wpos, s.WhiteCanPass) {
			to := scenario.State{Pos: bnext}
			if s.Laws != nil && (!s.Laws.AllowWhiteMove(from, to) || !s.Laws.AllowState(to)) {
				continue
			}
			if bi, ok := bIdx[bnext]; ok {
				wbSucc[wi] = appendUnique(wbSucc[wi], bi)
			}
		}
	}

	isAcceptW := make([]bool, len(wList))
	for wi, wpos := range wList {
		allowPass := s.Laws == nil || s.Laws.AllowPass(scenario.State{Pos: wpos})
		if s.WhiteCanPass && allowPass {
			if _, ok := bIdx[wpos]; ok {
				isAcceptW[wi] = true
			}
		}
	}

	g := &graph{
		bList: bList, bIdx: bIdx, wList: wList, wIdx: wIdx,
		bwSucc: bwSucc, wbSucc: wbSucc, isAcceptW: isAcceptW,
		inZB: allTrue(len(bList)), inZW: allTrue(len(wList)),
	}

	for iteration := 0; ; iteration++ {
		if contextx.IsCancelled(ctx) {
			return nil, ctx.Err()
		}
		if err := tracker.BumpSteps("buchi.iter", 1); err != nil {
			return nil, err
		}

		inYB, inYW := attractorWhite(g.inZB, g.inZW, g.bwSucc, g.wbSucc, g.isAcceptW)

		targetB := make([]bool, len(bList))
		targetW := make([]bool, len(wList))
		for i := range bList {
			targetB[i] = g.inZB[i] && !inYB[i]
		}
		for i := range wList {
			targetW[i] = g.inZW[i] && !inYW[i]
		}

		inXB, inXW := attractorBlack(g.inZB, g.inZW, g.bwSucc, g.wbSucc, targetB, targetW)

		anyRemoved := false
		for i := range bList {
			if g.inZB[i] && inXB[i] {
				g.inZB[i] = false
				anyRemoved = true
			}
		}
		for i := range wList {
			if g.inZW[i] && inXW[i] {
				g.inZW[i] = false
				anyRemoved = true
			}
		}

		logw.Debugf(ctx, "buchi winning region: iteration=%d, black=%d, white=%d, removed=%t", iteration, countTrue(g.inZB), countTrue(g.inZW), anyRemoved)

		if !anyRemoved {
			break
		}
	}

	return g, nil
}

// attractorWhite computes the attractor to the accepting set for White
// (player 1): White nodes join on any edge into the attractor, Black nodes
// join only once every edge within Z leads into it.
func attractorWhite(inZB, inZW []bool, bwSucc, wbSucc [][]int, isAcceptW []bool) ([]bool, []bool) {
	inAB := make([]bool, len(inZB))
	inAW := make([]bool, len(inZW))

	for wi := range inZW {
		if inZW[wi] && isAcceptW[wi] {
			inAW[wi] = true
		}
	}

	for changed := true; changed; {
		changed = false

		for wi := range inZW {
			if !inZW[wi] || inAW[wi] {
				continue
			}
			for _, bi := range wbSucc[wi] {
				if inZB[bi] && inAB[bi] {
					inAW[wi] = true
					changed = true
					break
				}
			}
		}

		for bi := range inZB {
			if !inZB[bi] || inAB[bi] {
				continue
			}
			sawSuccInZ, allInA := false, true
			for _, wi := range bwSucc[bi] {
				if !inZW[wi] {
					continue
				}
				sawSuccInZ = true
				if !inAW[wi] {
					allInA = false
					break
				}
			}
			if sawSuccInZ && allInA {
				inAB[bi] = true
				changed = true
			}
		}
	}

	return inAB, inAW
}

// attractorWhiteWithWitness is attractorWhite plus, for every White node that
// joins via an edge (rather than acceptance), the Black successor witnessing
// that edge.
func attractorWhiteWithWitness(inZB, inZW []bool, bwSucc, wbSucc [][]int, isAcceptW []bool) ([]bool, []bool, []int) {
	inAB := make([]bool, len(inZB))
	inAW := make([]bool, len(inZW))
	witnessW := make([]int, len(inZW))
	for i := range witnessW {
		witnessW[i] = -1
	}

	for wi := range inZW {
		if inZW[wi] && isAcceptW[wi] {
			inAW[wi] = true
		}
	}

	for changed := true; changed; {
		changed = false

		for wi := range inZW {
			if !inZW[wi] || inAW[wi] {
				continue
			}
			for _, bi := range wbSucc[wi] {
				if inZB[bi] && inAB[bi] {
					inAW[wi] = true
					witnessW[wi] = bi
					changed = true
					break
				}
			}
		}

		for bi := range inZB {
			if !inZB[bi] || inAB[bi] {
				continue
			}
			sawSuccInZ, allInA := false, true
			for _, wi := range bwSucc[bi] {
				if !inZW[wi] {
					continue
				}
				sawSuccInZ = true
				if !inAW[wi] {
					allInA = false
					break
				}
			}
			if sawSuccInZ && allInA {
				inAB[bi] = true
				changed = true
			}
		}
	}

	return inAB, inAW, witnessW
}

// attractorBlack computes the attractor to a target set for Black
// (player 2): Black nodes join on any edge into the target/attractor, White
// nodes join only once every edge within Z leads into it.
func attractorBlack(inZB, inZW []bool, bwSucc, wbSucc [][]int, targetB, targetW []bool) ([]bool, []bool) {
	inAB := make([]bool, len(inZB))
	inAW := make([]bool, len(inZW))

	for bi := range inZB {
		if inZB[bi] && targetB[bi] {
			inAB[bi] = true
		}
	}
	for wi := range inZW {
		if inZW[wi] && targetW[wi] {
			inAW[wi] = true
		}
	}

	for changed := true; changed; {
		changed = false

		for bi := range inZB {
			if !inZB[bi] || inAB[bi] {
				continue
			}
			for _, wi := range bwSucc[bi] {
				if inZW[wi] && inAW[wi] {
					inAB[bi] = true
					changed = true
					break
				}
			}
		}

		for wi := range inZW {
			if !inZW[wi] || inAW[wi] {
				continue
			}
			sawSuccInZ, allInA := false, true
			for _, bi := range wbSucc[wi] {
				if !inZB[bi] {
					continue
				}
				sawSuccInZ = true
				if !inAB[bi] {
					allInA = false
					break
				}
			}
			if sawSuccInZ && allInA {
				inAW[wi] = true
				changed = true
			}
		}
	}

	return inAB, inAW
}

func extractBSet(g *graph) map[core.Position]struct{} {
	out := make(map[core.Position]struct{})
	for i, p := range g.bList {
		if g.inZB[i] {
			out[p] = struct{}{}
		}
	}
	return out
}

func extractTempoStrategy(g *graph) (map[core.Position]core.Position, error) {
	_, inAW, witnessW := attractorWhiteWithWitness(g.inZB, g.inZW, g.bwSucc, g.wbSucc, g.isAcceptW)

	out := make(map[core.Position]core.Position)

	for wi := range g.wList {
		if !g.inZW[wi] {
			continue
		}

		var succInZ []int
		for _, bi := range g.wbSucc[wi] {
			if g.inZB[bi] {
				succInZ = append(succInZ, bi)
			}
		}
		if len(succInZ) == 0 {
			return nil, scenario.NewInvalidScenario("tempo strategy extraction found a terminal white node inside the winning subgame")
		}

		chosenBi := succInZ[0]
		switch {
		case g.isAcceptW[wi]:
			if passBi, ok := g.bIdx[g.wList[wi]]; ok && g.inZB[passBi] {
				chosenBi = passBi
			}
		case inAW[wi]:
			if witnessW[wi] >= 0 && g.inZB[witnessW[wi]] {
				chosenBi = witnessW[wi]
			}
		}

		out[g.wList[wi]] = g.bList[chosenBi]
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

func allTrue(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}

func countTrue(s []bool) int {
	n := 0
	for _, v := range s {
		if v {
			n++
		}
	}
	return n
}
