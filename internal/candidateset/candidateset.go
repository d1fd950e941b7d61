// Package candidateset builds the finite candidate set a solver prunes or
// saturates, from a scenario.CandidateGeneration spec. The trap, Büchi and
// forced-mate solvers all reduce to black-to-move Positions (king-relative,
// translation-invariant), so this package always returns deduplicated
// Positions even when the underlying generation mode enumerates absolute
// States.
package candidateset

import (
	"context"

	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/scenario"
	"github.com/herohde/ichess/internal/universe"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Build constructs the candidate set of legal, in-law, in-domain Positions
// for s, filtering stalemates when s.RemoveStalemates is set.
func Build(ctx context.Context, s scenario.Scenario) ([]core.Position, error) {
	var raw []core.Position

	switch s.Candidates.Kind {
	case scenario.InLinfBound:
		raw = universe.EnumerateInLinfBound(s.Rules.Layout, s.Candidates.Bound, s.Candidates.AllowCaptures)

	case scenario.InAbsoluteBox:
		if !s.TrackAbsKing {
			return nil, scenario.NewInvalidScenario("candidate generation InAbsoluteBox requires track_abs_king")
		}
		seen := make(map[core.Position]struct{})
		universe.ForEachStateInAbsBox(s.Rules.Layout, s.Candidates.Bound, s.Candidates.AllowCaptures, func(st scenario.State) {
			if _, ok := seen[st.Pos]; !ok {
				seen[st.Pos] = struct{}{}
				raw = append(raw, st.Pos)
			}
		})

	case scenario.FromStates:
		seen := make(map[core.Position]struct{})
		for _, st := range s.Candidates.States {
			if _, ok := seen[st.Pos]; !ok {
				seen[st.Pos] = struct{}{}
				raw = append(raw, st.Pos)
			}
		}

	case scenario.ReachableFromStart:
		return reachableFromStart(ctx, s)

	default:
		return nil, scenario.NewInvalidScenario("unknown candidate generation kind")
	}

	return filter(s, raw), nil
}

func filter(s scenario.Scenario, raw []core.Position) []core.Position {
	out := raw[:0]
	for _, p := range raw {
		if !s.Rules.IsLegalPosition(p) {
			continue
		}
		st := scenario.State{Pos: p}
		if s.Laws != nil && !s.Laws.AllowState(st) {
			continue
		}
		if s.Domain != nil && !s.Domain.Inside(st) {
			continue
		}
		if s.RemoveStalemates && s.Rules.IsStalemate(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// reachableFromStart runs a breadth-first exploration of the black/white
// move graph from the scenario's start position, bounded by MaxQueue.
func reachableFromStart(ctx context.Context, s scenario.Scenario) ([]core.Position, error) {
	maxQueue := s.Candidates.MaxQueue

	visited := map[core.Position]struct{}{s.Start.State.Pos: {}}
	queue := []core.Position{s.Start.State.Pos}

	for len(queue) > 0 {
		if contextx.IsCancelled(ctx) {
			return nil, ctx.Err()
		}
		p := queue[0]
		queue = queue[1:]

		for _, next := range successors(s, p) {
			if _, ok := visited[next]; ok {
				continue
			}
			if len(visited) >= maxQueue {
				return nil, scenario.NewLimitExceeded("reachable_from_start", "states", uint64(maxQueue), uint64(len(visited)+1), scenario.ResourceCounts{States: uint64(len(visited) + 1)})
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	out := make([]core.Position, 0, len(visited))
	for p := range visited {
		out = append(out, p)
	}
	return filter(s, out), nil
}

// successors enumerates every Position reachable in one black move followed
// by one white reply — both filtered by the scenario's laws, per spec.md's
// "legal_black_moves and legal_white_moves (both filtered by laws)" — which
// is the unit of "one round" in this game.
func successors(s scenario.Scenario, p core.Position) []core.Position {
	r := s.Rules

	var out []core.Position
	from := scenario.State{Pos: p}
	for _, bm := range r.LegalBlackMovesWithDelta(p) {
		afterBlack := bm.Next
		toBlack := scenario.State{Pos: afterBlack}
		if s.Laws != nil && (!s.Laws.AllowBlackMove(from, toBlack, bm.Delta) || !s.Laws.AllowState(toBlack)) {
			continue
		}

		for _, afterWhite := range r.LegalWhiteMoves(afterBlack, s.WhiteCanPass) {
			toWhite := scenario.State{Pos: afterWhite}
			if s.Laws != nil && (!s.Laws.AllowWhiteMove(toBlack, toWhite) || !s.Laws.AllowState(toWhite)) {
				continue
			}
			out = append(out, afterWhite)
		}
	}
	return out
}
