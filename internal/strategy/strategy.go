// Package strategy extracts a concrete "what should White do here?" choice
// from a computed trap set, for demos and interactive play. Preferences are
// used only as a tie-breaker; they never affect which states belong to the
// trap.
package strategy

import (
	"context"

	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/scenario"
	"github.com/seekerror/logw"
)

// ExtractStayInTrap builds a memoryless White strategy: for every
// white-to-move position arising from a legal Black reply inside trapSet, a
// chosen White reply that also stays inside trapSet. The first Black
// predecessor to reach a given White node wins the entry; later
// predecessors reaching the same node are skipped, matching the original's
// first-come-first-served rule.
func ExtractStayInTrap(ctx context.Context, s scenario.Scenario, trapSet map[core.Position]struct{}, tracker *resources.Tracker) (map[core.Position]core.Position, error) {
	out := make(map[core.Position]core.Position)

	for b := range trapSet {
		if err := tracker.BumpSteps("strategy.extract", 1); err != nil {
			return nil, err
		}

		for _, w := range s.Rules.LegalBlackMoves(b) {
			if _, ok := out[w]; ok {
				continue
			}

			replies := s.Rules.LegalWhiteMoves(w, s.WhiteCanPass)
			var stay []core.Position
			for _, r := range replies {
				if _, ok := trapSet[r]; ok {
					stay = append(stay, r)
				}
			}
			if len(stay) == 0 {
				continue
			}

			choice := chooseByPreference(s, w, stay)
			out[w] = choice
		}
	}

	logw.Debugf(ctx, "strategy: extracted %d white replies over a %d-state trap", len(out), len(trapSet))
	return out, nil
}

func chooseByPreference(s scenario.Scenario, w core.Position, stay []core.Position) core.Position {
	if s.Preferences == nil {
		return stay[0]
	}

	wState := scenario.State{Pos: w}
	states := make([]scenario.State, len(stay))
	for i, p := range stay {
		states[i] = scenario.State{Pos: p}
	}

	for _, idx := range s.Preferences.RankWhiteMoves(wState, states) {
		if idx >= 0 && idx < len(stay) {
			return stay[idx]
		}
	}
	return stay[0]
}
