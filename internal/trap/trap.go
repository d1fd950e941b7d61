// Package trap computes the maximal inescapable trap: the greatest set of
// black-to-move positions closed under "every black reply has some white
// reply back into the set".
package trap

import (
	"context"

	"github.com/herohde/ichess/internal/candidateset"
	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/movecache"
	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/scenario"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Result holds the computed trap as a set of black-to-move Positions.
type Result struct {
	Trap map[core.Position]struct{}
}

// Contains reports whether p is a member of the trap.
func (r Result) Contains(p core.Position) bool {
	_, ok := r.Trap[p]
	return ok
}

// Compute runs the greatest-fixed-point pruning loop: start from the full
// candidate set and repeatedly remove any position with a black reply all of
// whose white replies leave the set, until nothing more is removed.
func Compute(ctx context.Context, s scenario.Scenario, tracker *resources.Tracker) (*Result, error) {
	candidates, err := candidateset.Build(ctx, s)
	if err != nil {
		return nil, err
	}
	if err := tracker.BumpStates("trap.candidates", uint64(len(candidates))); err != nil {
		return nil, err
	}

	trapSet := make(map[core.Position]struct{}, len(candidates))
	for _, p := range candidates {
		trapSet[p] = struct{}{}
	}

	cache := movecache.New(s.Rules, s.Laws, s.CacheMode, tracker)

	for iteration := 0; ; iteration++ {
		if contextx.IsCancelled(ctx) {
			return nil, ctx.Err()
		}
		if err := tracker.BumpSteps("trap.fixedpoint", 1); err != nil {
			return nil, err
		}

		var toRemove []core.Position
		for p := range trapSet {
			fails, err := failsToHoldTrap(s, cache, trapSet, p)
			if err != nil {
				return nil, err
			}
			if fails {
				toRemove = append(toRemove, p)
			}
		}

		logw.Debugf(ctx, "trap fixed point: iteration=%d, size=%d, removed=%d", iteration, len(trapSet), len(toRemove))

		if len(toRemove) == 0 {
			break
		}
		for _, p := range toRemove {
			delete(trapSet, p)
		}
	}

	return &Result{Trap: trapSet}, nil
}

// failsToHoldTrap reports whether p has a black reply all of whose white
// replies exit trapSet — disqualifying p from the inescapable trap.
func failsToHoldTrap(s scenario.Scenario, cache *movecache.Cache, trapSet map[core.Position]struct{}, p core.Position) (bool, error) {
	blackMoves, err := cache.BlackMoves(p)
	if err != nil {
		return false, err
	}

	for _, afterBlack := range blackMoves {
		whiteMoves, err := cache.WhiteMoves(afterBlack, s.WhiteCanPass)
		if err != nil {
			return false, err
		}

		hasReplyInTrap := false
		for _, q := range whiteMoves {
			if _, ok := trapSet[q]; ok {
				hasReplyInTrap = true
				break
			}
		}
		if !hasReplyInTrap {
			return true, nil
		}
	}
	return false, nil
}
