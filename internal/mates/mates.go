// Package mates enumerates checkmates within an L-infinity bound, using
// true infinite-board legality throughout: the bound is a slice to search
// within, never a wall that would make a Black king move "illegal" by
// running off the edge.
package mates

import (
	"context"

	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/rules"
	"github.com/herohde/ichess/internal/universe"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// CountCheckmatesInBound counts positions (black king in check, no legal
// black reply) among every canonical placement with all pieces within
// bound.
func CountCheckmatesInBound(ctx context.Context, r rules.Rules, bound int32) (int, error) {
	positions := universe.EnumerateInLinfBound(r.Layout, bound, false)
	count := 0
	for _, p := range positions {
		if contextx.IsCancelled(ctx) {
			return 0, ctx.Err()
		}
		if r.IsCheckmate(p) {
			count++
		}
	}
	return count, nil
}

// CheckmatesInBound is CountCheckmatesInBound's counterpart that returns the
// matching positions themselves, for callers that need to inspect them
// rather than just count them.
func CheckmatesInBound(ctx context.Context, r rules.Rules, bound int32) ([]core.Position, error) {
	positions := universe.EnumerateInLinfBound(r.Layout, bound, false)
	var out []core.Position
	for _, p := range positions {
		if contextx.IsCancelled(ctx) {
			return nil, ctx.Err()
		}
		if r.IsCheckmate(p) {
			out = append(out, p)
		}
	}
	return out, nil
}
