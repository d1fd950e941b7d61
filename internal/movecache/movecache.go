// Package movecache memoizes black/white move generation for one solver run.
// A Cache is acquired at solver entry and discarded at solver exit; there is
// no cross-solver sharing and no global state.
package movecache

import (
	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/rules"
	"github.com/herohde/ichess/internal/scenario"
)

// Cache memoizes Rules.LegalBlackMoves/LegalWhiteMoves results, filtered
// through a scenario.Laws, keyed by Position, honouring a scenario.CacheMode
// and a shared resources.Tracker. Caching by Position alone is sound: move
// generation and the laws filter only depend on the king-relative placement,
// never on the absolute king anchor.
type Cache struct {
	rules   rules.Rules
	laws    scenario.Laws
	mode    scenario.CacheMode
	tracker *resources.Tracker

	black map[core.Position][]core.Position
	white map[core.Position][]core.Position
}

func New(r rules.Rules, laws scenario.Laws, mode scenario.CacheMode, tracker *resources.Tracker) *Cache {
	c := &Cache{rules: r, laws: laws, mode: mode, tracker: tracker}
	if mode == scenario.CacheBlackOnly || mode == scenario.CacheBothBounded {
		c.black = make(map[core.Position][]core.Position)
	}
	if mode == scenario.CacheBothBounded {
		c.white = make(map[core.Position][]core.Position)
	}
	return c
}

// BlackMoves returns the legal black moves from p allowed by the scenario's
// laws, caching the result unless the cache mode is CacheNone.
func (c *Cache) BlackMoves(p core.Position) ([]core.Position, error) {
	if c.black == nil {
		return c.legalBlackMoves(p), nil
	}
	if v, ok := c.black[p]; ok {
		return v, nil
	}

	moves := c.legalBlackMoves(p)
	if err := c.reserveEntry(len(moves)); err != nil {
		return nil, err
	}
	c.black[p] = moves
	return moves, nil
}

// WhiteMoves returns the legal white moves from p given allowPass, allowed by
// the scenario's laws, caching the result only under scenario.CacheBothBounded.
func (c *Cache) WhiteMoves(p core.Position, allowPass bool) ([]core.Position, error) {
	if c.white == nil {
		return c.legalWhiteMoves(p, allowPass), nil
	}
	if v, ok := c.white[p]; ok {
		return v, nil
	}

	moves := c.legalWhiteMoves(p, allowPass)
	if err := c.reserveEntry(len(moves)); err != nil {
		return nil, err
	}
	c.white[p] = moves
	return moves, nil
}

// legalBlackMoves generates black replies via Rules, then drops any the
// scenario's laws disallow — either the move itself (allow_black_move) or
// the resulting state (allow_state) — per spec.md's "generated via the Rules
// layer and the scenario's laws".
func (c *Cache) legalBlackMoves(p core.Position) []core.Position {
	if c.laws == nil {
		return c.rules.LegalBlackMoves(p)
	}

	from := scenario.State{Pos: p}
	var out []core.Position
	for _, bm := range c.rules.LegalBlackMovesWithDelta(p) {
		to := scenario.State{Pos: bm.Next}
		if !c.laws.AllowBlackMove(from, to, bm.Delta) || !c.laws.AllowState(to) {
			continue
		}
		out = append(out, bm.Next)
	}
	return out
}

// legalWhiteMoves generates white replies via Rules, then drops any the
// scenario's laws disallow (allow_white_move / allow_state on the result).
func (c *Cache) legalWhiteMoves(p core.Position, allowPass bool) []core.Position {
	moves := c.rules.LegalWhiteMoves(p, allowPass)
	if c.laws == nil {
		return moves
	}

	from := scenario.State{Pos: p}
	out := moves[:0]
	for _, m := range moves {
		to := scenario.State{Pos: m}
		if !c.laws.AllowWhiteMove(from, to) || !c.laws.AllowState(to) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (c *Cache) reserveEntry(moveCount int) error {
	if c.tracker == nil {
		return nil
	}
	if err := c.tracker.BumpCacheEntries("movecache", 1); err != nil {
		return err
	}
	return c.tracker.BumpCachedMoves("movecache", uint64(moveCount))
}
