package scenario

import (
	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/rules"
)

// Scenario is a fully specified search configuration: the pure Rules plus
// every piece of scenario-specific policy a solver needs.
type Scenario struct {
	Name             string
	Rules            rules.Rules
	WhiteCanPass     bool
	TrackAbsKing     bool
	Start            StartState
	Candidates       CandidateGeneration
	Domain           Domain
	Laws             Laws
	Preferences      Preferences
	Limits           ResourceLimits
	CacheMode        CacheMode
	RemoveStalemates bool
}

// Validate checks the invariants a solver assumes before it runs: that the
// start state is legal, in-domain, in-law, and — if candidates are bound to
// an L-infinity ball — inside it.
func (s Scenario) Validate() error {
	st := s.Start.State

	if !s.TrackAbsKing && st.AbsKing != core.Origin {
		return NewInvalidScenario("track_abs_king=false requires start.abs_king == origin")
	}

	if !s.Rules.IsLegalPosition(st.Pos) {
		return NewInvalidScenario("start position is not legal under pure rules")
	}

	if s.Laws != nil && !s.Laws.AllowState(st) {
		return NewInvalidScenario("start state rejected by laws.allow_state")
	}

	if s.Domain != nil && !s.Domain.Inside(st) {
		return NewInvalidScenario("start state is outside the domain")
	}

	if s.Candidates.Kind == InLinfBound {
		bound := s.Candidates.Bound
		for _, sq := range st.Pos.Squares() {
			if sq.IsNone() {
				continue
			}
			if !sq.Coord().InBox(bound) {
				return NewInvalidScenario("start has a piece outside the L-infinity bound %d", bound)
			}
		}
	}

	if s.RemoveStalemates && s.Start.ToMove == Black && s.isStalemateUnderLaws(st) {
		return NewInvalidScenario("start is a stalemate (and remove_stalemates=true)")
	}

	return nil
}

func (s Scenario) isStalemateUnderLaws(st State) bool {
	if s.Rules.IsAttacked(core.Origin, st.Pos) {
		return false
	}

	for _, bm := range s.Rules.LegalBlackMovesWithDelta(st.Pos) {
		to := State{Pos: bm.Next}
		if s.TrackAbsKing {
			to.AbsKing = st.AbsKing.Add(bm.Delta)
		} else {
			to.AbsKing = st.AbsKing
		}
		allowMove := s.Laws == nil || s.Laws.AllowBlackMove(st, to, bm.Delta)
		allowState := s.Laws == nil || s.Laws.AllowState(to)
		if allowMove && allowState {
			return false
		}
	}
	return true
}
