// Package scenario is the glue between pure Rules and a concrete search
// objective: a Scenario bundles the rules with scenario-specific
// restrictions (Laws), an "inside" predicate (Domain), optional tie-breakers
// (Preferences), candidate-set construction, caching policy and resource
// budgets.
package scenario

import (
	"github.com/herohde/ichess/internal/core"
)

// Side identifies whose turn it is to move in a State.
type Side int

const (
	Black Side = iota
	White
)

func (s Side) String() string {
	if s == Black {
		return "black"
	}
	return "white"
}

// State is a game position: pos is king-relative (black king at origin);
// absKing is the absolute black king anchor, only meaningful when a scenario
// tracks it (Scenario.TrackAbsKing). When TrackAbsKing is false, AbsKing
// must be core.Origin and black moves leave it unchanged — this is the
// translation-reduced state space.
type State struct {
	AbsKing core.Coord
	Pos     core.Position
}

func NewState(absKing core.Coord, pos core.Position) State {
	return State{AbsKing: absKing, Pos: pos}
}

// StartState is the required starting point for every objective.
type StartState struct {
	ToMove Side
	State  State
}
