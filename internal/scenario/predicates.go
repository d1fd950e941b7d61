package scenario

import "github.com/herohde/ichess/internal/core"

// Domain is a scenario membership predicate — "inside vs outside". It is not
// legality: a move may leave the domain; whether that counts as escape is up
// to the solver running against the scenario.
type Domain interface {
	Inside(s State) bool
}

// Laws are scenario-specific legality filters, applied after pure rules
// generate a move.
type Laws interface {
	AllowState(s State) bool
	AllowBlackMove(from, to State, delta core.Coord) bool
	AllowWhiteMove(from, to State) bool
	AllowPass(s State) bool
}

// Preferences break ties when a demo or strategy needs to pick one move among
// several; they never affect which moves are legal.
type Preferences interface {
	RankBlackMoves(from State, moves []State) []int
	RankWhiteMoves(from State, moves []State) []int
}

// AllDomain treats every state as inside.
type AllDomain struct{}

func (AllDomain) Inside(State) bool { return true }

// NoLaws imposes no scenario-specific restriction beyond pure rules.
type NoLaws struct{}

func (NoLaws) AllowState(State) bool                        { return true }
func (NoLaws) AllowBlackMove(State, State, core.Coord) bool { return true }
func (NoLaws) AllowWhiteMove(State, State) bool             { return true }
func (NoLaws) AllowPass(State) bool                         { return true }

// NoPreferences ranks moves in generation order.
type NoPreferences struct{}

func (NoPreferences) RankBlackMoves(_ State, moves []State) []int {
	return identityOrder(len(moves))
}

func (NoPreferences) RankWhiteMoves(_ State, moves []State) []int {
	return identityOrder(len(moves))
}

func identityOrder(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
