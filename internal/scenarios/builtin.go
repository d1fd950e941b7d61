// Package scenarios holds the built-in named scenarios and the domain
// implementations they share.
package scenarios

import (
	"github.com/herohde/ichess/internal/chesskind"
	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/rules"
	"github.com/herohde/ichess/internal/scenario"
)

// AbsBoxDomain anchors the state space to an absolute king coordinate and
// keeps both the king and every piece inside a finite box; walking outside
// it becomes an observable domain exit instead of silently reducing by
// translation. All keeps the legacy translation-reduced behaviour where
// every state is considered inside.
type AbsBoxDomain struct {
	Bound int32
	All   bool
}

func (d AbsBoxDomain) Inside(s scenario.State) bool {
	if d.All {
		return true
	}
	if !s.AbsKing.InBox(d.Bound) {
		return false
	}
	for _, sq := range s.Pos.Squares() {
		if sq.IsNone() {
			continue
		}
		abs := s.AbsKing.Add(sq.Coord())
		if !abs.InBox(d.Bound) {
			return false
		}
	}
	return true
}

func posFromCoords(layout chesskind.PieceLayout, coords []core.Coord) core.Position {
	if layout.PieceCount() != len(coords) {
		panic("scenarios: coordinate count must match layout piece count")
	}
	squares := make([]core.Square, len(coords))
	for i, c := range coords {
		squares[i] = core.SquareFromCoord(c)
	}
	pos := core.NewPosition(squares)
	pos.Canonicalize(layout.IdenticalRuns())
	return pos
}

func demoLimits() scenario.ResourceLimits {
	return scenario.ResourceLimits{
		MaxStates:       1_000_000,
		MaxEdges:        25_000_000,
		MaxCacheEntries: 100_000,
		MaxCachedMoves:  5_000_000,
		MaxRuntimeSteps: 50_000_000,
	}
}

func tworooksLimits() scenario.ResourceLimits {
	return scenario.ResourceLimits{
		MaxStates:       2_000_000,
		MaxEdges:        2_000_000_000,
		MaxCacheEntries: 250_000,
		MaxCachedMoves:  15_000_000,
		MaxRuntimeSteps: 2_000_000_000,
	}
}

// ThreeRooksBound2MB1 is small enough for tests and fast demos: three rooks,
// L-infinity bound 2, move_bound 1.
func ThreeRooksBound2MB1() scenario.Scenario {
	layout := chesskind.NewPieceLayout(false, 0, 3, 0, 0)
	r, err := rules.New(layout, 1)
	if err != nil {
		panic(err)
	}
	start := posFromCoords(layout, []core.Coord{{X: 2, Y: 2}, {X: 2, Y: 1}, {X: 1, Y: 2}})

	return scenario.Scenario{
		Name:         "three_rooks_bound2_mb1",
		Rules:        r,
		WhiteCanPass: true,
		TrackAbsKing: false,
		Start: scenario.StartState{
			ToMove: scenario.Black,
			State:  scenario.NewState(core.Origin, start),
		},
		Candidates: scenario.CandidateGeneration{
			Kind:          scenario.InLinfBound,
			Bound:         2,
			AllowCaptures: true,
		},
		Domain:           AbsBoxDomain{All: true},
		Laws:             scenario.NoLaws{},
		Preferences:      scenario.NoPreferences{},
		Limits:           demoLimits(),
		CacheMode:        scenario.CacheBothBounded,
		RemoveStalemates: true,
	}
}

// TwoRooksBound7 is anchored (TrackAbsKing=true) so "walk away forever"
// becomes observable as leaving the domain instead of vanishing by
// translation reduction.
func TwoRooksBound7() scenario.Scenario {
	layout := chesskind.NewPieceLayout(false, 0, 2, 0, 0)
	r, err := rules.New(layout, 7)
	if err != nil {
		panic(err)
	}
	start := posFromCoords(layout, []core.Coord{{X: 1, Y: 3}, {X: -2, Y: -5}})

	return scenario.Scenario{
		Name:         "two_rooks_bound7",
		Rules:        r,
		WhiteCanPass: true,
		TrackAbsKing: true,
		Start: scenario.StartState{
			ToMove: scenario.Black,
			State:  scenario.NewState(core.Origin, start),
		},
		Candidates: scenario.CandidateGeneration{
			Kind:     scenario.ReachableFromStart,
			MaxQueue: 2_000_000,
		},
		Domain:           AbsBoxDomain{Bound: 7},
		Laws:             scenario.NoLaws{},
		Preferences:      scenario.NoPreferences{},
		Limits:           tworooksLimits(),
		CacheMode:        scenario.CacheBothBounded,
		RemoveStalemates: true,
	}
}

// TwoQueensBound2 uses unbounded-within-the-box sliding (MoveBound wide
// enough to reach any square in the L-infinity bound 2 window), matching the
// original "no slider cap" configuration this scenario is drawn from.
func TwoQueensBound2() scenario.Scenario {
	layout := chesskind.NewPieceLayout(false, 2, 0, 0, 0)
	r, err := rules.New(layout, 4)
	if err != nil {
		panic(err)
	}
	start := posFromCoords(layout, []core.Coord{{X: -2, Y: -2}, {X: 2, Y: 2}})

	return scenario.Scenario{
		Name:         "two_queens_bound2",
		Rules:        r,
		WhiteCanPass: true,
		TrackAbsKing: false,
		Start: scenario.StartState{
			ToMove: scenario.Black,
			State:  scenario.NewState(core.Origin, start),
		},
		Candidates: scenario.CandidateGeneration{
			Kind:          scenario.InLinfBound,
			Bound:         2,
			AllowCaptures: true,
		},
		Domain:           AbsBoxDomain{All: true},
		Laws:             scenario.NoLaws{},
		Preferences:      scenario.NoPreferences{},
		Limits:           demoLimits(),
		CacheMode:        scenario.CacheBothBounded,
		RemoveStalemates: true,
	}
}

// TwoQueensBound2AbsBox is the forced-mate counterpart to TwoQueensBound2:
// the same material and L-infinity bound, but with an absolute king anchor
// and an InAbsoluteBox candidate set, so that "Black walks outside the
// bound" is an observable escape rather than silently reduced away by
// translation — exactly what internal/forcedmate requires.
func TwoQueensBound2AbsBox() scenario.Scenario {
	layout := chesskind.NewPieceLayout(false, 2, 0, 0, 0)
	r, err := rules.New(layout, 4)
	if err != nil {
		panic(err)
	}
	start := posFromCoords(layout, []core.Coord{{X: -2, Y: -2}, {X: 2, Y: 2}})

	return scenario.Scenario{
		Name:         "two_queens_bound2_abs_box",
		Rules:        r,
		WhiteCanPass: true,
		TrackAbsKing: true,
		Start: scenario.StartState{
			ToMove: scenario.Black,
			State:  scenario.NewState(core.Origin, start),
		},
		Candidates: scenario.CandidateGeneration{
			Kind:          scenario.InAbsoluteBox,
			Bound:         2,
			AllowCaptures: true,
		},
		Domain:           AbsBoxDomain{Bound: 2},
		Laws:             scenario.NoLaws{},
		Preferences:      scenario.NoPreferences{},
		Limits:           demoLimits(),
		CacheMode:        scenario.CacheBothBounded,
		RemoveStalemates: true,
	}
}

// NoWhitePieces is a degenerate scenario used to check that an empty trap is
// computed cleanly regardless of bound.
func NoWhitePieces(bound int32) scenario.Scenario {
	layout := chesskind.NewPieceLayout(false, 0, 0, 0, 0)
	r, err := rules.New(layout, 1)
	if err != nil {
		panic(err)
	}
	start := core.NewPosition(nil)

	return scenario.Scenario{
		Name:         "no_white_pieces",
		Rules:        r,
		WhiteCanPass: true,
		TrackAbsKing: true,
		Start: scenario.StartState{
			ToMove: scenario.Black,
			State:  scenario.NewState(core.Origin, start),
		},
		Candidates: scenario.CandidateGeneration{
			Kind:          scenario.InLinfBound,
			Bound:         bound,
			AllowCaptures: true,
		},
		Domain:           AbsBoxDomain{Bound: bound},
		Laws:             scenario.NoLaws{},
		Preferences:      scenario.NoPreferences{},
		Limits:           demoLimits(),
		CacheMode:        scenario.CacheBothBounded,
		RemoveStalemates: false,
	}
}

// SingleRook is a degenerate material scenario: one rook can never lock a
// lone king in an inescapable trap.
func SingleRook() scenario.Scenario {
	layout := chesskind.NewPieceLayout(false, 0, 1, 0, 0)
	r, err := rules.New(layout, 3)
	if err != nil {
		panic(err)
	}
	start := posFromCoords(layout, []core.Coord{{X: 2, Y: 2}})

	return scenario.Scenario{
		Name:         "single_rook",
		Rules:        r,
		WhiteCanPass: true,
		TrackAbsKing: true,
		Start: scenario.StartState{
			ToMove: scenario.Black,
			State:  scenario.NewState(core.Origin, start),
		},
		Candidates: scenario.CandidateGeneration{
			Kind:          scenario.InLinfBound,
			Bound:         3,
			AllowCaptures: true,
		},
		Domain:           AbsBoxDomain{Bound: 3},
		Laws:             scenario.NoLaws{},
		Preferences:      scenario.NoPreferences{},
		Limits:           demoLimits(),
		CacheMode:        scenario.CacheBothBounded,
		RemoveStalemates: true,
	}
}

// ByName looks up a built-in scenario constructor, mirroring the original's
// by_name/names registry.
func ByName(name string) (scenario.Scenario, bool, error) {
	switch name {
	case "three_rooks_bound2_mb1":
		return ThreeRooksBound2MB1(), true, nil
	case "two_rooks_bound7":
		return TwoRooksBound7(), true, nil
	case "two_queens_bound2":
		return TwoQueensBound2(), true, nil
	case "two_queens_bound2_abs_box":
		return TwoQueensBound2AbsBox(), true, nil
	case "single_rook":
		return SingleRook(), true, nil
	case "nbb20_from_file":
		s, err := NBB20FromFile(DefaultNBBDataPath)
		return s, true, err
	case "nbb7_generated":
		return NBB7Generated(), true, nil
	default:
		return scenario.Scenario{}, false, nil
	}
}

// Names lists every built-in scenario name.
func Names() []string {
	return []string{
		"three_rooks_bound2_mb1",
		"two_rooks_bound7",
		"two_queens_bound2",
		"two_queens_bound2_abs_box",
		"single_rook",
		"nbb20_from_file",
		"nbb7_generated",
	}
}
