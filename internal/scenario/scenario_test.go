package scenario_test

import (
	"testing"

	"github.com/herohde/ichess/internal/chesskind"
	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/rules"
	"github.com/herohde/ichess/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeRooksScenario(t *testing.T) scenario.Scenario {
	t.Helper()

	layout := chesskind.NewPieceLayout(false, 0, 3, 0, 0)
	r, err := rules.New(layout, 1)
	require.NoError(t, err)

	squares := []core.Square{
		core.SquareFromCoord(core.Coord{X: 2, Y: 2}),
		core.SquareFromCoord(core.Coord{X: 2, Y: 1}),
		core.SquareFromCoord(core.Coord{X: 1, Y: 2}),
	}
	pos := core.NewPosition(squares)
	pos.Canonicalize(layout.IdenticalRuns())

	return scenario.Scenario{
		Name:         "test_three_rooks",
		Rules:        r,
		WhiteCanPass: true,
		TrackAbsKing: false,
		Start: scenario.StartState{
			ToMove: scenario.Black,
			State:  scenario.NewState(core.Origin, pos),
		},
		Candidates: scenario.CandidateGeneration{
			Kind:          scenario.InLinfBound,
			Bound:         2,
			AllowCaptures: true,
		},
		Domain:           scenario.AllDomain{},
		Laws:             scenario.NoLaws{},
		Preferences:      scenario.NoPreferences{},
		Limits:           scenario.DefaultResourceLimits(),
		CacheMode:        scenario.CacheBothBounded,
		RemoveStalemates: true,
	}
}

func TestValidateAcceptsWellFormedScenario(t *testing.T) {
	s := threeRooksScenario(t)
	assert.NoError(t, s.Validate())
}

func TestValidateRejectsNonOriginAbsKingWithoutTracking(t *testing.T) {
	s := threeRooksScenario(t)
	s.Start.State.AbsKing = core.Coord{X: 1, Y: 0}

	err := s.Validate()
	require.Error(t, err)
	var serr *scenario.SearchError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, scenario.InvalidScenario, serr.Kind)
}

func TestValidateRejectsIllegalStartPosition(t *testing.T) {
	s := threeRooksScenario(t)
	// Place a rook on the origin, which the black king occupies.
	squares := []core.Square{
		core.SquareFromCoord(core.Origin),
		core.SquareFromCoord(core.Coord{X: 2, Y: 1}),
		core.SquareFromCoord(core.Coord{X: 1, Y: 2}),
	}
	s.Start.State.Pos = core.NewPosition(squares)

	err := s.Validate()
	require.Error(t, err)
}

func TestValidateRejectsStartOutsideLinfBound(t *testing.T) {
	s := threeRooksScenario(t)
	s.Candidates.Bound = 1

	err := s.Validate()
	require.Error(t, err)
}

func TestValidateRejectsStalemateStartWhenRemoveStalematesSet(t *testing.T) {
	s := threeRooksScenario(t)

	layout := s.Rules.Layout
	// Three rooks on diagonal neighbours of the black king, each protecting
	// the others: none shares the origin's row or column, so there is no
	// check, and every king step or capture lands on an attacked square: a
	// stalemate start.
	squares := []core.Square{
		core.SquareFromCoord(core.Coord{X: 1, Y: 1}),
		core.SquareFromCoord(core.Coord{X: -1, Y: -1}),
		core.SquareFromCoord(core.Coord{X: 1, Y: -1}),
	}
	pos := core.NewPosition(squares)
	pos.Canonicalize(layout.IdenticalRuns())
	s.Start.State.Pos = pos
	s.Candidates.Bound = 3

	require.True(t, s.Rules.IsStalemate(pos))
	err := s.Validate()
	require.Error(t, err)
}

func TestSideString(t *testing.T) {
	assert.Equal(t, "black", scenario.Black.String())
	assert.Equal(t, "white", scenario.White.String())
}

func TestNoPreferencesRanksInGenerationOrder(t *testing.T) {
	p := scenario.NoPreferences{}
	moves := []scenario.State{{}, {}, {}}
	assert.Equal(t, []int{0, 1, 2}, p.RankBlackMoves(scenario.State{}, moves))
	assert.Equal(t, []int{0, 1, 2}, p.RankWhiteMoves(scenario.State{}, moves))
}
