package buchi_test

import (
	"context"
	"testing"

	"github.com/herohde/ichess/internal/buchi"
	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/scenario"
	"github.com/herohde/ichess/internal/scenarios"
	"github.com/herohde/ichess/internal/trap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempoTrapIsSubsetOfInescapableTrap(t *testing.T) {
	ctx := context.Background()
	s := scenarios.ThreeRooksBound2MB1()

	tr := resources.New(s.Limits)
	trapResult, err := trap.Compute(ctx, s, tr)
	require.NoError(t, err)
	require.NotEmpty(t, trapResult.Trap)

	tempoResult, err := buchi.Compute(ctx, s, trapResult.Trap, tr)
	require.NoError(t, err)

	for p := range tempoResult.Trap {
		assert.True(t, trapResult.Contains(p))
	}
	assert.LessOrEqual(t, len(tempoResult.Trap), len(trapResult.Trap))
}

func TestThreeRooksTempoTrapSizeMatchesSeedScenario(t *testing.T) {
	ctx := context.Background()
	s := scenarios.ThreeRooksBound2MB1()

	tr := resources.New(s.Limits)
	trapResult, err := trap.Compute(ctx, s, tr)
	require.NoError(t, err)
	require.Equal(t, 169, len(trapResult.Trap))

	tempoResult, err := buchi.Compute(ctx, s, trapResult.Trap, tr)
	require.NoError(t, err)
	assert.Equal(t, 113, len(tempoResult.Trap))
}

func TestNoTempoTrapPositionIsACheckmate(t *testing.T) {
	ctx := context.Background()
	s := scenarios.ThreeRooksBound2MB1()

	tr := resources.New(s.Limits)
	trapResult, err := trap.Compute(ctx, s, tr)
	require.NoError(t, err)

	tempoResult, err := buchi.Compute(ctx, s, trapResult.Trap, tr)
	require.NoError(t, err)
	require.NotEmpty(t, tempoResult.Trap)

	for p := range tempoResult.Trap {
		assert.False(t, s.Rules.IsCheckmate(p), "position %v is in the tempo trap but is in check with no reply", p)
	}
}

// denyAllBlackMoves forbids every black move, proving the bipartite graph
// built for the Buchi attractor consults AllowBlackMove on its edges rather
// than Rules alone. With every black->white edge removed, every black node
// has no successor, so it can never be part of an infinite recurring play
// and the tempo trap must collapse to empty.
type denyAllBlackMoves struct{ scenario.NoLaws }

func (denyAllBlackMoves) AllowBlackMove(scenario.State, scenario.State, core.Coord) bool {
	return false
}

func TestTempoTrapConsultsLawsForbiddingAllBlackMoves(t *testing.T) {
	ctx := context.Background()
	s := scenarios.ThreeRooksBound2MB1()
	s.Laws = denyAllBlackMoves{}

	tr := resources.New(s.Limits)
	trapResult, err := trap.Compute(ctx, s, tr)
	require.NoError(t, err)
	require.NotEmpty(t, trapResult.Trap)

	tempoResult, err := buchi.Compute(ctx, s, trapResult.Trap, tr)
	require.NoError(t, err)
	assert.Empty(t, tempoResult.Trap, "with every black move forbidden by law, no black node has a successor edge so none can sustain an infinite recurring play")
}

func TestTempoTrapStrategyStaysInsideTheTrap(t *testing.T) {
	ctx := context.Background()
	s := scenarios.ThreeRooksBound2MB1()

	tr := resources.New(s.Limits)
	trapResult, err := trap.Compute(ctx, s, tr)
	require.NoError(t, err)

	tempoResult, strat, err := buchi.ComputeWithStrategy(ctx, s, trapResult.Trap, tr)
	require.NoError(t, err)

	for wpos, chosen := range strat {
		_ = wpos
		assert.True(t, tempoResult.Contains(chosen))
	}
}
