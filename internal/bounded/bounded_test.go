package bounded_test

import (
	"context"
	"testing"

	"github.com/herohde/ichess/internal/bounded"
	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/scenarios"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCountsAreInternallyConsistent(t *testing.T) {
	ctx := context.Background()
	s := scenarios.TwoQueensBound2AbsBox()

	tracker := resources.New(s.Limits)
	counts, err := bounded.Compute(ctx, s, tracker)
	require.NoError(t, err)

	assert.Greater(t, counts.UniverseStates, 0)
	assert.LessOrEqual(t, counts.Trap, counts.UniverseStates)
	assert.LessOrEqual(t, counts.Tempo, counts.Trap)
	assert.LessOrEqual(t, counts.Mate, counts.Trap)
}

func TestComputeCountsMatchTwoQueensBound2AbsBoxSeedScenario(t *testing.T) {
	ctx := context.Background()
	s := scenarios.TwoQueensBound2AbsBox()

	tracker := resources.New(s.Limits)
	counts, err := bounded.Compute(ctx, s, tracker)
	require.NoError(t, err)

	assert.Equal(t, 4600, counts.Trap, "safety-trap size")
	assert.Equal(t, 1824, counts.Tempo, "tempo-trap size")
	assert.Equal(t, 352, counts.CheckmatesInUniverse, "checkmate-target count")
	assert.Equal(t, 4572, counts.Mate, "reachability-to-mate count")
}

func TestComputeRejectsNonAbsBoxCandidates(t *testing.T) {
	ctx := context.Background()
	s := scenarios.ThreeRooksBound2MB1()

	tracker := resources.New(s.Limits)
	_, err := bounded.Compute(ctx, s, tracker)
	require.Error(t, err)
}
