package candidateset_test

import (
	"context"
	"testing"

	"github.com/herohde/ichess/internal/candidateset"
	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/scenario"
	"github.com/herohde/ichess/internal/scenarios"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInLinfBoundFiltersStalemates(t *testing.T) {
	s := scenarios.ThreeRooksBound2MB1()
	candidates, err := candidateset.Build(context.Background(), s)
	require.NoError(t, err)
	assert.NotEmpty(t, candidates)

	for _, p := range candidates {
		assert.True(t, s.Rules.IsLegalPosition(p))
		assert.False(t, s.Rules.IsStalemate(p))
	}
}

func TestBuildDeduplicates(t *testing.T) {
	s := scenarios.ThreeRooksBound2MB1()
	candidates, err := candidateset.Build(context.Background(), s)
	require.NoError(t, err)

	seen := make(map[core.Position]struct{}, len(candidates))
	for _, p := range candidates {
		_, dup := seen[p]
		assert.False(t, dup, "duplicate candidate position")
		seen[p] = struct{}{}
	}
}

func TestBuildNoWhitePiecesProducesSingleEmptyPosition(t *testing.T) {
	s := scenarios.NoWhitePieces(2)
	candidates, err := candidateset.Build(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, 0, candidates[0].Count())
}

func TestBuildInAbsoluteBoxRequiresTrackAbsKing(t *testing.T) {
	s := scenarios.ThreeRooksBound2MB1()
	s.TrackAbsKing = false
	s.Candidates.Kind = scenario.InAbsoluteBox
	_, err := candidateset.Build(context.Background(), s)
	require.Error(t, err)
}
