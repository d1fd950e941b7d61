package mates_test

import (
	"context"
	"testing"

	"github.com/herohde/ichess/internal/mates"
	"github.com/herohde/ichess/internal/scenarios"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountCheckmatesInBoundMatchesThreeRooksSeedScenario(t *testing.T) {
	s := scenarios.ThreeRooksBound2MB1()
	got, err := mates.CountCheckmatesInBound(context.Background(), s.Rules, s.Candidates.Bound)
	require.NoError(t, err)
	assert.Equal(t, 48, got)
}

func TestCheckmatesInBoundLengthMatchesCount(t *testing.T) {
	s := scenarios.ThreeRooksBound2MB1()
	count, err := mates.CountCheckmatesInBound(context.Background(), s.Rules, s.Candidates.Bound)
	require.NoError(t, err)
	positions, err := mates.CheckmatesInBound(context.Background(), s.Rules, s.Candidates.Bound)
	require.NoError(t, err)
	assert.Len(t, positions, count)
}

func TestCountCheckmatesInBoundIsZeroForTwoRooksBound7(t *testing.T) {
	s := scenarios.TwoRooksBound7()
	// The scenario's candidates are reachable-from-start, so Candidates.Bound
	// is unset; count over the L-infinity bound 7 its name and domain carry.
	got, err := mates.CountCheckmatesInBound(context.Background(), s.Rules, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}
