package strategy_test

import (
	"context"
	"testing"

	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/scenarios"
	"github.com/herohde/ichess/internal/strategy"
	"github.com/herohde/ichess/internal/trap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStayInTrapOnlyChoosesRepliesInsideTheTrap(t *testing.T) {
	ctx := context.Background()
	s := scenarios.ThreeRooksBound2MB1()

	tracker := resources.New(s.Limits)
	trapResult, err := trap.Compute(ctx, s, tracker)
	require.NoError(t, err)
	require.NotEmpty(t, trapResult.Trap)

	strat, err := strategy.ExtractStayInTrap(ctx, s, trapResult.Trap, tracker)
	require.NoError(t, err)
	assert.NotEmpty(t, strat)

	for _, chosen := range strat {
		assert.True(t, trapResult.Contains(chosen))
	}
}

func TestExtractStayInTrapCoversEveryBlackReplyWithAStayingWhiteMove(t *testing.T) {
	ctx := context.Background()
	s := scenarios.ThreeRooksBound2MB1()

	tracker := resources.New(s.Limits)
	trapResult, err := trap.Compute(ctx, s, tracker)
	require.NoError(t, err)

	strat, err := strategy.ExtractStayInTrap(ctx, s, trapResult.Trap, tracker)
	require.NoError(t, err)

	for b := range trapResult.Trap {
		for _, w := range s.Rules.LegalBlackMoves(b) {
			_, ok := strat[w]
			assert.True(t, ok, "every black reply out of a trap state must have a recorded staying reply")
		}
	}
}
