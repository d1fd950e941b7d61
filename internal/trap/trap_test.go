package trap_test

import (
	"context"
	"testing"

	"github.com/herohde/ichess/internal/candidateset"
	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/scenario"
	"github.com/herohde/ichess/internal/scenarios"
	"github.com/herohde/ichess/internal/trap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// denyAllBlackMoves forbids every black move, analogous to
// original_source/tests/laws.rs's NoCapturesLaws but total. It proves the
// trap fixed point consults AllowBlackMove rather than bare Rules: with
// every black reply forbidden, no position can ever fail to hold the trap,
// so the trap must equal the full candidate set exactly.
type denyAllBlackMoves struct{ scenario.NoLaws }

func (denyAllBlackMoves) AllowBlackMove(scenario.State, scenario.State, core.Coord) bool {
	return false
}

// denyAllWhiteMoves forbids every white reply. With no white reply ever
// landing back in the trap, failsToHoldTrap removes exactly the positions
// that do have a black move (any black move is then unanswerable), leaving
// only positions with zero legal black moves.
type denyAllWhiteMoves struct{ scenario.NoLaws }

func (denyAllWhiteMoves) AllowWhiteMove(scenario.State, scenario.State) bool { return false }

func TestTrapConsultsLawsForbiddingAllBlackMoves(t *testing.T) {
	ctx := context.Background()
	s := scenarios.ThreeRooksBound2MB1()
	s.Laws = denyAllBlackMoves{}

	candidates, err := candidateset.Build(ctx, s)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	tr := resources.New(s.Limits)
	result, err := trap.Compute(ctx, s, tr)
	require.NoError(t, err)
	assert.Equal(t, len(candidates), len(result.Trap), "with every black move forbidden by law, no position can fail to hold the trap")
}

func TestTrapConsultsLawsForbiddingAllWhiteMoves(t *testing.T) {
	ctx := context.Background()
	s := scenarios.ThreeRooksBound2MB1()
	s.Laws = denyAllWhiteMoves{}

	candidates, err := candidateset.Build(ctx, s)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	expected := make(map[core.Position]struct{})
	for _, p := range candidates {
		if len(s.Rules.LegalBlackMoves(p)) == 0 {
			expected[p] = struct{}{}
		}
	}
	require.NotEmpty(t, expected, "test fixture must contain a position with zero legal black moves")

	tr := resources.New(s.Limits)
	result, err := trap.Compute(ctx, s, tr)
	require.NoError(t, err)
	assert.Equal(t, expected, result.Trap, "with every white reply forbidden by law, only positions with no black move can survive")
}

func TestThreeRooksTrapSizeMatchesSeedScenario(t *testing.T) {
	ctx := context.Background()
	s := scenarios.ThreeRooksBound2MB1()

	tr := resources.New(s.Limits)
	result, err := trap.Compute(ctx, s, tr)
	require.NoError(t, err)
	assert.Equal(t, 169, len(result.Trap))
}

func TestTrapInvariantEveryBlackReplyHasAWhiteReplyBack(t *testing.T) {
	ctx := context.Background()
	s := scenarios.ThreeRooksBound2MB1()

	tr := resources.New(s.Limits)
	result, err := trap.Compute(ctx, s, tr)
	require.NoError(t, err)
	require.NotEmpty(t, result.Trap)

	for p := range result.Trap {
		for _, afterBlack := range s.Rules.LegalBlackMoves(p) {
			whiteMoves := s.Rules.LegalWhiteMoves(afterBlack, s.WhiteCanPass)
			foundReplyBackInTrap := false
			for _, q := range whiteMoves {
				if result.Contains(q) {
					foundReplyBackInTrap = true
					break
				}
			}
			assert.True(t, foundReplyBackInTrap, "position %v has a black reply with no white reply back into the trap", p)
		}
	}
}

func TestNoWhitePiecesTrapIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := scenarios.NoWhitePieces(3)

	tr := resources.New(s.Limits)
	result, err := trap.Compute(ctx, s, tr)
	require.NoError(t, err)
	assert.Empty(t, result.Trap)
}

func TestSingleRookTrapIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := scenarios.SingleRook()

	tr := resources.New(s.Limits)
	result, err := trap.Compute(ctx, s, tr)
	require.NoError(t, err)
	assert.Empty(t, result.Trap)
}
