package forcedmate_test

import (
	"context"
	"testing"

	"github.com/herohde/ichess/internal/core"
	"github.com/herohde/ichess/internal/forcedmate"
	"github.com/herohde/ichess/internal/resources"
	"github.com/herohde/ichess/internal/scenarios"
	"github.com/herohde/ichess/internal/trap"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForcedMateWinningRegionIsSubsetOfTrapWhenAnchored(t *testing.T) {
	ctx := context.Background()
	s := scenarios.TwoQueensBound2AbsBox()

	tracker := resources.New(s.Limits)
	result, err := forcedmate.Compute(ctx, s, false, lang.Optional[uint32]{}, tracker)
	require.NoError(t, err)
	require.NotEmpty(t, result.Winning)

	trapTracker := resources.New(s.Limits)
	trapResult, err := trap.Compute(ctx, s, trapTracker)
	require.NoError(t, err)

	for st := range result.Winning {
		assert.True(t, trapResult.Contains(st.Pos), "forced-mate winning state must also be a safety-trap member")
	}
}

func TestForcedMateSymmetricStartIsMateWinning(t *testing.T) {
	ctx := context.Background()
	s := scenarios.TwoQueensBound2AbsBox()

	tracker := resources.New(s.Limits)
	result, err := forcedmate.Compute(ctx, s, false, lang.Optional[uint32]{}, tracker)
	require.NoError(t, err)
	assert.Equal(t, 4572, len(result.Winning), "reachability-to-mate count")

	assert.True(t, result.Contains(s.Start.State), "the seed scenario's symmetric start state must be mate-winning")
}

func TestForcedMateRejectsNonAbsBoxCandidates(t *testing.T) {
	ctx := context.Background()
	s := scenarios.ThreeRooksBound2MB1()

	tracker := resources.New(s.Limits)
	_, err := forcedmate.Compute(ctx, s, false, lang.Optional[uint32]{}, tracker)
	require.Error(t, err)
}

func TestForcedMateDTMZeroNodesAreInCheck(t *testing.T) {
	ctx := context.Background()
	s := scenarios.TwoQueensBound2AbsBox()

	tracker := resources.New(s.Limits)
	result, err := forcedmate.Compute(ctx, s, true, lang.Optional[uint32]{}, tracker)
	require.NoError(t, err)
	require.NotNil(t, result.DTM)

	for st, d := range result.DTM {
		if d == 0 {
			assert.True(t, s.Rules.IsAttacked(core.Origin, st.Pos), "a depth-0 DTM node must be in check")
		}
	}
}
