package scenarioconfig_test

import (
	"testing"

	"github.com/herohde/ichess/internal/scenario"
	"github.com/herohde/ichess/internal/scenarioconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuildsAValidScenario(t *testing.T) {
	scenarios, err := scenarioconfig.Load("testdata/scenarios.toml")
	require.NoError(t, err)
	require.Contains(t, scenarios, "custom_single_rook")

	s := scenarios["custom_single_rook"]
	assert.Equal(t, "custom_single_rook", s.Name)
	assert.Equal(t, int32(7), s.Rules.MoveBound)
	assert.True(t, s.WhiteCanPass)
	assert.False(t, s.TrackAbsKing)
	assert.Equal(t, scenario.CacheBlackOnly, s.CacheMode)
	assert.Equal(t, scenario.InLinfBound, s.Candidates.Kind)
	assert.Equal(t, int32(3), s.Candidates.Bound)

	require.NoError(t, s.Validate())
}

func TestLoadRejectsUnknownCandidatesMode(t *testing.T) {
	_, err := scenarioconfig.Load("testdata/bad_candidates.toml")
	require.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := scenarioconfig.Load("testdata/does_not_exist.toml")
	require.Error(t, err)
}
