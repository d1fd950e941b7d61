package scenarios_test

import (
	"testing"

	"github.com/herohde/ichess/internal/scenario"
	"github.com/herohde/ichess/internal/scenarios"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNBB20FromFile(t *testing.T) {
	s, err := scenarios.NBB20FromFile(scenarios.DefaultNBBDataPath)
	require.NoError(t, err)

	assert.Equal(t, scenario.FromStates, s.Candidates.Kind)
	assert.True(t, s.TrackAbsKing)
	assert.GreaterOrEqual(t, len(s.Candidates.States), 3)
	assert.NoError(t, s.Validate())
}

func TestNBB20FromFileMissingPathIsIoError(t *testing.T) {
	_, err := scenarios.NBB20FromFile("testdata/does_not_exist.txt")
	require.Error(t, err)

	var se *scenario.SearchError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, scenario.IoError, se.Kind)
}

func TestNBB7GeneratedProducesLegalCandidates(t *testing.T) {
	s := scenarios.NBB7Generated()

	assert.Equal(t, scenario.FromStates, s.Candidates.Kind)
	assert.NotEmpty(t, s.Candidates.States)
	require.NoError(t, s.Validate())
}
