package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTeams_MixedShapes(t *testing.T) {
	payload := []byte(`[
		"Plain String FC",
		{"name": "Object Name"},
		{"team_name": "Legacy Field"},
		{"id": 42, "name": "Numbered"},
		{"id": "custom-id", "name": "Custom ID"},
		["Positional", "extra"]
	]`)

	teams, err := ParseTeams(payload)
	require.NoError(t, err)
	require.Len(t, teams, 6)

	assert.Equal(t, "Plain String FC", teams[0].Name)
	assert.Equal(t, "team-1", teams[0].ID)

	assert.Equal(t, "Object Name", teams[1].Name)
	assert.Equal(t, "Legacy Field", teams[2].Name)

	assert.Equal(t, "Numbered", teams[3].Name)
	assert.Equal(t, "team-42", teams[3].ID)

	assert.Equal(t, "Custom ID", teams[4].Name)
	assert.Equal(t, "custom-id", teams[4].ID)

	assert.Equal(t, "Positional", teams[5].Name)
}

func TestParseTeams_EmptyEntriesGetPlaceholders(t *testing.T) {
	teams, err := ParseTeams([]byte(`["", {}, null]`))
	require.NoError(t, err)
	require.Len(t, teams, 3)

	assert.Equal(t, "Team 1", teams[0].Name)
	assert.Equal(t, "Team 2", teams[1].Name)
	assert.Equal(t, "Team 3", teams[2].Name)
}

func TestParseTeams_ByeSentinelFlagged(t *testing.T) {
	teams, err := ParseTeams([]byte(`["Real FC", "BYE"]`))
	require.NoError(t, err)

	assert.False(t, teams[0].IsBye)
	assert.True(t, teams[1].IsBye)
}

func TestParseTeams_NotAnArray(t *testing.T) {
	_, err := ParseTeams([]byte(`{"teams": []}`))
	assert.Error(t, err)
}

func TestParseTeams_TrimsWhitespace(t *testing.T) {
	teams, err := ParseTeams([]byte(`["  Spaced FC  "]`))
	require.NoError(t, err)
	assert.Equal(t, "Spaced FC", teams[0].Name)
}
