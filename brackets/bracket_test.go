package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOverrides_ReplacesEveryOccurrence(t *testing.T) {
	b, err := GenerateSingleElimination(namedTeams("A", "B", "C", "D"))
	require.NoError(t, err)

	b.ApplyOverrides(map[string]string{"A": "Alpha"})

	assert.Equal(t, "Alpha", b.Teams[0].Name)
	assert.Equal(t, "Alpha", b.Rounds[0].Matches[0].Home.Name)
	// A advanced to the final as the provisional winner; that slot renames too.
	assert.Equal(t, "Alpha", b.Rounds[1].Matches[0].Home.Name)
	assert.Equal(t, "B", b.Rounds[0].Matches[0].Away.Name)
}

func TestApplyOverrides_Idempotent(t *testing.T) {
	b, err := GenerateSingleElimination(namedTeams("A", "B"))
	require.NoError(t, err)

	overrides := map[string]string{"A": "Alpha"}
	b.ApplyOverrides(overrides)
	b.ApplyOverrides(overrides)

	assert.Equal(t, "Alpha", b.Rounds[0].Matches[0].Home.Name)
}

func TestApplyOverrides_UnmatchedKeysIgnored(t *testing.T) {
	b, err := GenerateSingleElimination(namedTeams("A", "B"))
	require.NoError(t, err)

	b.ApplyOverrides(map[string]string{"Nobody": "Somebody"})

	assert.Equal(t, "A", b.Rounds[0].Matches[0].Home.Name)
	assert.Equal(t, "B", b.Rounds[0].Matches[0].Away.Name)
}

func TestApplyOverrides_NilReceiverAndEmptyMap(t *testing.T) {
	var b *Bracket
	assert.NotPanics(t, func() { b.ApplyOverrides(map[string]string{"A": "B"}) })

	generated, err := GenerateSingleElimination(namedTeams("A", "B"))
	require.NoError(t, err)
	generated.ApplyOverrides(nil)
	assert.Equal(t, "A", generated.Teams[0].Name)
}
