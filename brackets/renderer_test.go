package brackets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML_LabelsAndStructure(t *testing.T) {
	b, err := GenerateSingleElimination(namedTeams("A", "B", "C", "D"))
	require.NoError(t, err)

	markup, err := RenderHTML(b)
	require.NoError(t, err)

	assert.Contains(t, markup, `<div class="bracket">`)
	assert.Contains(t, markup, "Semifinals")
	assert.Contains(t, markup, "Finals")
	assert.Equal(t, 2, strings.Count(markup, `class="bracket-round"`))
	assert.Equal(t, 3, strings.Count(markup, `class="bracket-match"`))
	assert.Contains(t, markup, `data-match="R1M1"`)
	assert.Contains(t, markup, `data-team="team-1"`)
}

func TestRenderHTML_ByeSlotsCarryClass(t *testing.T) {
	b, err := GenerateSingleElimination(namedTeams("A", "B", "C"))
	require.NoError(t, err)

	markup, err := RenderHTML(b)
	require.NoError(t, err)

	assert.Contains(t, markup, "bracket-team--bye")
	assert.Contains(t, markup, ">BYE<")
}

func TestRenderHTML_EscapesTeamNames(t *testing.T) {
	b, err := GenerateSingleElimination(namedTeams("<script>alert(1)</script>", "B"))
	require.NoError(t, err)

	markup, err := RenderHTML(b)
	require.NoError(t, err)

	assert.NotContains(t, markup, "<script>")
	assert.Contains(t, markup, "&lt;script&gt;")
}

func TestRenderHTML_NilBracketGetsPlaceholder(t *testing.T) {
	markup, err := RenderHTML(nil)
	require.NoError(t, err)
	assert.Contains(t, markup, "Not enough teams to display a bracket.")
	assert.Contains(t, markup, "bracket--empty")
}

func TestRenderHTML_Deterministic(t *testing.T) {
	b, err := GenerateSingleElimination(namedTeams("A", "B", "C", "D"))
	require.NoError(t, err)

	first, err := RenderHTML(b)
	require.NoError(t, err)
	second, err := RenderHTML(b)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
