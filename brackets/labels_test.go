package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundLabel_ThreeRounds(t *testing.T) {
	assert.Equal(t, "Quarterfinals", RoundLabel(3, 0))
	assert.Equal(t, "Semifinals", RoundLabel(3, 1))
	assert.Equal(t, "Finals", RoundLabel(3, 2))
}

func TestRoundLabel_SingleRound(t *testing.T) {
	assert.Equal(t, "Finals", RoundLabel(1, 0))
}

func TestRoundLabel_DeepBracketFallsBack(t *testing.T) {
	// A 512-team bracket has 9 rounds; the widest ones have no named label.
	assert.Equal(t, "Round 1", RoundLabel(9, 0))
	assert.Equal(t, "Finals", RoundLabel(9, 8))
}
