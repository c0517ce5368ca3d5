package brackets

import "fmt"

// Ordered by distance from the final: index 0 labels the last round.
var roundLabels = []string{
	"Finals",
	"Semifinals",
	"Quarterfinals",
	"Round of 16",
	"Round of 32",
	"Round of 64",
	"Round of 128",
	"First Round",
}

// RoundLabel returns the display label for a 0-indexed round in a bracket
// with the given number of rounds. Rounds deeper than the known list fall
// back to a numbered label.
func RoundLabel(totalRounds, roundIndex int) string {
	idx := totalRounds - 1 - roundIndex
	if idx < 0 || idx >= len(roundLabels) {
		return fmt.Sprintf("Round %d", roundIndex+1)
	}
	return roundLabels[idx]
}
