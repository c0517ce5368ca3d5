package brackets

import (
	"errors"
	"fmt"
	"math"
)

var ErrNotEnoughTeams = errors.New("not enough teams to generate a single elimination bracket (minimum 2)")

// GenerateSingleElimination builds the full round-by-round pairing structure
// for the given teams. The list is padded with bye slots up to the next power
// of two, then consecutive entries are paired: index 0 vs 1, 2 vs 3, and so
// on. A side paired against a bye advances unmodified.
//
// No results exist at generation time, so when two real teams meet the slot
// with the lower original index (the home side) advances as the provisional
// winner. The rule is arbitrary but deterministic; the output is cosmetic and
// is replaced as real results come in.
func GenerateSingleElimination(teams []Team) (*Bracket, error) {
	n := len(teams)
	if n < 2 {
		return nil, ErrNotEnoughTeams
	}

	totalRounds := int(math.Ceil(math.Log2(float64(n))))
	bracketSize := 1 << uint(totalRounds)

	padded := make([]Team, 0, bracketSize)
	padded = append(padded, teams...)
	for i := n; i < bracketSize; i++ {
		padded = append(padded, Team{
			ID:    fmt.Sprintf("bye-%d", i-n+1),
			Name:  ByeName,
			IsBye: true,
		})
	}

	rounds := make([]Round, 0, totalRounds)
	current := padded

	for r := 0; r < totalRounds; r++ {
		matches := make([]Match, 0, len(current)/2)
		next := make([]Team, 0, len(current)/2)

		for i := 0; i+1 < len(current); i += 2 {
			home := current[i]
			away := current[i+1]

			matches = append(matches, Match{
				ID:       fmt.Sprintf("R%dM%d", r+1, len(matches)+1),
				Round:    r,
				Position: len(matches),
				Home:     home,
				Away:     away,
			})
			next = append(next, provisionalWinner(home, away))
		}

		rounds = append(rounds, Round{Number: r, Matches: matches})
		current = next
	}

	if len(current) != 1 {
		return nil, fmt.Errorf("bracket generation left %d unresolved slots for %d teams", len(current), n)
	}

	bracketTeams := make([]Team, len(teams))
	copy(bracketTeams, teams)

	return &Bracket{
		Teams:       bracketTeams,
		Rounds:      rounds,
		TotalRounds: totalRounds,
	}, nil
}

// provisionalWinner picks the side that advances before any result is known.
// A real team always beats a bye; two byes can meet in deep paddings and the
// surviving slot stays a bye.
func provisionalWinner(home, away Team) Team {
	if home.IsBye && !away.IsBye {
		return away
	}
	return home
}
