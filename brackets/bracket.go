package brackets

// Sentinel slot names accepted everywhere a team label is.
const (
	ByeName = "BYE"
	TBDName = "TBD"
)

// Team is one slot in a bracket. Every team carries a non-empty Name and an
// ID unique within its bracket; bye slots are real entries flagged IsBye.
type Team struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	IsBye bool   `json:"is_bye"`
}

// Match pairs two slots. Round is 0-indexed from the widest round and
// Position is the match's index within its round.
type Match struct {
	ID       string `json:"id"`
	Round    int    `json:"round"`
	Position int    `json:"position"`
	Home     Team   `json:"home"`
	Away     Team   `json:"away"`
}

type Round struct {
	Number  int     `json:"number"`
	Matches []Match `json:"matches"`
}

// Bracket is the full single-elimination pairing structure. It is rebuilt
// from input data on every request and never stored in this shape.
type Bracket struct {
	Teams       []Team  `json:"teams"`
	Rounds      []Round `json:"rounds"`
	TotalRounds int     `json:"total_rounds"`
}

// ApplyOverrides rewrites team labels by exact current-text match. The
// operation is idempotent: once a label has been replaced, the old key no
// longer matches, so a second application is a no-op. Keys that match no
// label are skipped.
func (b *Bracket) ApplyOverrides(overrides map[string]string) {
	if b == nil || len(overrides) == 0 {
		return
	}
	for i := range b.Teams {
		if next, ok := overrides[b.Teams[i].Name]; ok {
			b.Teams[i].Name = next
		}
	}
	for r := range b.Rounds {
		for m := range b.Rounds[r].Matches {
			match := &b.Rounds[r].Matches[m]
			if next, ok := overrides[match.Home.Name]; ok {
				match.Home.Name = next
			}
			if next, ok := overrides[match.Away.Name]; ok {
				match.Away.Name = next
			}
		}
	}
}
