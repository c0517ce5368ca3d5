package models

import "time"

// Override is one display-label substitution for a competition's bracket,
// keyed by (competition, old name). It rewrites labels at render time and
// never touches enrollment or match rows.
type Override struct {
	ID            int       `json:"id" db:"id"`
	CompetitionID int       `json:"competition_id" db:"competition_id"`
	OldName       string    `json:"old_team_name" db:"old_name"`
	NewName       string    `json:"new_team_name" db:"new_name"`
	ChangeType    string    `json:"change_type" db:"change_type"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// OverrideMap is the old-name to new-name lookup applied to a bracket.
type OverrideMap map[string]string
