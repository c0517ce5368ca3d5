package models

import "time"

type MatchStatus string

const (
	MatchDraft     MatchStatus = "draft"
	MatchScheduled MatchStatus = "scheduled"
	MatchCompleted MatchStatus = "completed"
	MatchCanceled  MatchStatus = "canceled"
)

// Match is one bracket slot pairing. RoundNumber is 1-based from the widest
// round; PositionInRound is the match's 1-based index within its round.
// A bye match has AwayTeamID == nil and IsBye set.
type Match struct {
	ID              int         `json:"id" db:"id"`
	CompetitionID   int         `json:"competition_id" db:"competition_id"`
	RoundNumber     int         `json:"round_number" db:"round_number"`
	PositionInRound int         `json:"position_in_round" db:"position_in_round"`
	HomeTeamID      *int        `json:"home_team_id,omitempty" db:"home_team_id"`
	AwayTeamID      *int        `json:"away_team_id,omitempty" db:"away_team_id"`
	HomeScore       *int        `json:"home_score,omitempty" db:"home_score"`
	AwayScore       *int        `json:"away_score,omitempty" db:"away_score"`
	IsBye           bool        `json:"is_bye" db:"is_bye"`
	Status          MatchStatus `json:"status" db:"status"`
	ScheduledTime   *time.Time  `json:"scheduled_time,omitempty" db:"scheduled_time"`

	HomeTeamName *string `json:"home_team_name,omitempty" db:"-"`
	AwayTeamName *string `json:"away_team_name,omitempty" db:"-"`
}
