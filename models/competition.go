package models

import "time"

type CompetitionStatus string

const (
	StatusRegistration CompetitionStatus = "registration"
	StatusActive       CompetitionStatus = "active"
	StatusCompleted    CompetitionStatus = "completed"
	StatusCanceled     CompetitionStatus = "canceled"
)

type ParticipantType string

const (
	ParticipantSolo ParticipantType = "solo"
	ParticipantTeam ParticipantType = "team"
)

type Competition struct {
	ID              int               `json:"id" db:"id"`
	Name            string            `json:"name" db:"name"`
	Description     *string           `json:"description,omitempty" db:"description"`
	Status          CompetitionStatus `json:"status" db:"status"`
	ParticipantType ParticipantType   `json:"participant_type" db:"participant_type"`
	StartDate       *time.Time        `json:"start_date,omitempty" db:"start_date"`
	EndDate         *time.Time        `json:"end_date,omitempty" db:"end_date"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`

	// Populated on demand, never by the base queries.
	Teams   []Team  `json:"teams,omitempty" db:"-"`
	Matches []Match `json:"matches,omitempty" db:"-"`
}
