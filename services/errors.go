package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	ErrNotFound            = errors.New("requested resource not found")
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrTeamNotFound        = errors.New("team not found")

	ErrNotEnoughTeams = errors.New("not enough enrolled teams (minimum 2 required)")

	// Seeding
	ErrEmptySeedingOrder   = errors.New("no seeding order provided")
	ErrInvalidSeedingOrder = errors.New("seeding order contains a team that is not enrolled in this competition")

	// Overrides
	ErrOverrideNamesRequired = errors.New("old and new team names are required")
	ErrTeamNotEnrolled       = errors.New("team is not enrolled in this competition")

	// Logo uploads
	ErrUploadsDisabled        = errors.New("file uploads are not configured")
	ErrUnsupportedContentType = errors.New("unsupported logo content type")
)
