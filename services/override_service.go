package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Dosada05/bracket-hub/brackets"
	"github.com/Dosada05/bracket-hub/models"
	"github.com/Dosada05/bracket-hub/repositories"
)

type TeamChangeInput struct {
	CompetitionID int    `json:"competition_id"`
	OldTeamName   string `json:"old_team_name"`
	NewTeamName   string `json:"new_team_name"`
	ChangeType    string `json:"change_type"`
}

type OverrideService interface {
	// ApplyTeamChange records a label substitution for a competition's
	// bracket. The write is local-first: once the override row is committed
	// the change stands, regardless of whether the live fan-out reaches
	// anyone.
	ApplyTeamChange(ctx context.Context, input TeamChangeInput) (*models.Override, error)
	ListOverrides(ctx context.Context, competitionID int) (models.OverrideMap, error)
}

type overrideService struct {
	competitionRepo repositories.CompetitionRepository
	teamRepo        repositories.TeamRepository
	overrideRepo    repositories.OverrideRepository
	notifier        Notifier
	logger          *slog.Logger
}

func NewOverrideService(
	competitionRepo repositories.CompetitionRepository,
	teamRepo repositories.TeamRepository,
	overrideRepo repositories.OverrideRepository,
	notifier Notifier,
	logger *slog.Logger,
) OverrideService {
	return &overrideService{
		competitionRepo: competitionRepo,
		teamRepo:        teamRepo,
		overrideRepo:    overrideRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

func (s *overrideService) ApplyTeamChange(ctx context.Context, input TeamChangeInput) (*models.Override, error) {
	oldName := strings.TrimSpace(input.OldTeamName)
	newName := strings.TrimSpace(input.NewTeamName)
	if oldName == "" || newName == "" {
		return nil, ErrOverrideNamesRequired
	}

	if _, err := s.competitionRepo.GetByID(ctx, input.CompetitionID); err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, err
	}

	// BYE and TBD are placeholder slots, not teams; anything else must name
	// a team enrolled in this competition.
	if newName != brackets.ByeName && newName != brackets.TBDName {
		teams, err := s.teamRepo.ListByCompetition(ctx, input.CompetitionID)
		if err != nil {
			return nil, err
		}
		enrolled := false
		for _, t := range teams {
			if t.Name == newName {
				enrolled = true
				break
			}
		}
		if !enrolled {
			return nil, ErrTeamNotEnrolled
		}
	}

	override := &models.Override{
		CompetitionID: input.CompetitionID,
		OldName:       oldName,
		NewName:       newName,
		ChangeType:    input.ChangeType,
	}
	if err := s.overrideRepo.Upsert(ctx, override); err != nil {
		return nil, err
	}

	s.logger.Info("bracket team override saved",
		slog.Int("competition_id", input.CompetitionID),
		slog.String("old_name", oldName),
		slog.String("new_name", newName),
	)

	s.notifier.Notify(input.CompetitionID, brackets.EventTeamReplaced, override)
	return override, nil
}

func (s *overrideService) ListOverrides(ctx context.Context, competitionID int) (models.OverrideMap, error) {
	overrides, err := s.overrideRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	return overrideMap(overrides), nil
}
