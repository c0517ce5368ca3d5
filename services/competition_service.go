package services

import (
	"context"
	"errors"

	"github.com/Dosada05/bracket-hub/models"
	"github.com/Dosada05/bracket-hub/repositories"
)

type CompetitionService interface {
	GetCompetition(ctx context.Context, id int) (*models.Competition, error)
	ListCompetitions(ctx context.Context, filter repositories.ListCompetitionsFilter) ([]models.Competition, error)
}

type competitionService struct {
	competitionRepo repositories.CompetitionRepository
}

func NewCompetitionService(competitionRepo repositories.CompetitionRepository) CompetitionService {
	return &competitionService{competitionRepo: competitionRepo}
}

func (s *competitionService) GetCompetition(ctx context.Context, id int) (*models.Competition, error) {
	competition, err := s.competitionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, err
	}
	return competition, nil
}

func (s *competitionService) ListCompetitions(ctx context.Context, filter repositories.ListCompetitionsFilter) ([]models.Competition, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return s.competitionRepo.List(ctx, filter)
}
