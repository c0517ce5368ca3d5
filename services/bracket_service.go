package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/bracket-hub/brackets"
	"github.com/Dosada05/bracket-hub/cache"
	"github.com/Dosada05/bracket-hub/models"
	"github.com/Dosada05/bracket-hub/repositories"
	"golang.org/x/sync/errgroup"
)

// BracketView is the assembled, display-ready state of one competition's
// bracket. Bracket is nil when fewer than two teams are enrolled; the
// renderer turns that into the "not enough teams" placeholder.
type BracketView struct {
	Competition *models.Competition `json:"competition"`
	Bracket     *brackets.Bracket   `json:"bracket"`
	Overrides   models.OverrideMap  `json:"overrides"`
	FromMatches bool                `json:"from_matches"`
}

type BracketService interface {
	GetBracket(ctx context.Context, competitionID int) (*BracketView, error)
	RenderBracketHTML(ctx context.Context, competitionID int) (string, error)
	GenerateMatches(ctx context.Context, competitionID int) (int, error)
	SaveSeeding(ctx context.Context, competitionID int, orderedIDs []int) (int, error)
	ResetBracket(ctx context.Context, competitionID int) error
}

type bracketService struct {
	db              *sql.DB
	competitionRepo repositories.CompetitionRepository
	teamRepo        repositories.TeamRepository
	matchRepo       repositories.MatchRepository
	overrideRepo    repositories.OverrideRepository
	seedingCache    cache.SeedingCache
	notifier        Notifier
	logger          *slog.Logger
}

func NewBracketService(
	db *sql.DB,
	competitionRepo repositories.CompetitionRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	overrideRepo repositories.OverrideRepository,
	seedingCache cache.SeedingCache,
	notifier Notifier,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		db:              db,
		competitionRepo: competitionRepo,
		teamRepo:        teamRepo,
		matchRepo:       matchRepo,
		overrideRepo:    overrideRepo,
		seedingCache:    seedingCache,
		notifier:        notifier,
		logger:          logger,
	}
}

// GetBracket loads everything a bracket page needs in parallel, builds the
// pairing structure (from stored matches when the schedule exists, otherwise
// a draft from the enrolled teams) and applies the display overrides last.
func (s *bracketService) GetBracket(ctx context.Context, competitionID int) (*BracketView, error) {
	var (
		competition *models.Competition
		teams       []models.Team
		matches     []models.Match
		overrides   []models.Override
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := s.competitionRepo.GetByID(gCtx, competitionID)
		if err != nil {
			if errors.Is(err, repositories.ErrCompetitionNotFound) {
				return ErrCompetitionNotFound
			}
			return fmt.Errorf("failed to load competition %d: %w", competitionID, err)
		}
		competition = c
		return nil
	})

	g.Go(func() error {
		list, err := s.teamRepo.ListByCompetition(gCtx, competitionID)
		if err != nil {
			return fmt.Errorf("failed to load teams for competition %d: %w", competitionID, err)
		}
		teams = list
		return nil
	})

	g.Go(func() error {
		list, err := s.matchRepo.ListByCompetition(gCtx, competitionID)
		if err != nil {
			return fmt.Errorf("failed to load matches for competition %d: %w", competitionID, err)
		}
		matches = list
		return nil
	})

	g.Go(func() error {
		list, err := s.overrideRepo.ListByCompetition(gCtx, competitionID)
		if err != nil {
			return fmt.Errorf("failed to load overrides for competition %d: %w", competitionID, err)
		}
		overrides = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &BracketView{
		Competition: competition,
		Overrides:   overrideMap(overrides),
	}

	if len(matches) > 0 {
		view.Bracket = bracketFromMatches(matches)
		view.FromMatches = true
	} else {
		bracket, err := brackets.GenerateSingleElimination(bracketTeams(teams))
		if err != nil {
			if errors.Is(err, brackets.ErrNotEnoughTeams) {
				return view, nil // nil Bracket, renderer shows the placeholder
			}
			return nil, err
		}
		view.Bracket = bracket
	}

	view.Bracket.ApplyOverrides(view.Overrides)
	return view, nil
}

func (s *bracketService) RenderBracketHTML(ctx context.Context, competitionID int) (string, error) {
	view, err := s.GetBracket(ctx, competitionID)
	if err != nil {
		return "", err
	}
	return brackets.RenderHTML(view.Bracket)
}

// GenerateMatches wipes any stored schedule and persists a fresh single
// elimination structure. The first round pairs the enrolled teams in seeding
// order (cached order first when one exists); later rounds are created as
// empty placeholder slots that fill in as results come in.
func (s *bracketService) GenerateMatches(ctx context.Context, competitionID int) (int, error) {
	if _, err := s.competitionRepo.GetByID(ctx, competitionID); err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return 0, ErrCompetitionNotFound
		}
		return 0, err
	}

	teams, err := s.teamRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return 0, fmt.Errorf("failed to load teams for competition %d: %w", competitionID, err)
	}
	ordered := s.applyCachedSeeding(ctx, competitionID, teams)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	count, err := s.regenerateMatches(ctx, tx, competitionID, ordered)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit generated matches: %w", err)
	}

	s.notifier.Notify(competitionID, brackets.EventBracketUpdated, map[string]interface{}{
		"competition_id": competitionID,
		"match_count":    count,
	})
	return count, nil
}

// SaveSeeding validates the admin-chosen order, persists it (cache plus seed
// column) and regenerates the schedule from it in one transaction.
func (s *bracketService) SaveSeeding(ctx context.Context, competitionID int, orderedIDs []int) (int, error) {
	if len(orderedIDs) == 0 {
		return 0, ErrEmptySeedingOrder
	}

	if _, err := s.competitionRepo.GetByID(ctx, competitionID); err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return 0, ErrCompetitionNotFound
		}
		return 0, err
	}

	teams, err := s.teamRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return 0, fmt.Errorf("failed to load teams for competition %d: %w", competitionID, err)
	}

	byID := make(map[int]models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	ordered := make([]models.Team, 0, len(orderedIDs))
	seen := make(map[int]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		team, ok := byID[id]
		if !ok || seen[id] {
			return 0, ErrInvalidSeedingOrder
		}
		seen[id] = true
		ordered = append(ordered, team)
	}
	// Teams the admin left out keep their relative order after the seeded ones.
	for _, t := range teams {
		if !seen[t.ID] {
			ordered = append(ordered, t)
		}
	}

	// The cache is an accelerator here, not the durable record; the seed
	// column below is. A dead cache only costs a warning.
	if err := s.seedingCache.SaveOrder(ctx, competitionID, orderedIDs); err != nil {
		s.logger.Warn("failed to cache seeding order",
			slog.Int("competition_id", competitionID), slog.Any("error", err))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderedTeamIDs := make([]int, len(ordered))
	for i, t := range ordered {
		orderedTeamIDs[i] = t.ID
	}
	if err := s.teamRepo.UpdateSeeds(ctx, tx, competitionID, orderedTeamIDs); err != nil {
		return 0, fmt.Errorf("failed to persist seeds for competition %d: %w", competitionID, err)
	}

	count, err := s.regenerateMatches(ctx, tx, competitionID, ordered)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seeding for competition %d: %w", competitionID, err)
	}

	s.notifier.Notify(competitionID, brackets.EventSeedingSaved, map[string]interface{}{
		"competition_id": competitionID,
		"match_count":    count,
	})
	return count, nil
}

// ResetBracket deletes the stored schedule and the display-name overrides so
// the competition starts clean for reseeding.
func (s *bracketService) ResetBracket(ctx context.Context, competitionID int) error {
	if _, err := s.competitionRepo.GetByID(ctx, competitionID); err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return ErrCompetitionNotFound
		}
		return err
	}

	deleted, err := s.matchRepo.DeleteByCompetition(ctx, nil, competitionID)
	if err != nil {
		return fmt.Errorf("failed to delete matches for competition %d: %w", competitionID, err)
	}
	if err := s.overrideRepo.DeleteByCompetition(ctx, nil, competitionID); err != nil {
		return fmt.Errorf("failed to delete overrides for competition %d: %w", competitionID, err)
	}

	if err := s.seedingCache.ClearOrder(ctx, competitionID); err != nil {
		s.logger.Warn("failed to clear cached seeding order",
			slog.Int("competition_id", competitionID), slog.Any("error", err))
	}

	s.logger.Info("bracket reset", slog.Int("competition_id", competitionID), slog.Int("deleted_matches", deleted))
	s.notifier.Notify(competitionID, brackets.EventBracketUpdated, map[string]interface{}{
		"competition_id": competitionID,
		"match_count":    0,
	})
	return nil
}

// regenerateMatches replaces the stored schedule inside the caller's
// transaction. Rounds are sized by halving the padded team count; slots whose
// participants are unknown are stored with nil team references.
func (s *bracketService) regenerateMatches(ctx context.Context, tx repositories.SQLExecutor, competitionID int, ordered []models.Team) (int, error) {
	if len(ordered) < 2 {
		return 0, ErrNotEnoughTeams
	}

	deleted, err := s.matchRepo.DeleteByCompetition(ctx, tx, competitionID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear existing matches for competition %d: %w", competitionID, err)
	}
	if deleted > 0 {
		s.logger.Info("cleared existing matches",
			slog.Int("competition_id", competitionID), slog.Int("deleted", deleted))
	}

	structure, err := brackets.GenerateSingleElimination(bracketTeams(ordered))
	if err != nil {
		return 0, err
	}

	byBracketID := make(map[string]int, len(ordered))
	for i, t := range ordered {
		byBracketID[structure.Teams[i].ID] = t.ID
	}

	created := 0
	for _, round := range structure.Rounds {
		for _, m := range round.Matches {
			homeID, homeReal := byBracketID[m.Home.ID]
			awayID, awayReal := byBracketID[m.Away.ID]
			if round.Number > 0 {
				// Provisional winners are cosmetic; stored slots beyond the
				// first round stay open until real results decide them.
				homeReal, awayReal = false, false
			}
			if round.Number == 0 && !homeReal && !awayReal {
				continue // two padding byes meeting, nothing to play
			}

			match := &models.Match{
				CompetitionID:   competitionID,
				RoundNumber:     round.Number + 1,
				PositionInRound: m.Position + 1,
				Status:          models.MatchDraft,
				IsBye:           round.Number == 0 && (homeReal != awayReal),
			}
			if homeReal {
				id := homeID
				match.HomeTeamID = &id
			}
			if awayReal {
				id := awayID
				match.AwayTeamID = &id
			}

			if err := s.matchRepo.Create(ctx, tx, match); err != nil {
				return 0, fmt.Errorf("failed to create match R%dM%d: %w", match.RoundNumber, match.PositionInRound, err)
			}
			created++
		}
	}
	return created, nil
}

// applyCachedSeeding reorders the enrolled teams by the cached admin order
// when one exists. Cache misses and errors both fall back to enrolled order.
func (s *bracketService) applyCachedSeeding(ctx context.Context, competitionID int, teams []models.Team) []models.Team {
	ids, err := s.seedingCache.GetOrder(ctx, competitionID)
	if err != nil {
		if !errors.Is(err, cache.ErrNoOrder) {
			s.logger.Warn("failed to read cached seeding order",
				slog.Int("competition_id", competitionID), slog.Any("error", err))
		}
		return teams
	}

	byID := make(map[int]models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	ordered := make([]models.Team, 0, len(teams))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok && !seen[id] {
			ordered = append(ordered, t)
			seen[id] = true
		}
	}
	for _, t := range teams {
		if !seen[t.ID] {
			ordered = append(ordered, t)
		}
	}
	return ordered
}

func bracketTeams(teams []models.Team) []brackets.Team {
	out := make([]brackets.Team, len(teams))
	for i, t := range teams {
		out[i] = brackets.Team{
			ID:   fmt.Sprintf("team-%d", t.ID),
			Name: t.Name,
		}
	}
	return out
}

func overrideMap(overrides []models.Override) models.OverrideMap {
	m := make(models.OverrideMap, len(overrides))
	for _, o := range overrides {
		m[o.OldName] = o.NewName
	}
	return m
}

// bracketFromMatches rebuilds the display structure from stored rows. Open
// slots get descriptive TBD names near the final, matching what admins are
// used to seeing; bye slots stay in the tree flagged for de-emphasis.
func bracketFromMatches(matches []models.Match) *brackets.Bracket {
	totalRounds := 0
	for _, m := range matches {
		if m.RoundNumber > totalRounds {
			totalRounds = m.RoundNumber
		}
	}

	byRound := make(map[int][]models.Match, totalRounds)
	for _, m := range matches {
		byRound[m.RoundNumber] = append(byRound[m.RoundNumber], m)
	}

	seen := make(map[string]bool)
	rounds := make([]brackets.Round, 0, totalRounds)
	var teams []brackets.Team

	for r := 1; r <= totalRounds; r++ {
		round := brackets.Round{Number: r - 1}
		for _, m := range byRound[r] {
			home := slotTeam(m.HomeTeamID, m.HomeTeamName, m, totalRounds, "home")
			away := slotTeam(m.AwayTeamID, m.AwayTeamName, m, totalRounds, "away")
			if m.IsBye && m.AwayTeamID == nil {
				away = brackets.Team{ID: fmt.Sprintf("bye-r%dm%d", m.RoundNumber, m.PositionInRound), Name: brackets.ByeName, IsBye: true}
			}

			round.Matches = append(round.Matches, brackets.Match{
				ID:       fmt.Sprintf("R%dM%d", m.RoundNumber, m.PositionInRound),
				Round:    r - 1,
				Position: m.PositionInRound - 1,
				Home:     home,
				Away:     away,
			})

			for _, t := range []brackets.Team{home, away} {
				if !t.IsBye && !strings.HasPrefix(t.ID, "tbd-") && !seen[t.ID] {
					seen[t.ID] = true
					teams = append(teams, t)
				}
			}
		}
		rounds = append(rounds, round)
	}

	return &brackets.Bracket{
		Teams:       teams,
		Rounds:      rounds,
		TotalRounds: totalRounds,
	}
}

func slotTeam(teamID *int, teamName *string, m models.Match, totalRounds int, side string) brackets.Team {
	if teamID != nil && teamName != nil {
		return brackets.Team{ID: fmt.Sprintf("team-%d", *teamID), Name: *teamName}
	}
	return brackets.Team{
		ID:   fmt.Sprintf("tbd-r%dm%d-%s", m.RoundNumber, m.PositionInRound, side),
		Name: tbdName(m.RoundNumber, totalRounds),
	}
}

// tbdName labels open slots by how close their round is to the final.
func tbdName(roundNumber, totalRounds int) string {
	switch totalRounds - roundNumber {
	case 0:
		return "TBD Final"
	case 1:
		return "TBD Semifinal"
	case 2:
		return "TBD Quarterfinal"
	default:
		return brackets.TBDName
	}
}
