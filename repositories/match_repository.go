package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/bracket-hub/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	// ListByCompetition returns matches ordered by round and position, with
	// team names resolved for display.
	ListByCompetition(ctx context.Context, competitionID int) ([]models.Match, error)
	DeleteByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) (int, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (
			competition_id, round_number, position_in_round,
			home_team_id, away_team_id, is_bye, status, scheduled_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	return executor.QueryRowContext(ctx, query,
		m.CompetitionID, m.RoundNumber, m.PositionInRound,
		m.HomeTeamID, m.AwayTeamID, m.IsBye, m.Status, m.ScheduledTime,
	).Scan(&m.ID)
}

func (r *postgresMatchRepository) ListByCompetition(ctx context.Context, competitionID int) ([]models.Match, error) {
	query := `
		SELECT
			m.id, m.competition_id, m.round_number, m.position_in_round,
			m.home_team_id, m.away_team_id, m.home_score, m.away_score,
			m.is_bye, m.status, m.scheduled_time,
			ht.name, at.name
		FROM matches m
		LEFT JOIN teams ht ON ht.id = m.home_team_id
		LEFT JOIN teams at ON at.id = m.away_team_id
		WHERE m.competition_id = $1
		ORDER BY m.round_number, m.position_in_round`

	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []models.Match{}
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.ID, &m.CompetitionID, &m.RoundNumber, &m.PositionInRound,
			&m.HomeTeamID, &m.AwayTeamID, &m.HomeScore, &m.AwayScore,
			&m.IsBye, &m.Status, &m.ScheduledTime,
			&m.HomeTeamName, &m.AwayTeamName,
		); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) DeleteByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) (int, error) {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM matches WHERE competition_id = $1`, competitionID)
	if err != nil {
		return 0, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}
