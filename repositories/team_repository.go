package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/bracket-hub/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	GetByID(ctx context.Context, id int) (*models.Team, error)
	// ListByCompetition returns enrolled teams ordered by their saved seed,
	// falling back to name order for teams without one.
	ListByCompetition(ctx context.Context, competitionID int) ([]models.Team, error)
	UpdateSeeds(ctx context.Context, exec SQLExecutor, competitionID int, orderedTeamIDs []int) error
	UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, name, logo_key, created_at FROM teams WHERE id = $1`

	t := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.LogoKey, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) ListByCompetition(ctx context.Context, competitionID int) ([]models.Team, error) {
	query := `
		SELECT t.id, t.name, t.logo_key, t.created_at, ct.seed
		FROM teams t
		JOIN competition_teams ct ON ct.team_id = t.id
		WHERE ct.competition_id = $1
		ORDER BY ct.seed NULLS LAST, t.name`

	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.LogoKey, &t.CreatedAt, &t.Seed); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) UpdateSeeds(ctx context.Context, exec SQLExecutor, competitionID int, orderedTeamIDs []int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE competition_teams SET seed = $1 WHERE competition_id = $2 AND team_id = $3`

	for i, teamID := range orderedTeamIDs {
		result, err := executor.ExecContext(ctx, query, i+1, competitionID, teamID)
		if err != nil {
			return err
		}
		if err := checkAffectedRows(result, ErrTeamNotFound); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	query := `UPDATE teams SET logo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
