package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/bracket-hub/models"
)

var ErrCompetitionNotFound = errors.New("competition not found")

type ListCompetitionsFilter struct {
	Status *models.CompetitionStatus
	Limit  int
	Offset int
}

type CompetitionRepository interface {
	GetByID(ctx context.Context, id int) (*models.Competition, error)
	List(ctx context.Context, filter ListCompetitionsFilter) ([]models.Competition, error)
}

type postgresCompetitionRepository struct {
	db *sql.DB
}

func NewPostgresCompetitionRepository(db *sql.DB) CompetitionRepository {
	return &postgresCompetitionRepository{db: db}
}

func (r *postgresCompetitionRepository) GetByID(ctx context.Context, id int) (*models.Competition, error) {
	query := `
		SELECT id, name, description, status, participant_type, start_date, end_date, created_at
		FROM competitions
		WHERE id = $1`

	c := &models.Competition{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.Status, &c.ParticipantType,
		&c.StartDate, &c.EndDate, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitionNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresCompetitionRepository) List(ctx context.Context, filter ListCompetitionsFilter) ([]models.Competition, error) {
	query := `
		SELECT id, name, description, status, participant_type, start_date, end_date, created_at
		FROM competitions
		WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	competitions := []models.Competition{}
	for rows.Next() {
		var c models.Competition
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Status, &c.ParticipantType,
			&c.StartDate, &c.EndDate, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		competitions = append(competitions, c)
	}
	return competitions, rows.Err()
}
