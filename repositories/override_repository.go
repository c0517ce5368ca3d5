package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/bracket-hub/models"
)

type OverrideRepository interface {
	// Upsert inserts or replaces the override for (competition, old name).
	// Saving the same key twice keeps one row, which is what makes
	// re-applying the map to a bracket a no-op.
	Upsert(ctx context.Context, o *models.Override) error
	ListByCompetition(ctx context.Context, competitionID int) ([]models.Override, error)
	DeleteByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) error
}

type postgresOverrideRepository struct {
	db *sql.DB
}

func NewPostgresOverrideRepository(db *sql.DB) OverrideRepository {
	return &postgresOverrideRepository{db: db}
}

func (r *postgresOverrideRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresOverrideRepository) Upsert(ctx context.Context, o *models.Override) error {
	query := `
		INSERT INTO bracket_overrides (competition_id, old_name, new_name, change_type, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (competition_id, old_name)
		DO UPDATE SET new_name = EXCLUDED.new_name, change_type = EXCLUDED.change_type, updated_at = NOW()
		RETURNING id, updated_at`

	return r.db.QueryRowContext(ctx, query,
		o.CompetitionID, o.OldName, o.NewName, o.ChangeType,
	).Scan(&o.ID, &o.UpdatedAt)
}

func (r *postgresOverrideRepository) ListByCompetition(ctx context.Context, competitionID int) ([]models.Override, error) {
	query := `
		SELECT id, competition_id, old_name, new_name, change_type, updated_at
		FROM bracket_overrides
		WHERE competition_id = $1
		ORDER BY updated_at`

	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := []models.Override{}
	for rows.Next() {
		var o models.Override
		if err := rows.Scan(&o.ID, &o.CompetitionID, &o.OldName, &o.NewName, &o.ChangeType, &o.UpdatedAt); err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

func (r *postgresOverrideRepository) DeleteByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM bracket_overrides WHERE competition_id = $1`, competitionID)
	return err
}
