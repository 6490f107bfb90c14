package repository

import (
	"context"
	"fmt"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

// Dates leave the database as YYYY-MM-DD text so every caller sees one format.
const completionColumns = `id, habit_id, user_id, to_char(date, 'YYYY-MM-DD') AS date, created_at`

type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

func (r *PostgresCompletionRepository) Insert(ctx context.Context, c *domain.Completion) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}

	query := `
		INSERT INTO completions (id, habit_id, user_id, date, created_at)
		VALUES ($1, $2, $3, $4::date, $5)
		ON CONFLICT (habit_id, date) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, c.ID, c.HabitID, c.UserID, c.Date, c.CreatedAt)
	if err != nil {
		return false, translateError(err, nil, domain.ErrHabitNotFound)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PostgresCompletionRepository) Remove(ctx context.Context, userID, habitID, date string) (bool, error) {
	query := `DELETE FROM completions WHERE user_id = $1 AND habit_id = $2 AND date = $3::date`

	res, err := r.db.ExecContext(ctx, query, userID, habitID, date)
	if err != nil {
		return false, fmt.Errorf("delete completion failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PostgresCompletionRepository) ListByUserID(ctx context.Context, userID, from, to string) ([]*domain.Completion, error) {
	query := `
		SELECT ` + completionColumns + `
		FROM completions
		WHERE user_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY date ASC, habit_id ASC`

	completions := []*domain.Completion{}
	if err := r.db.SelectContext(ctx, &completions, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("list completions failed: %w", err)
	}
	return completions, nil
}
