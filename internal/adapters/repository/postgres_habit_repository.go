package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

const habitColumns = `id, user_id, title, description, category, created_at, updated_at`

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
        INSERT INTO habits (` + habitColumns + `)
        VALUES (:id, :user_id, :title, :description, :category, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, h); err != nil {
		return fmt.Errorf("failed to insert habit: %w", translateError(err, nil, domain.ErrUserNotFound))
	}
	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var h domain.Habit
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`

	if err := r.db.GetContext(ctx, &h, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	query := `
        SELECT ` + habitColumns + ` FROM habits
        WHERE user_id = $1
        ORDER BY created_at ASC, id ASC`

	habits := []*domain.Habit{}
	if err := r.db.SelectContext(ctx, &habits, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return habits, nil
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := `
        UPDATE habits SET
            title = $1, description = $2, category = $3, updated_at = $4
        WHERE id = $5`

	res, err := r.db.ExecContext(ctx, query, h.Title, h.Description, h.Category, h.UpdatedAt, h.ID)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}
	return expectAffected(res, domain.ErrHabitNotFound)
}

// Delete relies on ON DELETE CASCADE to drop the habit's completions.
func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}
	return expectAffected(res, domain.ErrHabitNotFound)
}

func expectAffected(res sql.Result, notFound error) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
