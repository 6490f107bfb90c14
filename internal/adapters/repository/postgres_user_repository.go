package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, username, avatar, password_hash, current_streak, best_streak, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (:id, :email, :username, :avatar, :password_hash, :current_streak, :best_streak, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if code, constraint, ok := pgError(err); ok && code == pgUniqueViolation {
			if strings.Contains(constraint, "username") {
				return domain.ErrUsernameAlreadyExists
			}
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("repository: create user failed: %w", err)
	}

	return nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *PostgresUserRepository) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: get user by %s failed: %w", column, err)
	}

	return &user, nil
}

func (r *PostgresUserRepository) SearchByUsername(ctx context.Context, query, excludeID string, limit int) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	q := `
		SELECT ` + userColumns + ` FROM users
		WHERE username ILIKE '%' || $1 || '%' AND id <> $2
		ORDER BY username ASC
		LIMIT $3
	`

	users := []*domain.User{}
	if err := r.db.SelectContext(ctx, &users, q, likeEscaper.Replace(query), excludeID, limit); err != nil {
		return nil, fmt.Errorf("repository: search users failed: %w", err)
	}
	return users, nil
}

func (r *PostgresUserRepository) UpdateStreaks(ctx context.Context, id string, state domain.StreakState) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `UPDATE users SET current_streak = $2, best_streak = $3, updated_at = NOW() WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, state.CurrentStreak, state.BestStreak)
	if err != nil {
		return fmt.Errorf("repository: update streaks failed: %w", err)
	}
	return expectAffected(res, domain.ErrUserNotFound)
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `UPDATE users SET username = $2, password_hash = $3, updated_at = NOW() WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash)
	if err != nil {
		if code, _, ok := pgError(err); ok && code == pgUniqueViolation {
			return domain.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("repository: update profile failed: %w", err)
	}
	return expectAffected(res, domain.ErrUserNotFound)
}
