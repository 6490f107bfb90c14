package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

const requestSelect = `
	SELECT fr.id, fr.from_user_id, fr.to_user_id, u.username AS from_username, u.avatar AS from_avatar,
	       fr.status, fr.created_at, fr.updated_at
	FROM friend_requests fr
	JOIN users u ON u.id = fr.from_user_id`

type PostgresFriendRepository struct {
	db *sqlx.DB
}

func NewPostgresFriendRepository(db *sqlx.DB) *PostgresFriendRepository {
	return &PostgresFriendRepository{db: db}
}

func (r *PostgresFriendRepository) CreateRequest(ctx context.Context, req *domain.FriendRequest) error {
	query := `
		INSERT INTO friend_requests (id, from_user_id, to_user_id, status, created_at, updated_at)
		VALUES (:id, :from_user_id, :to_user_id, :status, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return translateError(err, domain.ErrFriendRequestExists, domain.ErrUserNotFound)
	}
	return nil
}

func (r *PostgresFriendRepository) GetRequest(ctx context.Context, id string) (*domain.FriendRequest, error) {
	var req domain.FriendRequest
	if err := r.db.GetContext(ctx, &req, requestSelect+` WHERE fr.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFriendRequestNotFound
		}
		return nil, fmt.Errorf("get friend request failed: %w", err)
	}
	return &req, nil
}

func (r *PostgresFriendRepository) HasPendingBetween(ctx context.Context, userA, userB string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM friend_requests
			WHERE status = 'pending'
			  AND ((from_user_id = $1 AND to_user_id = $2) OR (from_user_id = $2 AND to_user_id = $1))
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userA, userB)
	return exists, err
}

func (r *PostgresFriendRepository) ListIncoming(ctx context.Context, userID string) ([]*domain.FriendRequest, error) {
	query := requestSelect + ` WHERE fr.to_user_id = $1 AND fr.status = 'pending' ORDER BY fr.created_at DESC`

	reqs := []*domain.FriendRequest{}
	if err := r.db.SelectContext(ctx, &reqs, query, userID); err != nil {
		return nil, fmt.Errorf("list friend requests failed: %w", err)
	}
	return reqs, nil
}

func (r *PostgresFriendRepository) ResolveRequest(ctx context.Context, req *domain.FriendRequest) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE friend_requests SET status = $1, updated_at = $2 WHERE id = $3 AND status = 'pending'`,
		req.Status, req.UpdatedAt, req.ID,
	)
	if err != nil {
		return fmt.Errorf("update friend request failed: %w", err)
	}
	if err := expectAffected(res, domain.ErrFriendRequestClosed); err != nil {
		return err
	}

	if req.Status == domain.FriendRequestAccepted {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO friendships (user_id, friend_id, created_at)
			VALUES ($1, $2, $3), ($2, $1, $3)
			ON CONFLICT DO NOTHING`,
			req.FromUserID, req.ToUserID, req.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("create friendship failed: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PostgresFriendRepository) AreFriends(ctx context.Context, userA, userB string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM friendships WHERE user_id = $1 AND friend_id = $2)`, userA, userB)
	return exists, err
}

func (r *PostgresFriendRepository) ListFriends(ctx context.Context, userID string) ([]*domain.Friend, error) {
	query := `
		SELECT u.id, u.username, u.avatar, u.current_streak, u.best_streak
		FROM friendships f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY u.username ASC`

	friends := []*domain.Friend{}
	if err := r.db.SelectContext(ctx, &friends, query, userID); err != nil {
		return nil, fmt.Errorf("list friends failed: %w", err)
	}
	return friends, nil
}

func (r *PostgresFriendRepository) DeleteFriendship(ctx context.Context, userA, userB string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM friendships
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`, userA, userB)
	if err != nil {
		return fmt.Errorf("delete friendship failed: %w", err)
	}
	return expectAffected(res, domain.ErrFriendNotFound)
}
