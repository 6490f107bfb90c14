package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

const postSelect = `
	SELECT p.id, p.user_id, u.username, COALESCE(p.habit_id, '') AS habit_id,
	       p.habit_title, p.habit_category, p.streak, p.created_at
	FROM community_posts p
	JOIN users u ON u.id = p.user_id`

type PostgresCommunityRepository struct {
	db *sqlx.DB
}

func NewPostgresCommunityRepository(db *sqlx.DB) *PostgresCommunityRepository {
	return &PostgresCommunityRepository{db: db}
}

func (r *PostgresCommunityRepository) CreatePost(ctx context.Context, p *domain.CommunityPost) error {
	query := `
		INSERT INTO community_posts (id, user_id, habit_id, habit_title, habit_category, streak, created_at)
		VALUES (:id, :user_id, :habit_id, :habit_title, :habit_category, :streak, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return translateError(err, nil, domain.ErrHabitNotFound)
	}
	return nil
}

func (r *PostgresCommunityRepository) GetPost(ctx context.Context, id string) (*domain.CommunityPost, error) {
	var p domain.CommunityPost
	if err := r.db.GetContext(ctx, &p, postSelect+` WHERE p.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("get post failed: %w", err)
	}

	posts := []*domain.CommunityPost{&p}
	if err := r.attach(ctx, posts); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresCommunityRepository) ListPosts(ctx context.Context, limit int) ([]*domain.CommunityPost, error) {
	posts := []*domain.CommunityPost{}
	if err := r.db.SelectContext(ctx, &posts, postSelect+` ORDER BY p.created_at DESC LIMIT $1`, limit); err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}

	if err := r.attach(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// attach loads likes and comments for all posts with one query each.
func (r *PostgresCommunityRepository) attach(ctx context.Context, posts []*domain.CommunityPost) error {
	if len(posts) == 0 {
		return nil
	}

	byID := make(map[string]*domain.CommunityPost, len(posts))
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		p.Likes = []string{}
		p.Comments = []domain.Comment{}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	query, args, err := sqlx.In(`SELECT post_id, user_id FROM post_likes WHERE post_id IN (?) ORDER BY created_at ASC`, ids)
	if err != nil {
		return err
	}
	var likes []struct {
		PostID string `db:"post_id"`
		UserID string `db:"user_id"`
	}
	if err := r.db.SelectContext(ctx, &likes, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load likes failed: %w", err)
	}
	for _, l := range likes {
		byID[l.PostID].Likes = append(byID[l.PostID].Likes, l.UserID)
	}

	query, args, err = sqlx.In(`
		SELECT c.id, c.post_id, c.user_id, u.username, c.content, c.created_at
		FROM post_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id IN (?)
		ORDER BY c.created_at ASC`, ids)
	if err != nil {
		return err
	}
	var comments []domain.Comment
	if err := r.db.SelectContext(ctx, &comments, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load comments failed: %w", err)
	}
	for _, c := range comments {
		byID[c.PostID].Comments = append(byID[c.PostID].Comments, c)
	}

	return nil
}

func (r *PostgresCommunityRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("unlike failed: %w", err)
	}

	liked := false
	if rows, _ := res.RowsAffected(); rows == 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO post_likes (post_id, user_id, created_at) VALUES ($1, $2, NOW()) ON CONFLICT DO NOTHING`,
			postID, userID)
		if err != nil {
			return false, translateError(err, nil, domain.ErrPostNotFound)
		}
		liked = true
	}

	return liked, tx.Commit()
}

func (r *PostgresCommunityRepository) AddComment(ctx context.Context, c *domain.Comment) error {
	query := `
		INSERT INTO post_comments (id, post_id, user_id, content, created_at)
		VALUES (:id, :post_id, :user_id, :content, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return translateError(err, nil, domain.ErrPostNotFound)
	}
	return nil
}
