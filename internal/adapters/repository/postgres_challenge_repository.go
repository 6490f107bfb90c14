package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

const challengeSelect = `
	SELECT c.id, c.title, c.description, c.duration_days, c.is_private, c.created_by,
	       to_char(c.start_date, 'YYYY-MM-DD') AS start_date,
	       to_char(c.end_date, 'YYYY-MM-DD') AS end_date, c.created_at
	FROM challenges c`

type PostgresChallengeRepository struct {
	db *sqlx.DB
}

func NewPostgresChallengeRepository(db *sqlx.DB) *PostgresChallengeRepository {
	return &PostgresChallengeRepository{db: db}
}

func (r *PostgresChallengeRepository) Create(ctx context.Context, c *domain.Challenge, participantIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO challenges (id, title, description, duration_days, is_private, created_by, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8::date, $9)`,
		c.ID, c.Title, c.Description, c.DurationDays, c.IsPrivate, c.CreatedBy, c.StartDate, c.EndDate, c.CreatedAt,
	)
	if err != nil {
		return translateError(err, nil, domain.ErrUserNotFound)
	}

	for _, userID := range participantIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO challenge_participants (challenge_id, user_id, joined_at)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING`, c.ID, userID, c.CreatedAt)
		if err != nil {
			return translateError(err, nil, domain.ErrUserNotFound)
		}
	}

	return tx.Commit()
}

func (r *PostgresChallengeRepository) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	var c domain.Challenge
	if err := r.db.GetContext(ctx, &c, challengeSelect+` WHERE c.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("get challenge failed: %w", err)
	}

	if err := r.attach(ctx, []*domain.Challenge{&c}); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresChallengeRepository) ListByParticipant(ctx context.Context, userID string) ([]*domain.Challenge, error) {
	query := challengeSelect + `
		JOIN challenge_participants p ON p.challenge_id = c.id
		WHERE p.user_id = $1
		ORDER BY c.created_at DESC`

	return r.selectAndAttach(ctx, query, userID)
}

func (r *PostgresChallengeRepository) ListPublic(ctx context.Context, day string, limit int) ([]*domain.Challenge, error) {
	query := challengeSelect + `
		WHERE NOT c.is_private AND c.end_date >= $1::date
		ORDER BY c.created_at DESC
		LIMIT $2`

	return r.selectAndAttach(ctx, query, day, limit)
}

func (r *PostgresChallengeRepository) AddParticipant(ctx context.Context, challengeID, userID string, joinedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO challenge_participants (challenge_id, user_id, joined_at) VALUES ($1, $2, $3)`,
		challengeID, userID, joinedAt)
	if err != nil {
		return translateError(err, domain.ErrAlreadyParticipant, domain.ErrChallengeNotFound)
	}
	return nil
}

func (r *PostgresChallengeRepository) selectAndAttach(ctx context.Context, query string, args ...any) ([]*domain.Challenge, error) {
	challenges := []*domain.Challenge{}
	if err := r.db.SelectContext(ctx, &challenges, query, args...); err != nil {
		return nil, fmt.Errorf("list challenges failed: %w", err)
	}

	if err := r.attach(ctx, challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

// attach loads the participants of all challenges with one query.
func (r *PostgresChallengeRepository) attach(ctx context.Context, challenges []*domain.Challenge) error {
	if len(challenges) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Challenge, len(challenges))
	ids := make([]string, 0, len(challenges))
	for _, c := range challenges {
		c.Participants = []domain.ChallengeParticipant{}
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	query, args, err := sqlx.In(`
		SELECT p.challenge_id, p.user_id, u.username, u.avatar, p.joined_at
		FROM challenge_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.challenge_id IN (?)
		ORDER BY p.joined_at ASC, u.username ASC`, ids)
	if err != nil {
		return err
	}

	var participants []domain.ChallengeParticipant
	if err := r.db.SelectContext(ctx, &participants, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load participants failed: %w", err)
	}
	for _, p := range participants {
		byID[p.ChallengeID].Participants = append(byID[p.ChallengeID].Participants, p)
	}
	return nil
}
