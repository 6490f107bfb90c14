package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrChallengeNotFound         = errors.New("challenge not found")
	ErrChallengeTitleEmpty       = errors.New("challenge title cannot be empty")
	ErrChallengeTitleTooLong     = errors.New("challenge title is too long (max 100 chars)")
	ErrChallengeDescriptionEmpty = errors.New("challenge description cannot be empty")
	ErrChallengeDescTooLong      = errors.New("challenge description is too long (max 500 chars)")
	ErrInvalidChallengeDuration  = errors.New("challenge duration must be between 1 and 365 days")
	ErrChallengeNoInvitees       = errors.New("invite at least one friend")
	ErrNotFriends                = errors.New("only friends can be invited")
	ErrAlreadyParticipant        = errors.New("user already takes part in the challenge")
	ErrChallengeEnded            = errors.New("challenge has already ended")
)

const (
	MaxChallengeDays      = 365
	DefaultChallengeLimit = 50
)

// Challenge is a group goal running from StartDate to EndDate, both inclusive.
type Challenge struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	DurationDays int       `json:"duration_days" db:"duration_days"`
	IsPrivate    bool      `json:"is_private" db:"is_private"`
	CreatedBy    string    `json:"created_by" db:"created_by"`
	StartDate    string    `json:"start_date" db:"start_date"`
	EndDate      string    `json:"end_date" db:"end_date"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Participants []ChallengeParticipant `json:"participants" db:"-"`
}

type ChallengeParticipant struct {
	ChallengeID string    `json:"-" db:"challenge_id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Username    string    `json:"username" db:"username"`
	Avatar      string    `json:"avatar,omitempty" db:"avatar"`
	JoinedAt    time.Time `json:"joined_at" db:"joined_at"`
}

// NewChallenge starts the challenge on the given calendar day.
func NewChallenge(createdBy, title, description string, durationDays int, isPrivate bool, start time.Time) (*Challenge, error) {
	if strings.TrimSpace(createdBy) == "" {
		return nil, ErrHabitInvalidUserID
	}

	title = strings.TrimSpace(title)
	switch {
	case title == "":
		return nil, ErrChallengeTitleEmpty
	case len(title) > MaxTitleLen:
		return nil, ErrChallengeTitleTooLong
	}

	description = strings.TrimSpace(description)
	switch {
	case description == "":
		return nil, ErrChallengeDescriptionEmpty
	case len(description) > MaxDescLen:
		return nil, ErrChallengeDescTooLong
	}

	if durationDays < 1 || durationDays > MaxChallengeDays {
		return nil, ErrInvalidChallengeDuration
	}

	return &Challenge{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  description,
		DurationDays: durationDays,
		IsPrivate:    isPrivate,
		CreatedBy:    createdBy,
		StartDate:    FormatDate(start),
		EndDate:      FormatDate(start.AddDate(0, 0, durationDays-1)),
		CreatedAt:    time.Now().UTC(),
		Participants: []ChallengeParticipant{},
	}, nil
}

func (c *Challenge) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// Ended reports whether day is after the last day of the challenge.
func (c *Challenge) Ended(day time.Time) bool {
	return FormatDate(day) > c.EndDate
}

// VisibleTo is true for public challenges and for participants of private ones.
func (c *Challenge) VisibleTo(userID string) bool {
	return !c.IsPrivate || c.HasParticipant(userID)
}
