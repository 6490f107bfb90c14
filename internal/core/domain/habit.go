package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitTitleEmpty      = errors.New("habit title cannot be empty")
	ErrHabitTitleTooLong    = errors.New("habit title is too long (max 100 chars)")
	ErrHabitDescTooLong     = errors.New("habit description is too long (max 500 chars)")
	ErrHabitCategoryTooLong = errors.New("habit category is too long (max 50 chars)")
	ErrHabitInvalidUserID   = errors.New("invalid user id")
)

const (
	DefaultCategory = "general"
	MaxTitleLen     = 100
	MaxDescLen      = 500
	MaxCategoryLen  = 50
)

type Habit struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// IsCompleted is derived from today's completions when habits are listed.
	IsCompleted bool `json:"is_completed" db:"-"`
}

func validateAndNormalize(title, desc, category string) (string, string, string, error) {
	cleanTitle := strings.TrimSpace(title)
	if cleanTitle == "" {
		return "", "", "", ErrHabitTitleEmpty
	}
	if len(cleanTitle) > MaxTitleLen {
		return "", "", "", ErrHabitTitleTooLong
	}

	cleanDesc := strings.TrimSpace(desc)
	if len(cleanDesc) > MaxDescLen {
		return "", "", "", ErrHabitDescTooLong
	}

	cleanCategory := strings.ToLower(strings.TrimSpace(category))
	if cleanCategory == "" {
		cleanCategory = DefaultCategory
	}
	if len(cleanCategory) > MaxCategoryLen {
		return "", "", "", ErrHabitCategoryTooLong
	}

	return cleanTitle, cleanDesc, cleanCategory, nil
}

func NewHabit(userID, title, description, category string) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	cleanTitle, cleanDesc, cleanCategory, err := validateAndNormalize(title, description, category)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Habit{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       cleanTitle,
		Description: cleanDesc,
		Category:    cleanCategory,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (h *Habit) Update(title, description, category string) error {
	cleanTitle, cleanDesc, cleanCategory, err := validateAndNormalize(title, description, category)
	if err != nil {
		return err
	}

	h.Title = cleanTitle
	h.Description = cleanDesc
	h.Category = cleanCategory
	h.UpdatedAt = time.Now().UTC()

	return nil
}

// IDs returns the identifiers of habits in their current order.
func IDs(habits []*Habit) []string {
	ids := make([]string, 0, len(habits))
	for _, h := range habits {
		ids = append(ids, h.ID)
	}
	return ids
}
