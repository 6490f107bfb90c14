package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCompletionNotFound = errors.New("completion not found")
	ErrDateNotEditable    = errors.New("only today's completions can be changed")
	ErrInvalidDateRange   = errors.New("invalid date range")
)

// Completion is the stored fact that a habit was done on a calendar day.
// There is at most one per (habit_id, date).
type Completion struct {
	ID        string    `json:"id" db:"id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Date      string    `json:"date" db:"date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CompletionRecord is the shape the analyzer consumes.
type CompletionRecord struct {
	HabitID string `json:"habit_id"`
	Date    string `json:"date"`
}

func NewCompletion(habitID, userID string, day time.Time) *Completion {
	return &Completion{
		ID:        uuid.NewString(),
		HabitID:   habitID,
		UserID:    userID,
		Date:      FormatDate(day),
		CreatedAt: time.Now().UTC(),
	}
}

func (c *Completion) Validate() error {
	if strings.TrimSpace(c.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user_id is required")
	}
	if _, err := ParseDate(c.Date); err != nil {
		return err
	}
	return nil
}

func (c *Completion) Record() CompletionRecord {
	return CompletionRecord{HabitID: c.HabitID, Date: c.Date}
}

func Records(completions []*Completion) []CompletionRecord {
	records := make([]CompletionRecord, 0, len(completions))
	for _, c := range completions {
		records = append(records, c.Record())
	}
	return records
}
