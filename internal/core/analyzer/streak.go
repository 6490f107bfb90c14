package analyzer

import (
	"fmt"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

// CurrentStreak counts consecutive active days ending at the anchor.
// The anchor is today when active, else yesterday when active; otherwise the streak is 0.
func CurrentStreak(records []domain.CompletionRecord, today time.Time) (int, error) {
	day, err := normalizeToday(today)
	if err != nil {
		return 0, err
	}

	days, err := ActiveDays(records)
	if err != nil {
		return 0, err
	}
	return currentStreak(days, day), nil
}

func currentStreak(days DateSet, today time.Time) int {
	anchor := today
	if !days.Contains(domain.FormatDate(anchor)) {
		anchor = anchor.AddDate(0, 0, -1)
		if !days.Contains(domain.FormatDate(anchor)) {
			return 0
		}
	}

	streak := 0
	for d := anchor; days.Contains(domain.FormatDate(d)); d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// BestStreak returns the longest run of consecutive active days, never less than current.
func BestStreak(records []domain.CompletionRecord, current int) (int, error) {
	days, err := ActiveDays(records)
	if err != nil {
		return 0, err
	}
	return bestStreak(days, current), nil
}

func bestStreak(days DateSet, current int) int {
	longest, run := 0, 0
	var prev time.Time

	for i, day := range days.Sorted() {
		d, _ := domain.ParseDate(day)
		if i > 0 && prev.AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
		prev = d
	}

	return max(longest, current, 0)
}

func normalizeToday(today time.Time) (time.Time, error) {
	if today.IsZero() {
		return time.Time{}, fmt.Errorf("%w: today is not set", domain.ErrInvalidDate)
	}
	return domain.NormalizeDate(today), nil
}
