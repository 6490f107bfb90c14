// Package analyzer derives streaks and completion rates from completion records.
//
// Every function is pure: the caller supplies the records, the habit set and
// the calendar day considered today. Nothing here reads a clock or does I/O.
package analyzer

import (
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

type Input struct {
	Records  []domain.CompletionRecord
	HabitIDs []string

	// LiveCompleted is the number of habits flagged completed in the live set.
	// Only used when no record exists for today.
	LiveCompleted int

	Today time.Time
}

// Analyze computes the full summary for one consistent snapshot.
func Analyze(in Input) (*domain.StreakSummary, error) {
	today, err := normalizeToday(in.Today)
	if err != nil {
		return nil, err
	}

	active, err := ActiveDays(in.Records)
	if err != nil {
		return nil, err
	}

	days, err := GroupByDay(in.Records, in.HabitIDs)
	if err != nil {
		return nil, err
	}

	current := currentStreak(active, today)
	month := filterMonth(active, today.Month(), today.Year())

	todayKey := domain.FormatDate(today)
	var todayDay *domain.HabitDay
	total := 0
	for i := range days {
		total += len(days[i].CompletedHabitIDs)
		if days[i].Date == todayKey {
			todayDay = &days[i]
		}
	}

	weekly, err := WeeklyProgress(days, in.HabitIDs, today)
	if err != nil {
		return nil, err
	}

	return &domain.StreakSummary{
		Today: todayKey,
		StreakState: domain.StreakState{
			CurrentStreak: current,
			BestStreak:    bestStreak(active, current),
		},
		ActiveDaysThisMonth: month.Sorted(),
		ActiveDaysCount:     month.Len(),
		DailyCompletionRate: DailyCompletionRate(todayDay, in.LiveCompleted, distinct(in.HabitIDs)),
		TotalCompletions:    total,
		TotalHabits:         distinct(in.HabitIDs),
		Weekly:              weekly,
	}, nil
}

// Streaks is the cheap path used when only the streak pair is needed.
func Streaks(records []domain.CompletionRecord, today time.Time) (domain.StreakState, error) {
	day, err := normalizeToday(today)
	if err != nil {
		return domain.StreakState{}, err
	}

	active, err := ActiveDays(records)
	if err != nil {
		return domain.StreakState{}, err
	}

	current := currentStreak(active, day)
	return domain.StreakState{CurrentStreak: current, BestStreak: bestStreak(active, current)}, nil
}
