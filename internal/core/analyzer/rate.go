package analyzer

import (
	"math"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

// DailyCompletionRate returns the rounded share of habits done today, 0..100.
// With a HabitDay for today the share is measured against its habit set.
// Without one it falls back to the live count of completed habits over totalHabits.
func DailyCompletionRate(today *domain.HabitDay, liveCompleted, totalHabits int) int {
	if today != nil && len(today.AllHabitIDs) > 0 {
		return percent(completedOf(*today), distinct(today.AllHabitIDs))
	}
	return percent(liveCompleted, totalHabits)
}

// WeeklyProgress reports the seven days ending today, oldest first.
// Days without completions count habitIDs as their total.
func WeeklyProgress(days []domain.HabitDay, habitIDs []string, today time.Time) ([]domain.DayProgress, error) {
	end, err := normalizeToday(today)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]domain.HabitDay, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	week := make([]domain.DayProgress, 0, 7)
	for offset := -6; offset <= 0; offset++ {
		d := end.AddDate(0, 0, offset)
		key := domain.FormatDate(d)

		p := domain.DayProgress{
			Date:    key,
			Weekday: d.Weekday().String(),
			Total:   distinct(habitIDs),
		}
		if hd, ok := byDate[key]; ok {
			p.Completed = completedOf(hd)
			p.Total = distinct(hd.AllHabitIDs)
		}
		p.Percentage = percent(p.Completed, p.Total)
		week = append(week, p)
	}
	return week, nil
}

func completedOf(day domain.HabitDay) int {
	all := make(map[string]struct{}, len(day.AllHabitIDs))
	for _, id := range day.AllHabitIDs {
		all[id] = struct{}{}
	}

	done := make(map[string]struct{}, len(day.CompletedHabitIDs))
	for _, id := range day.CompletedHabitIDs {
		if _, ok := all[id]; ok {
			done[id] = struct{}{}
		}
	}
	return len(done)
}

func distinct(ids []string) int {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	n = min(max(n, 0), total)
	return int(math.Round(100 * float64(n) / float64(total)))
}
