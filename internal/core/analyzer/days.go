package analyzer

import (
	"maps"
	"slices"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

// DateSet holds distinct calendar days in YYYY-MM-DD form.
type DateSet map[string]struct{}

func (s DateSet) Contains(day string) bool {
	_, ok := s[day]
	return ok
}

func (s DateSet) Len() int {
	return len(s)
}

// Sorted returns the days in ascending order. The layout sorts lexically in date order.
func (s DateSet) Sorted() []string {
	if len(s) == 0 {
		return []string{}
	}
	return slices.Sorted(maps.Keys(s))
}

// ActiveDays collapses records into the set of days with at least one completion.
func ActiveDays(records []domain.CompletionRecord) (DateSet, error) {
	set := make(DateSet, len(records))
	for _, r := range records {
		day, err := canonical(r.Date)
		if err != nil {
			return nil, err
		}
		set[day] = struct{}{}
	}
	return set, nil
}

// ActiveDaysInMonth keeps the active days that fall in month/year.
func ActiveDaysInMonth(records []domain.CompletionRecord, month time.Month, year int) (DateSet, error) {
	if month < time.January || month > time.December {
		return nil, domain.ErrInvalidDate
	}

	days, err := ActiveDays(records)
	if err != nil {
		return nil, err
	}
	return filterMonth(days, month, year), nil
}

func filterMonth(days DateSet, month time.Month, year int) DateSet {
	out := make(DateSet)
	for day := range days {
		t, _ := domain.ParseDate(day)
		if t.Month() == month && t.Year() == year {
			out[day] = struct{}{}
		}
	}
	return out
}

// GroupByDay builds one HabitDay per active day, ascending by date.
// Completed ids are distinct and sorted; AllHabitIDs is the current habit set.
func GroupByDay(records []domain.CompletionRecord, habitIDs []string) ([]domain.HabitDay, error) {
	byDay := make(map[string]map[string]struct{})
	for _, r := range records {
		day, err := canonical(r.Date)
		if err != nil {
			return nil, err
		}
		if byDay[day] == nil {
			byDay[day] = make(map[string]struct{})
		}
		byDay[day][r.HabitID] = struct{}{}
	}

	days := make([]domain.HabitDay, 0, len(byDay))
	for _, day := range slices.Sorted(maps.Keys(byDay)) {
		days = append(days, domain.HabitDay{
			Date:              day,
			CompletedHabitIDs: slices.Sorted(maps.Keys(byDay[day])),
			AllHabitIDs:       slices.Clone(habitIDs),
		})
	}
	return days, nil
}

func canonical(date string) (string, error) {
	t, err := domain.ParseDate(date)
	if err != nil {
		return "", err
	}
	return domain.FormatDate(t), nil
}
