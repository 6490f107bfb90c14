package domain

// HabitDay groups the completions of one calendar day.
// AllHabitIDs is the habit set at evaluation time, not a historical count.
type HabitDay struct {
	Date              string   `json:"date"`
	CompletedHabitIDs []string `json:"completed_habit_ids"`
	AllHabitIDs       []string `json:"all_habit_ids"`
}

type StreakState struct {
	CurrentStreak int `json:"current_streak" db:"current_streak"`
	BestStreak    int `json:"best_streak" db:"best_streak"`
}

type DayProgress struct {
	Date       string `json:"date"`
	Weekday    string `json:"weekday"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

type StreakSummary struct {
	Today string `json:"today"`
	StreakState
	ActiveDaysThisMonth []string      `json:"active_days_this_month"`
	ActiveDaysCount     int           `json:"active_days_count"`
	DailyCompletionRate int           `json:"daily_completion_rate"`
	TotalCompletions    int           `json:"total_completions"`
	TotalHabits         int           `json:"total_habits"`
	Weekly              []DayProgress `json:"weekly"`
}
