package analyzer_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/analyzer"
	"github.com/habitzen/habitzen-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

func day(offset int) string {
	return domain.FormatDate(today.AddDate(0, 0, offset))
}

func recs(habitID string, offsets ...int) []domain.CompletionRecord {
	out := make([]domain.CompletionRecord, 0, len(offsets))
	for _, o := range offsets {
		out = append(out, domain.CompletionRecord{HabitID: habitID, Date: day(o)})
	}
	return out
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.CompletionRecord
		want    int
	}{
		{name: "Empty", records: nil, want: 0},
		{name: "Only today", records: recs("h1", 0), want: 1},
		{name: "Only yesterday (grace period)", records: recs("h1", -1), want: 1},
		{name: "Only two days ago", records: recs("h1", -2), want: 0},
		{name: "Three consecutive ending today", records: recs("h1", -2, -1, 0), want: 3},
		{name: "Gap yesterday", records: recs("h1", -2, 0), want: 1},
		{name: "Three consecutive ending yesterday", records: recs("h1", -3, -2, -1), want: 3},
		{name: "Different habits share the day", records: append(recs("h1", -1), recs("h2", 0)...), want: 2},
		{name: "Future records are ignored by the walk", records: recs("h1", 0, 2), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := analyzer.CurrentStreak(tt.records, today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrentStreak_Timezone(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	// 23:30 in Rome on the 14th is still the 14th for the caller.
	lateNight := time.Date(2024, 3, 14, 23, 30, 0, 0, rome)
	got, err := analyzer.CurrentStreak(recs("h1", 0), lateNight)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestCurrentStreak_MonthAndLeapBoundaries(t *testing.T) {
	leapDay := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.CompletionRecord{
		{HabitID: "h1", Date: "2024-02-28"},
		{HabitID: "h1", Date: "2024-02-29"},
		{HabitID: "h1", Date: "2024-03-01"},
	}

	got, err := analyzer.CurrentStreak(records, leapDay)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestInvalidInput(t *testing.T) {
	_, err := analyzer.CurrentStreak(recs("h1", 0), time.Time{})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = analyzer.CurrentStreak([]domain.CompletionRecord{{HabitID: "h1", Date: "14-03-2024"}}, today)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = analyzer.Analyze(analyzer.Input{})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = analyzer.ActiveDaysInMonth(nil, 13, 2024)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestBestStreak(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.CompletionRecord
		current int
		want    int
	}{
		{name: "Empty", want: 0},
		{name: "Single day", records: recs("h1", -40), want: 1},
		{name: "Longest run in the past", records: recs("h1", -20, -19, -18, -17, -5, -4), want: 4},
		{name: "Current wins ties", records: recs("h1", -1, 0), current: 2, want: 2},
		{name: "Current above history", records: recs("h1", 0), current: 5, want: 5},
		{name: "Unordered input", records: recs("h1", -3, -5, -4, -10), want: 3},
		{name: "Across year boundary", records: []domain.CompletionRecord{
			{HabitID: "h1", Date: "2023-12-30"},
			{HabitID: "h1", Date: "2023-12-31"},
			{HabitID: "h1", Date: "2024-01-01"},
		}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := analyzer.BestStreak(tt.records, tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStreaks_Idempotent(t *testing.T) {
	once := recs("h1", -2, -1, 0)
	twice := append(append([]domain.CompletionRecord{}, once...), once...)

	a, err := analyzer.Streaks(once, today)
	require.NoError(t, err)
	b, err := analyzer.Streaks(twice, today)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, domain.StreakState{CurrentStreak: 3, BestStreak: 3}, a)
}

// bruteLongest checks every day in the window and counts consecutive hits.
func bruteLongest(active map[int]bool, lo, hi int) int {
	best, run := 0, 0
	for o := lo; o <= hi; o++ {
		if active[o] {
			run++
			best = max(best, run)
		} else {
			run = 0
		}
	}
	return best
}

func TestStreaks_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 2024))

	for i := 0; i < 500; i++ {
		active := make(map[int]bool)
		var records []domain.CompletionRecord
		n := rng.IntN(60)
		for j := 0; j < n; j++ {
			o := -rng.IntN(90)
			active[o] = true
			records = append(records, domain.CompletionRecord{HabitID: "h" + string(rune('a'+rng.IntN(3))), Date: day(o)})
		}

		state, err := analyzer.Streaks(records, today)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, state.BestStreak, state.CurrentStreak)
		assert.Equal(t, bruteLongest(active, -90, 0), state.BestStreak, "iteration %d", i)
	}
}
