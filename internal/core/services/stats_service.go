package services

import (
	"context"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/analyzer"
	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

type StatsService struct {
	habitRepo      domain.HabitRepository
	completionRepo domain.CompletionRepository
	cache          SummaryCache
	cal            calendar
	windowDays     int
}

func NewStatsService(habitRepo domain.HabitRepository, completionRepo domain.CompletionRepository, cache SummaryCache, clock Clock, loc *time.Location, windowDays int) *StatsService {
	if cache == nil {
		cache = noopCache{}
	}
	if windowDays < 1 {
		windowDays = DefaultHistoryWindowDays
	}
	return &StatsService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		cache:          cache,
		cal:            newCalendar(clock, loc),
		windowDays:     windowDays,
	}
}

// Summary analyzes a fresh snapshot of the user's habits and completion window.
// Results are memoized per user and day until the next mutation.
func (s *StatsService) Summary(ctx context.Context, userID string) (*domain.StreakSummary, error) {
	today := s.cal.today()
	key := domain.FormatDate(today)

	// Read before loading: an Invalidate racing with the load changes it.
	gen, cacheable := s.cache.Generation(ctx, userID)
	if cacheable {
		if cached, ok := s.cache.Get(ctx, userID, key); ok {
			return cached, nil
		}
	}

	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, to := s.cal.window(s.windowDays)
	completions, err := s.completionRepo.ListByUserID(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	// Today's rate comes from the records, so no live count is passed.
	summary, err := analyzer.Analyze(analyzer.Input{
		Records:  domain.Records(completions),
		HabitIDs: domain.IDs(habits),
		Today:    today,
	})
	if err != nil {
		return nil, err
	}

	if cacheable {
		s.cache.Set(ctx, userID, key, gen, summary)
	}
	return summary, nil
}

func (s *StatsService) Weekly(ctx context.Context, userID string) ([]domain.DayProgress, error) {
	summary, err := s.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summary.Weekly, nil
}

func (s *StatsService) StreakState(ctx context.Context, userID string) (domain.StreakState, error) {
	summary, err := s.Summary(ctx, userID)
	if err != nil {
		return domain.StreakState{}, err
	}
	return summary.StreakState, nil
}
