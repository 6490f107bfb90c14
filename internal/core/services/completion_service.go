package services

import (
	"context"
	"fmt"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

type CompletionService struct {
	repo       domain.CompletionRepository
	habitRepo  domain.HabitRepository
	cache      SummaryCache
	streaks    StreakNotifier
	cal        calendar
	windowDays int
	locks      *keyedMutex
}

func NewCompletionService(repo domain.CompletionRepository, habitRepo domain.HabitRepository, cache SummaryCache, streaks StreakNotifier, clock Clock, loc *time.Location, windowDays int) *CompletionService {
	if cache == nil {
		cache = noopCache{}
	}
	if streaks == nil {
		streaks = noopNotifier{}
	}
	if windowDays < 1 {
		windowDays = DefaultHistoryWindowDays
	}
	return &CompletionService{
		repo:       repo,
		habitRepo:  habitRepo,
		cache:      cache,
		streaks:    streaks,
		cal:        newCalendar(clock, loc),
		windowDays: windowDays,
		locks:      newKeyedMutex(),
	}
}

type ToggleInput struct {
	UserID  string
	HabitID string
	// Date is optional. When set it must be today.
	Date string
}

// CompleteToday records today's completion of a habit. Completing twice is a no-op;
// the boolean reports whether a new record was written.
func (s *CompletionService) CompleteToday(ctx context.Context, input ToggleInput) (*domain.Completion, bool, error) {
	today, err := s.editableDay(input.Date)
	if err != nil {
		return nil, false, err
	}

	if err := s.checkOwner(ctx, input.UserID, input.HabitID); err != nil {
		return nil, false, err
	}

	unlock := s.locks.Lock(input.UserID + "/" + input.HabitID)
	defer unlock()

	completion := domain.NewCompletion(input.HabitID, input.UserID, today)
	if err := completion.Validate(); err != nil {
		return nil, false, err
	}

	created, err := s.repo.Insert(ctx, completion)
	if err != nil {
		return nil, false, fmt.Errorf("completion service: insert: %w", err)
	}

	if created {
		s.changed(ctx, input.UserID)
	}
	return completion, created, nil
}

// UncompleteToday removes today's completion. Removing a missing record is a no-op.
func (s *CompletionService) UncompleteToday(ctx context.Context, input ToggleInput) (bool, error) {
	today, err := s.editableDay(input.Date)
	if err != nil {
		return false, err
	}

	if err := s.checkOwner(ctx, input.UserID, input.HabitID); err != nil {
		return false, err
	}

	unlock := s.locks.Lock(input.UserID + "/" + input.HabitID)
	defer unlock()

	removed, err := s.repo.Remove(ctx, input.UserID, input.HabitID, domain.FormatDate(today))
	if err != nil {
		return false, fmt.Errorf("completion service: remove: %w", err)
	}

	if removed {
		s.changed(ctx, input.UserID)
	}
	return removed, nil
}

// ListWindow returns the user's records between from and to, inclusive.
// Empty bounds default to the history window ending today.
func (s *CompletionService) ListWindow(ctx context.Context, userID, from, to string) ([]domain.CompletionRecord, error) {
	defFrom, defTo := s.cal.window(s.windowDays)
	from = mergeString(from, defFrom)
	to = mergeString(to, defTo)

	start, err := domain.ParseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDate(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) || end.Sub(start) > (MaxQueryRangeDays-1)*24*time.Hour {
		return nil, fmt.Errorf("%w: %s..%s", domain.ErrInvalidDateRange, from, to)
	}

	completions, err := s.repo.ListByUserID(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return domain.Records(completions), nil
}

func (s *CompletionService) editableDay(date string) (time.Time, error) {
	today := s.cal.today()
	if date == "" {
		return today, nil
	}

	d, err := domain.ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	if !d.Equal(today) {
		return time.Time{}, domain.ErrDateNotEditable
	}
	return today, nil
}

func (s *CompletionService) checkOwner(ctx context.Context, userID, habitID string) error {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return err
	}
	if habit.UserID != userID {
		return domain.ErrHabitNotFound
	}
	return nil
}

func (s *CompletionService) changed(ctx context.Context, userID string) {
	s.cache.Invalidate(ctx, userID)
	s.streaks.Enqueue(userID)
}
