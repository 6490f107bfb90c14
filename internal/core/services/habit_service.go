package services

import (
	"context"
	"fmt"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

type HabitService struct {
	repo        domain.HabitRepository
	completions domain.CompletionRepository
	cache       SummaryCache
	streaks     StreakNotifier
	cal         calendar
}

func NewHabitService(repo domain.HabitRepository, completions domain.CompletionRepository, cache SummaryCache, streaks StreakNotifier, clock Clock, loc *time.Location) *HabitService {
	if cache == nil {
		cache = noopCache{}
	}
	if streaks == nil {
		streaks = noopNotifier{}
	}
	return &HabitService{
		repo:        repo,
		completions: completions,
		cache:       cache,
		streaks:     streaks,
		cal:         newCalendar(clock, loc),
	}
}

type CreateHabitInput struct {
	UserID      string
	Title       string
	Description string
	Category    string
}

type UpdateHabitInput struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Category    string
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.Title, input.Description, input.Category)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	// The habit set feeds today's completion rate.
	s.cache.Invalidate(ctx, input.UserID)

	return habit, nil
}

// ListByUserID returns the user's habits flagged with today's completion state.
func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := domain.FormatDate(s.cal.today())
	done, err := s.completions.ListByUserID(ctx, userID, today, today)
	if err != nil {
		return nil, fmt.Errorf("habit service: load today's completions: %w", err)
	}

	completed := make(map[string]bool, len(done))
	for _, c := range done {
		completed[c.HabitID] = true
	}
	for _, h := range habits {
		h.IsCompleted = completed[h.ID]
	}

	return habits, nil
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if habit.UserID != input.UserID {
		return nil, domain.ErrHabitNotFound
	}

	err = habit.Update(
		mergeString(input.Title, habit.Title),
		mergeString(input.Description, habit.Description),
		mergeString(input.Category, habit.Category),
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// Delete removes the habit with its history, so streaks are recomputed afterwards.
func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if habit.UserID != userID {
		return domain.ErrHabitNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, userID)
	s.streaks.Enqueue(userID)
	return nil
}
