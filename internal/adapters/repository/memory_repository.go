package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

// InMemoryHabitRepository keeps habits in process memory. Deleting a habit
// also drops its completions from the linked completion store.
type InMemoryHabitRepository struct {
	store       map[string]*domain.Habit
	completions *InMemoryCompletionRepository

	mu sync.RWMutex
}

func NewInMemoryHabitRepository(completions *InMemoryCompletionRepository) *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store:       make(map[string]*domain.Habit),
		completions: completions,
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	clone := *habit
	return &clone, nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := []*domain.Habit{}
	for _, h := range r.store {
		if h.UserID == userID {
			clone := *h
			habits = append(habits, &clone)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].ID < habits[j].ID
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}

	clone := *habit
	r.store[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	if r.completions != nil {
		r.completions.deleteByHabit(id)
	}
	return nil
}

type completionKey struct {
	habitID string
	date    string
}

type InMemoryCompletionRepository struct {
	store map[completionKey]*domain.Completion

	mu sync.RWMutex
}

func NewInMemoryCompletionRepository() *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{
		store: make(map[completionKey]*domain.Completion),
	}
}

func (r *InMemoryCompletionRepository) Insert(ctx context.Context, c *domain.Completion) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := completionKey{habitID: c.HabitID, date: c.Date}
	if _, exists := r.store[key]; exists {
		return false, nil
	}

	clone := *c
	r.store[key] = &clone
	return true, nil
}

func (r *InMemoryCompletionRepository) Remove(ctx context.Context, userID, habitID, date string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := completionKey{habitID: habitID, date: date}
	c, ok := r.store[key]
	if !ok || c.UserID != userID {
		return false, nil
	}

	delete(r.store, key)
	return true, nil
}

func (r *InMemoryCompletionRepository) ListByUserID(ctx context.Context, userID, from, to string) ([]*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// YYYY-MM-DD compares lexically in date order.
	list := []*domain.Completion{}
	for _, c := range r.store {
		if c.UserID == userID && c.Date >= from && c.Date <= to {
			clone := *c
			list = append(list, &clone)
		}
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Date == list[j].Date {
			return list[i].HabitID < list[j].HabitID
		}
		return list[i].Date < list[j].Date
	})
	return list, nil
}

func (r *InMemoryCompletionRepository) deleteByHabit(habitID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.store {
		if key.habitID == habitID {
			delete(r.store, key)
		}
	}
}
