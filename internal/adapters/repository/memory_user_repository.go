package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
		if strings.EqualFold(u.Username, user.Username) {
			return domain.ErrUsernameAlreadyExists
		}
	}

	clone := *user
	r.store[user.ID] = &clone
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) SearchByUsername(ctx context.Context, query, excludeID string, limit int) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	users := []*domain.User{}
	for _, u := range r.store {
		if u.ID != excludeID && strings.Contains(strings.ToLower(u.Username), needle) {
			clone := *u
			users = append(users, &clone)
		}
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (r *InMemoryUserRepository) UpdateStreaks(ctx context.Context, id string, state domain.StreakState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.store[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.StreakState = state
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.store[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for id, other := range r.store {
		if id != user.ID && strings.EqualFold(other.Username, user.Username) {
			return domain.ErrUsernameAlreadyExists
		}
	}

	u.Username = user.Username
	u.PasswordHash = user.PasswordHash
	u.UpdatedAt = time.Now().UTC()
	return nil
}
