package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/habitzen/habitzen-engine/internal/adapters/repository"
	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

var fixedNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type stores struct {
	habits      *repository.InMemoryHabitRepository
	completions *repository.InMemoryCompletionRepository
	users       *repository.InMemoryUserRepository
	friends     *repository.InMemoryFriendRepository
	posts       *repository.InMemoryCommunityRepository
	challenges  *repository.InMemoryChallengeRepository
}

func newStores() stores {
	completions := repository.NewInMemoryCompletionRepository()
	users := repository.NewInMemoryUserRepository()
	return stores{
		habits:      repository.NewInMemoryHabitRepository(completions),
		completions: completions,
		users:       users,
		friends:     repository.NewInMemoryFriendRepository(users),
		posts:       repository.NewInMemoryCommunityRepository(),
		challenges:  repository.NewInMemoryChallengeRepository(users),
	}
}

// recordingCache is a map-backed SummaryCache that counts invalidations.
// The invalidation count doubles as the generation.
type recordingCache struct {
	mu            sync.Mutex
	entries       map[string]*domain.StreakSummary
	invalidations map[string]int
	rejected      int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{
		entries:       make(map[string]*domain.StreakSummary),
		invalidations: make(map[string]int),
	}
}

func (c *recordingCache) Get(ctx context.Context, userID, day string) (*domain.StreakSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[userID+"|"+day]
	return s, ok
}

func (c *recordingCache) Generation(ctx context.Context, userID string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(c.invalidations[userID]), true
}

func (c *recordingCache) Set(ctx context.Context, userID, day string, generation int64, s *domain.StreakSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if int64(c.invalidations[userID]) != generation {
		c.rejected++
		return
	}
	c.entries[userID+"|"+day] = s
}

func (c *recordingCache) Invalidate(ctx context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if len(k) > len(userID) && k[:len(userID)+1] == userID+"|" {
			delete(c.entries, k)
		}
	}
	c.invalidations[userID]++
}

func (c *recordingCache) invalidated(userID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidations[userID]
}

type recordingNotifier struct {
	mu   sync.Mutex
	jobs []string
}

func (n *recordingNotifier) Enqueue(userID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.jobs = append(n.jobs, userID)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.jobs)
}

func mustHabit(s stores, userID, title string) *domain.Habit {
	h, err := domain.NewHabit(userID, title, "", "")
	if err != nil {
		panic(err)
	}
	if err := s.habits.Create(context.Background(), h); err != nil {
		panic(err)
	}
	return h
}

func mustUser(s stores, id, username string) *domain.User {
	u, err := domain.NewUser(id, username+"@habitzen.app", username)
	if err != nil {
		panic(err)
	}
	if err := s.users.Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

func completeOn(s stores, habit *domain.Habit, offset int) {
	c := domain.NewCompletion(habit.ID, habit.UserID, fixedNow.AddDate(0, 0, offset))
	if _, err := s.completions.Insert(context.Background(), c); err != nil {
		panic(err)
	}
}

func befriend(s stores, a, b *domain.User) {
	req, err := domain.NewFriendRequest(a, b.ID)
	if err != nil {
		panic(err)
	}
	ctx := context.Background()
	if err := s.friends.CreateRequest(ctx, req); err != nil {
		panic(err)
	}
	if err := req.Resolve(b.ID, true); err != nil {
		panic(err)
	}
	if err := s.friends.ResolveRequest(ctx, req); err != nil {
		panic(err)
	}
}
