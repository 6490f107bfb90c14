package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

type membership struct {
	userID   string
	joinedAt time.Time
}

// InMemoryChallengeRepository resolves participant profiles from the user store on read.
type InMemoryChallengeRepository struct {
	users      *InMemoryUserRepository
	challenges map[string]*domain.Challenge
	members    map[string][]membership

	mu sync.RWMutex
}

func NewInMemoryChallengeRepository(users *InMemoryUserRepository) *InMemoryChallengeRepository {
	return &InMemoryChallengeRepository{
		users:      users,
		challenges: make(map[string]*domain.Challenge),
		members:    make(map[string][]membership),
	}
}

func (r *InMemoryChallengeRepository) Create(ctx context.Context, challenge *domain.Challenge, participantIDs []string) error {
	for _, id := range participantIDs {
		if _, err := r.users.GetByID(ctx, id); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *challenge
	clone.Participants = nil
	r.challenges[challenge.ID] = &clone

	seen := make(map[string]struct{}, len(participantIDs))
	var list []membership
	for _, id := range participantIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		list = append(list, membership{userID: id, joinedAt: challenge.CreatedAt})
	}
	r.members[challenge.ID] = list
	return nil
}

func (r *InMemoryChallengeRepository) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	r.mu.RLock()
	c, ok := r.challenges[id]
	if !ok {
		r.mu.RUnlock()
		return nil, domain.ErrChallengeNotFound
	}
	clone := *c
	members := append([]membership(nil), r.members[id]...)
	r.mu.RUnlock()

	clone.Participants = r.profiles(ctx, id, members)
	return &clone, nil
}

func (r *InMemoryChallengeRepository) ListByParticipant(ctx context.Context, userID string) ([]*domain.Challenge, error) {
	return r.list(ctx, 0, func(c *domain.Challenge, members []membership) bool {
		for _, m := range members {
			if m.userID == userID {
				return true
			}
		}
		return false
	})
}

func (r *InMemoryChallengeRepository) ListPublic(ctx context.Context, day string, limit int) ([]*domain.Challenge, error) {
	return r.list(ctx, limit, func(c *domain.Challenge, _ []membership) bool {
		return !c.IsPrivate && c.EndDate >= day
	})
}

func (r *InMemoryChallengeRepository) AddParticipant(ctx context.Context, challengeID, userID string, joinedAt time.Time) error {
	if _, err := r.users.GetByID(ctx, userID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.challenges[challengeID]; !ok {
		return domain.ErrChallengeNotFound
	}
	for _, m := range r.members[challengeID] {
		if m.userID == userID {
			return domain.ErrAlreadyParticipant
		}
	}
	r.members[challengeID] = append(r.members[challengeID], membership{userID: userID, joinedAt: joinedAt})
	return nil
}

func (r *InMemoryChallengeRepository) list(ctx context.Context, limit int, keep func(*domain.Challenge, []membership) bool) ([]*domain.Challenge, error) {
	type snapshot struct {
		challenge domain.Challenge
		members   []membership
	}

	r.mu.RLock()
	var picked []snapshot
	for id, c := range r.challenges {
		if keep(c, r.members[id]) {
			picked = append(picked, snapshot{challenge: *c, members: append([]membership(nil), r.members[id]...)})
		}
	}
	r.mu.RUnlock()

	sort.Slice(picked, func(i, j int) bool {
		return picked[i].challenge.CreatedAt.After(picked[j].challenge.CreatedAt)
	})
	if limit > 0 && len(picked) > limit {
		picked = picked[:limit]
	}

	list := make([]*domain.Challenge, 0, len(picked))
	for i := range picked {
		c := picked[i].challenge
		c.Participants = r.profiles(ctx, c.ID, picked[i].members)
		list = append(list, &c)
	}
	return list, nil
}

func (r *InMemoryChallengeRepository) profiles(ctx context.Context, challengeID string, members []membership) []domain.ChallengeParticipant {
	out := make([]domain.ChallengeParticipant, 0, len(members))
	for _, m := range members {
		u, err := r.users.GetByID(ctx, m.userID)
		if err != nil {
			continue
		}
		out = append(out, domain.ChallengeParticipant{
			ChallengeID: challengeID,
			UserID:      u.ID,
			Username:    u.Username,
			Avatar:      u.Avatar,
			JoinedAt:    m.joinedAt,
		})
	}
	return out
}
