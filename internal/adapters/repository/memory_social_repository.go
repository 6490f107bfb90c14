package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

type friendPair struct {
	user   string
	friend string
}

// InMemoryFriendRepository reads friend profiles from the user store.
type InMemoryFriendRepository struct {
	users    *InMemoryUserRepository
	requests map[string]*domain.FriendRequest
	links    map[friendPair]struct{}

	mu sync.RWMutex
}

func NewInMemoryFriendRepository(users *InMemoryUserRepository) *InMemoryFriendRepository {
	return &InMemoryFriendRepository{
		users:    users,
		requests: make(map[string]*domain.FriendRequest),
		links:    make(map[friendPair]struct{}),
	}
}

func (r *InMemoryFriendRepository) CreateRequest(ctx context.Context, req *domain.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pendingBetween(req.FromUserID, req.ToUserID) {
		return domain.ErrFriendRequestExists
	}

	clone := *req
	r.requests[req.ID] = &clone
	return nil
}

func (r *InMemoryFriendRepository) GetRequest(ctx context.Context, id string) (*domain.FriendRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrFriendRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *InMemoryFriendRepository) HasPendingBetween(ctx context.Context, userA, userB string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pendingBetween(userA, userB), nil
}

func (r *InMemoryFriendRepository) pendingBetween(a, b string) bool {
	for _, req := range r.requests {
		if req.Status != domain.FriendRequestPending {
			continue
		}
		if (req.FromUserID == a && req.ToUserID == b) || (req.FromUserID == b && req.ToUserID == a) {
			return true
		}
	}
	return false
}

func (r *InMemoryFriendRepository) ListIncoming(ctx context.Context, userID string) ([]*domain.FriendRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []*domain.FriendRequest{}
	for _, req := range r.requests {
		if req.ToUserID == userID && req.Status == domain.FriendRequestPending {
			clone := *req
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *InMemoryFriendRepository) ResolveRequest(ctx context.Context, req *domain.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[req.ID]
	if !ok {
		return domain.ErrFriendRequestNotFound
	}
	if stored.Status != domain.FriendRequestPending {
		return domain.ErrFriendRequestClosed
	}

	stored.Status = req.Status
	stored.UpdatedAt = req.UpdatedAt

	if req.Status == domain.FriendRequestAccepted {
		r.links[friendPair{user: req.FromUserID, friend: req.ToUserID}] = struct{}{}
		r.links[friendPair{user: req.ToUserID, friend: req.FromUserID}] = struct{}{}
	}
	return nil
}

func (r *InMemoryFriendRepository) AreFriends(ctx context.Context, userA, userB string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.links[friendPair{user: userA, friend: userB}]
	return ok, nil
}

func (r *InMemoryFriendRepository) ListFriends(ctx context.Context, userID string) ([]*domain.Friend, error) {
	r.mu.RLock()
	var ids []string
	for pair := range r.links {
		if pair.user == userID {
			ids = append(ids, pair.friend)
		}
	}
	r.mu.RUnlock()

	friends := []*domain.Friend{}
	for _, id := range ids {
		u, err := r.users.GetByID(ctx, id)
		if err != nil {
			continue
		}
		friends = append(friends, &domain.Friend{ID: u.ID, Username: u.Username, Avatar: u.Avatar, StreakState: u.StreakState})
	}
	sort.Slice(friends, func(i, j int) bool { return friends[i].Username < friends[j].Username })
	return friends, nil
}

func (r *InMemoryFriendRepository) DeleteFriendship(ctx context.Context, userA, userB string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	forward := friendPair{user: userA, friend: userB}
	if _, ok := r.links[forward]; !ok {
		return domain.ErrFriendNotFound
	}
	delete(r.links, forward)
	delete(r.links, friendPair{user: userB, friend: userA})
	return nil
}

type InMemoryCommunityRepository struct {
	posts map[string]*domain.CommunityPost

	mu sync.RWMutex
}

func NewInMemoryCommunityRepository() *InMemoryCommunityRepository {
	return &InMemoryCommunityRepository{
		posts: make(map[string]*domain.CommunityPost),
	}
}

func copyPost(p *domain.CommunityPost) *domain.CommunityPost {
	clone := *p
	clone.Likes = append([]string{}, p.Likes...)
	clone.Comments = append([]domain.Comment{}, p.Comments...)
	return &clone
}

func (r *InMemoryCommunityRepository) CreatePost(ctx context.Context, post *domain.CommunityPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.posts[post.ID] = copyPost(post)
	return nil
}

func (r *InMemoryCommunityRepository) GetPost(ctx context.Context, id string) (*domain.CommunityPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return copyPost(p), nil
}

func (r *InMemoryCommunityRepository) ListPosts(ctx context.Context, limit int) ([]*domain.CommunityPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*domain.CommunityPost, 0, len(r.posts))
	for _, p := range r.posts {
		list = append(list, copyPost(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *InMemoryCommunityRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[postID]
	if !ok {
		return false, domain.ErrPostNotFound
	}

	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return false, nil
		}
	}
	p.Likes = append(p.Likes, userID)
	return true, nil
}

func (r *InMemoryCommunityRepository) AddComment(ctx context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[c.PostID]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Comments = append(p.Comments, *c)
	return nil
}
