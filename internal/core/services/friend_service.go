package services

import (
	"context"
	"strings"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

const (
	minSearchLen = 2
	searchLimit  = 20
)

type FriendService struct {
	users   domain.UserRepository
	friends domain.FriendRepository
}

func NewFriendService(users domain.UserRepository, friends domain.FriendRepository) *FriendService {
	return &FriendService{
		users:   users,
		friends: friends,
	}
}

// SearchUsers looks up other users by username. Short queries return nothing.
func (s *FriendService) SearchUsers(ctx context.Context, userID, query string) ([]*domain.User, error) {
	query = strings.TrimSpace(query)
	if len(query) < minSearchLen {
		return []*domain.User{}, nil
	}
	return s.users.SearchByUsername(ctx, query, userID, searchLimit)
}

func (s *FriendService) SendRequest(ctx context.Context, fromID, toID string) (*domain.FriendRequest, error) {
	if fromID == toID {
		return nil, domain.ErrSelfFriendRequest
	}

	from, err := s.users.GetByID(ctx, fromID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, toID); err != nil {
		return nil, err
	}

	friends, err := s.friends.AreFriends(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, domain.ErrAlreadyFriends
	}

	pending, err := s.friends.HasPendingBetween(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.ErrFriendRequestExists
	}

	req, err := domain.NewFriendRequest(from, toID)
	if err != nil {
		return nil, err
	}
	if err := s.friends.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *FriendService) ListIncoming(ctx context.Context, userID string) ([]*domain.FriendRequest, error) {
	return s.friends.ListIncoming(ctx, userID)
}

// Respond accepts or rejects a pending request addressed to userID.
func (s *FriendService) Respond(ctx context.Context, userID, requestID string, accept bool) (*domain.FriendRequest, error) {
	req, err := s.friends.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	// Someone else's request is reported as missing.
	if req.ToUserID != userID {
		return nil, domain.ErrFriendRequestNotFound
	}

	if err := req.Resolve(userID, accept); err != nil {
		return nil, err
	}
	if err := s.friends.ResolveRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]*domain.Friend, error) {
	return s.friends.ListFriends(ctx, userID)
}

func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	return s.friends.DeleteFriendship(ctx, userID, friendID)
}
