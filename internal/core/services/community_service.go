package services

import (
	"context"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

type StreakReader interface {
	StreakState(ctx context.Context, userID string) (domain.StreakState, error)
}

type CommunityService struct {
	posts   domain.CommunityRepository
	habits  domain.HabitRepository
	users   domain.UserRepository
	streaks StreakReader
}

func NewCommunityService(posts domain.CommunityRepository, habits domain.HabitRepository, users domain.UserRepository, streaks StreakReader) *CommunityService {
	return &CommunityService{
		posts:   posts,
		habits:  habits,
		users:   users,
		streaks: streaks,
	}
}

// Share publishes one of the user's habits with the streak as of now.
func (s *CommunityService) Share(ctx context.Context, userID, habitID string) (*domain.CommunityPost, error) {
	habit, err := s.habits.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	state, err := s.streaks.StreakState(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := domain.NewCommunityPost(user, habit, state.CurrentStreak)
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *CommunityService) Feed(ctx context.Context, limit int) ([]*domain.CommunityPost, error) {
	if limit <= 0 {
		limit = domain.DefaultFeedLimit
	}
	limit = min(limit, domain.MaxFeedLimit)
	return s.posts.ListPosts(ctx, limit)
}

func (s *CommunityService) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return false, err
	}
	return s.posts.ToggleLike(ctx, postID, userID)
}

func (s *CommunityService) AddComment(ctx context.Context, userID, postID, content string) (*domain.Comment, error) {
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment, err := domain.NewComment(postID, user, content)
	if err != nil {
		return nil, err
	}
	if err := s.posts.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
