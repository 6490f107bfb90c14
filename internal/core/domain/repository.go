package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
)

type HabitRepository interface {
	// Create persists a new habit definition in the storage.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all habits associated with a specific user.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update modifies the state of an existing habit.
	Update(ctx context.Context, habit *Habit) error

	// Delete permanently removes a habit and its completions.
	Delete(ctx context.Context, id string) error
}

type CompletionRepository interface {
	// Insert stores the completion unless one already exists for (habit_id, date).
	// The boolean reports whether a row was written.
	Insert(ctx context.Context, completion *Completion) (bool, error)

	// Remove deletes the completion of a habit on a day. The boolean reports whether a row existed.
	Remove(ctx context.Context, userID, habitID, date string) (bool, error)

	// ListByUserID returns the user's completions with from <= date <= to, both YYYY-MM-DD.
	ListByUserID(ctx context.Context, userID, from, to string) ([]*Completion, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// SearchByUsername matches a case-insensitive substring, never returning excludeID.
	SearchByUsername(ctx context.Context, query, excludeID string, limit int) ([]*User, error)

	UpdateStreaks(ctx context.Context, id string, state StreakState) error

	// UpdateProfile saves username and password hash. A taken username
	// returns ErrUsernameAlreadyExists.
	UpdateProfile(ctx context.Context, user *User) error
}

type FriendRepository interface {
	CreateRequest(ctx context.Context, req *FriendRequest) error
	GetRequest(ctx context.Context, id string) (*FriendRequest, error)

	// HasPendingBetween checks both directions.
	HasPendingBetween(ctx context.Context, userA, userB string) (bool, error)

	ListIncoming(ctx context.Context, userID string) ([]*FriendRequest, error)

	// ResolveRequest saves the request status; an accepted request also
	// creates the friendship in both directions atomically.
	ResolveRequest(ctx context.Context, req *FriendRequest) error

	AreFriends(ctx context.Context, userA, userB string) (bool, error)
	ListFriends(ctx context.Context, userID string) ([]*Friend, error)

	// DeleteFriendship removes both directions. Returns ErrFriendNotFound when absent.
	DeleteFriendship(ctx context.Context, userA, userB string) error
}

type CommunityRepository interface {
	CreatePost(ctx context.Context, post *CommunityPost) error
	GetPost(ctx context.Context, id string) (*CommunityPost, error)

	// ListPosts returns the newest posts first, with likes and comments attached.
	ListPosts(ctx context.Context, limit int) ([]*CommunityPost, error)

	// ToggleLike flips the like of userID on the post and reports the new state.
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)

	AddComment(ctx context.Context, comment *Comment) error
}

type ChallengeRepository interface {
	// Create stores the challenge with its first participants in one transaction.
	Create(ctx context.Context, challenge *Challenge, participantIDs []string) error

	// GetByID returns the challenge with its participants.
	GetByID(ctx context.Context, id string) (*Challenge, error)

	// ListByParticipant returns the challenges userID takes part in, newest first.
	ListByParticipant(ctx context.Context, userID string) ([]*Challenge, error)

	// ListPublic returns public challenges still running on day, newest first.
	ListPublic(ctx context.Context, day string, limit int) ([]*Challenge, error)

	// AddParticipant returns ErrAlreadyParticipant when the user is already in.
	AddParticipant(ctx context.Context, challengeID, userID string, joinedAt time.Time) error
}
