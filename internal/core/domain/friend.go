package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSelfFriendRequest     = errors.New("cannot send a friend request to yourself")
	ErrFriendRequestExists   = errors.New("a pending friend request already exists")
	ErrAlreadyFriends        = errors.New("users are already friends")
	ErrFriendRequestNotFound = errors.New("friend request not found")
	ErrFriendRequestClosed   = errors.New("friend request is no longer pending")
	ErrFriendNotFound        = errors.New("friend not found")
)

const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
	FriendRequestRejected = "rejected"
)

type FriendRequest struct {
	ID           string    `json:"id" db:"id"`
	FromUserID   string    `json:"from_user_id" db:"from_user_id"`
	ToUserID     string    `json:"to_user_id" db:"to_user_id"`
	FromUsername string    `json:"from_username" db:"from_username"`
	FromAvatar   string    `json:"from_avatar,omitempty" db:"from_avatar"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Friend is the public profile of a befriended user, with the cached streaks.
type Friend struct {
	ID       string `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Avatar   string `json:"avatar,omitempty" db:"avatar"`
	StreakState
}

func NewFriendRequest(from *User, toUserID string) (*FriendRequest, error) {
	if from.ID == toUserID {
		return nil, ErrSelfFriendRequest
	}

	now := time.Now().UTC()
	return &FriendRequest{
		ID:           uuid.NewString(),
		FromUserID:   from.ID,
		ToUserID:     toUserID,
		FromUsername: from.Username,
		FromAvatar:   from.Avatar,
		Status:       FriendRequestPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Resolve moves a pending request to accepted or rejected. Only the recipient may do it.
func (r *FriendRequest) Resolve(userID string, accept bool) error {
	if r.ToUserID != userID {
		return ErrUnauthorized
	}
	if r.Status != FriendRequestPending {
		return ErrFriendRequestClosed
	}

	r.Status = FriendRequestRejected
	if accept {
		r.Status = FriendRequestAccepted
	}
	r.UpdatedAt = time.Now().UTC()
	return nil
}
