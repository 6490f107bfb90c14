package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound   = errors.New("community post not found")
	ErrCommentEmpty   = errors.New("comment cannot be empty")
	ErrCommentTooLong = errors.New("comment is too long (max 500 chars)")
)

const (
	MaxCommentLen    = 500
	DefaultFeedLimit = 50
	MaxFeedLimit     = 100
)

type CommunityPost struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Username   string    `json:"username" db:"username"`
	HabitID    string    `json:"habit_id" db:"habit_id"`
	HabitTitle string    `json:"habit_title" db:"habit_title"`
	Category   string    `json:"habit_category" db:"habit_category"`
	Streak     int       `json:"streak" db:"streak"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	Likes    []string  `json:"likes" db:"-"`
	Comments []Comment `json:"comments" db:"-"`
}

type Comment struct {
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"post_id" db:"post_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewCommunityPost snapshots the habit and the author's streak at share time.
func NewCommunityPost(author *User, habit *Habit, streak int) *CommunityPost {
	return &CommunityPost{
		ID:         uuid.NewString(),
		UserID:     author.ID,
		Username:   author.Username,
		HabitID:    habit.ID,
		HabitTitle: habit.Title,
		Category:   habit.Category,
		Streak:     streak,
		CreatedAt:  time.Now().UTC(),
		Likes:      []string{},
		Comments:   []Comment{},
	}
}

func NewComment(postID string, author *User, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrCommentEmpty
	}
	if utf8.RuneCountInString(content) > MaxCommentLen {
		return nil, ErrCommentTooLong
	}

	return &Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    author.ID,
		Username:  author.Username,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (p *CommunityPost) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
