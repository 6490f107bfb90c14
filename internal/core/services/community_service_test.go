package services_test

import (
	"context"
	"testing"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
	"github.com/habitzen/habitzen-engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommunityService(t *testing.T) {
	ctx := context.Background()
	s := newStores()
	stats := services.NewStatsService(s.habits, s.completions, nil, fixedClock, nil, 90)
	svc := services.NewCommunityService(s.posts, s.habits, s.users, stats)

	alice := mustUser(s, "a", "alice")
	bob := mustUser(s, "b", "bob")
	h := mustHabit(s, alice.ID, "Journal")
	completeOn(s, h, -1)
	completeOn(s, h, 0)

	var post *domain.CommunityPost
	t.Run("Share snapshots the current streak", func(t *testing.T) {
		var err error
		post, err = svc.Share(ctx, alice.ID, h.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, post.Streak)
		assert.Equal(t, "alice", post.Username)
		assert.Equal(t, "Journal", post.HabitTitle)
	})

	t.Run("Cannot share someone else's habit", func(t *testing.T) {
		_, err := svc.Share(ctx, bob.ID, h.ID)
		assert.Equal(t, domain.ErrHabitNotFound, err)
	})

	t.Run("Likes toggle", func(t *testing.T) {
		liked, err := svc.ToggleLike(ctx, bob.ID, post.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		liked, err = svc.ToggleLike(ctx, bob.ID, post.ID)
		require.NoError(t, err)
		assert.False(t, liked)

		_, err = svc.ToggleLike(ctx, bob.ID, "missing")
		assert.Equal(t, domain.ErrPostNotFound, err)
	})

	t.Run("Comments", func(t *testing.T) {
		c, err := svc.AddComment(ctx, bob.ID, post.ID, " well done ")
		require.NoError(t, err)
		assert.Equal(t, "bob", c.Username)
		assert.Equal(t, "well done", c.Content)

		_, err = svc.AddComment(ctx, bob.ID, post.ID, "")
		assert.Equal(t, domain.ErrCommentEmpty, err)
	})

	t.Run("Feed applies limits", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := svc.Share(ctx, alice.ID, h.ID)
			require.NoError(t, err)
		}

		feed, err := svc.Feed(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, feed, 4)

		feed, err = svc.Feed(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, feed, 2)
	})
}
