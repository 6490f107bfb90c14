package repository

import (
	"context"
	"testing"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresFriendRepository_Integration(t *testing.T) {
	db := setupTestDB(t, "pgx")
	repo := NewPostgresFriendRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	req, err := domain.NewFriendRequest(alice, bob.ID)
	require.NoError(t, err)
	require.NoError(t, repo.CreateRequest(ctx, req))

	t.Run("Second pending request is rejected in both directions", func(t *testing.T) {
		reverse, _ := domain.NewFriendRequest(bob, alice.ID)
		assert.Equal(t, domain.ErrFriendRequestExists, repo.CreateRequest(ctx, reverse))

		pending, err := repo.HasPendingBetween(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, pending)
	})

	t.Run("Incoming requests carry the sender profile", func(t *testing.T) {
		incoming, err := repo.ListIncoming(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, incoming, 1)
		assert.Equal(t, "alice", incoming[0].FromUsername)
	})

	t.Run("Accept creates both directions", func(t *testing.T) {
		stored, err := repo.GetRequest(ctx, req.ID)
		require.NoError(t, err)
		require.NoError(t, stored.Resolve(bob.ID, true))
		require.NoError(t, repo.ResolveRequest(ctx, stored))

		assert.Equal(t, domain.ErrFriendRequestClosed, repo.ResolveRequest(ctx, stored))

		for _, pair := range [][2]string{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
			ok, err := repo.AreFriends(ctx, pair[0], pair[1])
			require.NoError(t, err)
			assert.True(t, ok)
		}

		friends, err := repo.ListFriends(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, friends, 1)
		assert.Equal(t, "bob", friends[0].Username)
	})

	t.Run("Remove friendship", func(t *testing.T) {
		require.NoError(t, repo.DeleteFriendship(ctx, bob.ID, alice.ID))
		assert.Equal(t, domain.ErrFriendNotFound, repo.DeleteFriendship(ctx, alice.ID, bob.ID))
	})

	t.Run("Missing request", func(t *testing.T) {
		_, err := repo.GetRequest(ctx, "missing")
		assert.Equal(t, domain.ErrFriendRequestNotFound, err)
	})
}

func TestPostgresCommunityRepository_Integration(t *testing.T) {
	db := setupTestDB(t, "pgx")
	repo := NewPostgresCommunityRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	habit, _ := domain.NewHabit(alice.ID, "Journal", "", "")
	require.NoError(t, NewPostgresHabitRepository(db).Create(ctx, habit))

	post := domain.NewCommunityPost(alice, habit, 5)
	require.NoError(t, repo.CreatePost(ctx, post))

	liked, err := repo.ToggleLike(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	comment, _ := domain.NewComment(post.ID, bob, "great streak")
	require.NoError(t, repo.AddComment(ctx, comment))

	feed, err := repo.ListPosts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "alice", feed[0].Username)
	assert.Equal(t, 5, feed[0].Streak)
	assert.Equal(t, []string{bob.ID}, feed[0].Likes)
	require.Len(t, feed[0].Comments, 1)
	assert.Equal(t, "bob", feed[0].Comments[0].Username)

	liked, err = repo.ToggleLike(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	t.Run("Post survives habit deletion", func(t *testing.T) {
		require.NoError(t, NewPostgresHabitRepository(db).Delete(ctx, habit.ID))

		p, err := repo.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Journal", p.HabitTitle)
		assert.Empty(t, p.HabitID)
	})

	t.Run("Unknown post", func(t *testing.T) {
		_, err := repo.GetPost(ctx, "missing")
		assert.Equal(t, domain.ErrPostNotFound, err)

		c, _ := domain.NewComment("missing", bob, "hello")
		assert.ErrorIs(t, repo.AddComment(ctx, c), domain.ErrPostNotFound)
	})
}

func TestPostgresChallengeRepository_Integration(t *testing.T) {
	db := setupTestDB(t, "pgx")
	repo := NewPostgresChallengeRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	start, _ := domain.ParseDate("2024-03-14")
	private, err := domain.NewChallenge(alice.ID, "Plank", "one minute a day", 7, true, start)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, private, []string{alice.ID, bob.ID}))

	public, _ := domain.NewChallenge(carol.ID, "Walk", "10k steps", 14, false, start)
	public.CreatedAt = private.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Create(ctx, public, []string{carol.ID}))

	t.Run("Dates round-trip as calendar days", func(t *testing.T) {
		got, err := repo.GetByID(ctx, private.ID)
		require.NoError(t, err)
		assert.Equal(t, "2024-03-14", got.StartDate)
		assert.Equal(t, "2024-03-20", got.EndDate)
		assert.True(t, got.IsPrivate)
		require.Len(t, got.Participants, 2)
		assert.ElementsMatch(t, []string{"alice", "bob"},
			[]string{got.Participants[0].Username, got.Participants[1].Username})
	})

	t.Run("Join and duplicate join", func(t *testing.T) {
		require.NoError(t, repo.AddParticipant(ctx, public.ID, bob.ID, time.Now().UTC()))
		assert.Equal(t, domain.ErrAlreadyParticipant, repo.AddParticipant(ctx, public.ID, bob.ID, time.Now().UTC()))
		assert.Equal(t, domain.ErrChallengeNotFound, repo.AddParticipant(ctx, "missing", bob.ID, time.Now().UTC()))

		list, err := repo.ListByParticipant(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, public.ID, list[0].ID)
	})

	t.Run("Public listing", func(t *testing.T) {
		list, err := repo.ListPublic(ctx, "2024-03-27", 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Walk", list[0].Title)
		assert.Len(t, list[0].Participants, 2)

		list, err = repo.ListPublic(ctx, "2024-03-28", 10)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Unknown participant rolls back", func(t *testing.T) {
		c, _ := domain.NewChallenge(alice.ID, "Read", "a chapter", 7, false, start)
		assert.Equal(t, domain.ErrUserNotFound, repo.Create(ctx, c, []string{alice.ID, "missing"}))

		_, err := repo.GetByID(ctx, c.ID)
		assert.Equal(t, domain.ErrChallengeNotFound, err)
	})

	_, err = repo.GetByID(ctx, "missing")
	assert.Equal(t, domain.ErrChallengeNotFound, err)
}
