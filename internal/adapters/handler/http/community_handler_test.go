package http_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

func TestCommunityHandler(t *testing.T) {
	api := newTestAPI(t)
	_, alice := api.signup("alice")
	bobID, bob := api.signup("bob")

	habitID := api.createHabit(alice, "Meditate")
	w := api.do(http.MethodPost, "/api/v1/completions", alice, map[string]string{"habit_id": habitID})
	require.Equal(t, http.StatusCreated, w.Code)

	var post domain.CommunityPost
	t.Run("Share snapshots the streak", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/v1/community/posts", alice, map[string]string{"habit_id": habitID})
		require.Equal(t, http.StatusCreated, w.Code)
		decode(t, w, &post)
		assert.Equal(t, 1, post.Streak)
		assert.Equal(t, "Meditate", post.HabitTitle)

		w = api.do(http.MethodPost, "/api/v1/community/posts", bob, map[string]string{"habit_id": habitID})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Like toggles", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/v1/community/posts/"+post.ID+"/like", bob, nil)
		assert.JSONEq(t, `{"liked":true}`, w.Body.String())

		w = api.do(http.MethodGet, "/api/v1/community/posts", bob, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var feed []domain.CommunityPost
		decode(t, w, &feed)
		require.Len(t, feed, 1)
		assert.Equal(t, []string{bobID}, feed[0].Likes)

		w = api.do(http.MethodPost, "/api/v1/community/posts/"+post.ID+"/like", bob, nil)
		assert.JSONEq(t, `{"liked":false}`, w.Body.String())

		w = api.do(http.MethodPost, "/api/v1/community/posts/missing/like", bob, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Comments", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/v1/community/posts/"+post.ID+"/comments", bob, map[string]string{"content": "Nice!"})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"bob"`)

		w = api.do(http.MethodPost, "/api/v1/community/posts/"+post.ID+"/comments", bob, map[string]string{"content": strings.Repeat("x", 501)})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Feed limit validation", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/v1/community/posts?limit=abc", bob, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
