package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type challengeBody struct {
	ID           string `json:"id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	IsPrivate    bool   `json:"is_private"`
	Participants []struct {
		UserID   string `json:"user_id"`
		Username string `json:"username"`
	} `json:"participants"`
}

func TestChallengeHandler_Flow(t *testing.T) {
	api := newTestAPI(t)
	aliceID, alice := api.signup("alice")
	bobID, bob := api.signup("bob")
	carolID, carol := api.signup("carol")
	api.befriend(alice, bob, bobID)
	api.befriend(bob, carol, carolID)

	var private challengeBody
	t.Run("Create with a friend", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/v1/challenges", alice, map[string]any{
			"title":         "Meditate",
			"description":   "ten minutes",
			"duration_days": 21,
			"is_private":    true,
			"friend_ids":    []string{bobID},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		decode(t, w, &private)
		assert.True(t, private.IsPrivate)
		assert.NotEmpty(t, private.StartDate)
		assert.Len(t, private.Participants, 2)
	})

	t.Run("Create validations", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/v1/challenges", alice, map[string]any{
			"title": "Run", "description": "5k", "duration_days": 7, "friend_ids": []string{carolID},
		})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = api.do(http.MethodPost, "/api/v1/challenges", alice, map[string]any{
			"title": "Run", "description": "5k", "duration_days": 7, "friend_ids": []string{},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = api.do(http.MethodPost, "/api/v1/challenges", alice, map[string]any{"title": "Run"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Private challenge is invisible to outsiders", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/v1/challenges/"+private.ID, carol, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = api.do(http.MethodPost, "/api/v1/challenges/"+private.ID+"/join", carol, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Participant invites a friend", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/v1/challenges/"+private.ID+"/invite", bob, map[string]string{"user_id": carolID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = api.do(http.MethodPost, "/api/v1/challenges/"+private.ID+"/invite", bob, map[string]string{"user_id": carolID})
		assert.Equal(t, http.StatusConflict, w.Code)

		w = api.do(http.MethodGet, "/api/v1/challenges", carol, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var mine []challengeBody
		decode(t, w, &mine)
		require.Len(t, mine, 1)
		assert.Len(t, mine[0].Participants, 3)
	})

	t.Run("Public challenge can be joined", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/v1/challenges", bob, map[string]any{
			"title": "Walk", "description": "10k steps", "duration_days": 7, "friend_ids": []string{aliceID},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var public challengeBody
		decode(t, w, &public)

		w = api.do(http.MethodGet, "/api/v1/challenges/public", carol, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), public.ID)
		assert.NotContains(t, w.Body.String(), private.ID)

		w = api.do(http.MethodPost, "/api/v1/challenges/"+public.ID+"/join", carol, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = api.do(http.MethodPost, "/api/v1/challenges/"+public.ID+"/join", carol, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Requires a token", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/v1/challenges", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
