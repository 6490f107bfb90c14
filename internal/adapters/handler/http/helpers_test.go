package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/habitzen/habitzen-engine/internal/adapters/handler/http"
	"github.com/habitzen/habitzen-engine/internal/adapters/repository"
	"github.com/habitzen/habitzen-engine/internal/core/services"
)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

// newTestAPI wires the full router over in-memory storage.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	completions := repository.NewInMemoryCompletionRepository()
	habits := repository.NewInMemoryHabitRepository(completions)
	users := repository.NewInMemoryUserRepository()
	friends := repository.NewInMemoryFriendRepository(users)
	posts := repository.NewInMemoryCommunityRepository()
	challenges := repository.NewInMemoryChallengeRepository(users)

	tokens := services.NewTokenService("handler-test-secret", "habitzen-test", time.Hour, users)
	stats := services.NewStatsService(habits, completions, nil, time.Now, time.UTC, 90)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(services.NewAuthService(users, tokens)),
		HabitHandler:      adapterHTTP.NewHabitHandler(services.NewHabitService(habits, completions, nil, nil, time.Now, time.UTC)),
		CompletionHandler: adapterHTTP.NewCompletionHandler(services.NewCompletionService(completions, habits, nil, nil, time.Now, time.UTC, 90)),
		StatsHandler:      adapterHTTP.NewStatsHandler(stats),
		FriendHandler:     adapterHTTP.NewFriendHandler(services.NewFriendService(users, friends)),
		CommunityHandler:  adapterHTTP.NewCommunityHandler(services.NewCommunityService(posts, habits, users, stats)),
		ChallengeHandler:  adapterHTTP.NewChallengeHandler(services.NewChallengeService(challenges, friends, time.Now, time.UTC)),
		TokenValidator:    tokens,
		StartTime:         time.Now(),
	})

	return &testAPI{t: t, router: router}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// signup registers a user and logs in, returning its id and bearer token.
func (a *testAPI) signup(username string) (string, string) {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    username + "@habitzen.app",
		"username": username,
		"password": "password123",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    username + "@habitzen.app",
		"password": "password123",
	})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decode(a.t, w, &resp)
	return resp.User.ID, resp.Token
}

// befriend sends a request from one user and accepts it as the other.
func (a *testAPI) befriend(fromToken, toToken, toID string) {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/v1/friends/requests", fromToken, map[string]string{"to_user_id": toID})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var req struct {
		ID string `json:"id"`
	}
	decode(a.t, w, &req)

	w = a.do(http.MethodPost, "/api/v1/friends/requests/"+req.ID+"/accept", toToken, nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
}

func (a *testAPI) createHabit(token, title string) string {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/v1/habits", token, map[string]string{"title": title})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var habit struct {
		ID string `json:"id"`
	}
	decode(a.t, w, &habit)
	return habit.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
