package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitzen/habitzen-engine/internal/core/services"
)

type FriendHandler struct {
	svc *services.FriendService
}

func NewFriendHandler(svc *services.FriendService) *FriendHandler {
	return &FriendHandler{svc: svc}
}

type friendRequestBody struct {
	ToUserID string `json:"to_user_id" binding:"required"`
}

// publicProfile is what other users may see.
type publicProfile struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Avatar        string `json:"avatar,omitempty"`
	CurrentStreak int    `json:"current_streak"`
	BestStreak    int    `json:"best_streak"`
}

func (h *FriendHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/users/search", h.SearchUsers)

	friends := r.Group("/friends")
	{
		friends.GET("", h.ListFriends)
		friends.DELETE("/:id", h.RemoveFriend)
		friends.GET("/requests", h.ListRequests)
		friends.POST("/requests", h.SendRequest)
		friends.POST("/requests/:id/accept", h.respond(true))
		friends.POST("/requests/:id/reject", h.respond(false))
	}
}

// SearchUsers godoc
// @Summary   Find users by username
// @Tags      friends
// @Security  BearerAuth
// @Produce   json
// @Param     q query string true "At least two characters"
// @Success   200 {array} publicProfile
// @Router    /users/search [get]
func (h *FriendHandler) SearchUsers(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	users, err := h.svc.SearchUsers(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		handleError(c, err)
		return
	}

	profiles := make([]publicProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, publicProfile{
			ID:            u.ID,
			Username:      u.Username,
			Avatar:        u.Avatar,
			CurrentStreak: u.CurrentStreak,
			BestStreak:    u.BestStreak,
		})
	}
	c.JSON(http.StatusOK, profiles)
}

// ListFriends godoc
// @Summary   Friends with their cached streaks
// @Tags      friends
// @Security  BearerAuth
// @Produce   json
// @Success   200 {array} domain.Friend
// @Router    /friends [get]
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	friends, err := h.svc.ListFriends(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

// RemoveFriend godoc
// @Summary   End a friendship
// @Tags      friends
// @Security  BearerAuth
// @Param     id path string true "Friend user ID"
// @Success   204
// @Failure   404 {object} map[string]string
// @Router    /friends/{id} [delete]
func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.RemoveFriend(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListRequests godoc
// @Summary   Pending requests addressed to the caller
// @Tags      friends
// @Security  BearerAuth
// @Produce   json
// @Success   200 {array} domain.FriendRequest
// @Router    /friends/requests [get]
func (h *FriendHandler) ListRequests(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	requests, err := h.svc.ListIncoming(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// SendRequest godoc
// @Summary   Ask another user to become friends
// @Tags      friends
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     body body friendRequestBody true "Recipient"
// @Success   201 {object} domain.FriendRequest
// @Failure   409 {object} map[string]string
// @Router    /friends/requests [post]
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var body friendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	req, err := h.svc.SendRequest(c.Request.Context(), userID, body.ToUserID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// respond godoc
// @Summary   Accept or reject a pending request
// @Tags      friends
// @Security  BearerAuth
// @Produce   json
// @Param     id path string true "Request ID"
// @Success   200 {object} domain.FriendRequest
// @Failure   404 {object} map[string]string
// @Failure   409 {object} map[string]string
// @Router    /friends/requests/{id}/accept [post]
// @Router    /friends/requests/{id}/reject [post]
func (h *FriendHandler) respond(accept bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		req, err := h.svc.Respond(c.Request.Context(), userID, c.Param("id"), accept)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, req)
	}
}
