package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/habitzen/habitzen-engine/internal/core/services"
)

type CommunityHandler struct {
	svc *services.CommunityService
}

func NewCommunityHandler(svc *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

type sharePostRequest struct {
	HabitID string `json:"habit_id" binding:"required"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommunityHandler) RegisterRoutes(r *gin.RouterGroup) {
	posts := r.Group("/community/posts")
	{
		posts.GET("", h.Feed)
		posts.POST("", h.Share)
		posts.POST("/:id/like", h.ToggleLike)
		posts.POST("/:id/comments", h.AddComment)
	}
}

// Feed godoc
// @Summary   Newest community posts
// @Tags      community
// @Security  BearerAuth
// @Produce   json
// @Param     limit query int false "At most 100, default 50"
// @Success   200 {array} domain.CommunityPost
// @Router    /community/posts [get]
func (h *CommunityHandler) Feed(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	posts, err := h.svc.Feed(c.Request.Context(), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Share godoc
// @Summary   Share a habit and its current streak
// @Tags      community
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     body body sharePostRequest true "Habit"
// @Success   201 {object} domain.CommunityPost
// @Failure   404 {object} map[string]string
// @Router    /community/posts [post]
func (h *CommunityHandler) Share(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req sharePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	post, err := h.svc.Share(c.Request.Context(), userID, req.HabitID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ToggleLike godoc
// @Summary   Like or unlike a post
// @Tags      community
// @Security  BearerAuth
// @Produce   json
// @Param     id path string true "Post ID"
// @Success   200 {object} map[string]bool
// @Failure   404 {object} map[string]string
// @Router    /community/posts/{id}/like [post]
func (h *CommunityHandler) ToggleLike(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	liked, err := h.svc.ToggleLike(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// AddComment godoc
// @Summary   Comment on a post
// @Tags      community
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id   path string         true "Post ID"
// @Param     body body commentRequest true "Comment"
// @Success   201 {object} domain.Comment
// @Failure   400 {object} map[string]string
// @Router    /community/posts/{id}/comments [post]
func (h *CommunityHandler) AddComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	comment, err := h.svc.AddComment(c.Request.Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
