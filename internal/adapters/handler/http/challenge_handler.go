package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitzen/habitzen-engine/internal/core/services"
)

type ChallengeHandler struct {
	svc *services.ChallengeService
}

func NewChallengeHandler(svc *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{svc: svc}
}

type createChallengeRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	DurationDays int      `json:"duration_days" binding:"required"`
	IsPrivate    bool     `json:"is_private"`
	FriendIDs    []string `json:"friend_ids" binding:"required"`
}

type inviteRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *ChallengeHandler) RegisterRoutes(r *gin.RouterGroup) {
	challenges := r.Group("/challenges")
	{
		challenges.GET("", h.List)
		challenges.POST("", h.Create)
		challenges.GET("/public", h.ListPublic)
		challenges.GET("/:id", h.Get)
		challenges.POST("/:id/join", h.Join)
		challenges.POST("/:id/invite", h.Invite)
	}
}

// List godoc
// @Summary   Challenges the caller takes part in
// @Tags      challenges
// @Security  BearerAuth
// @Produce   json
// @Success   200 {array} domain.Challenge
// @Router    /challenges [get]
func (h *ChallengeHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListPublic godoc
// @Summary   Running public challenges
// @Tags      challenges
// @Security  BearerAuth
// @Produce   json
// @Success   200 {array} domain.Challenge
// @Router    /challenges/public [get]
func (h *ChallengeHandler) ListPublic(c *gin.Context) {
	list, err := h.svc.ListPublic(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create godoc
// @Summary   Start a challenge with friends
// @Tags      challenges
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     body body createChallengeRequest true "Challenge"
// @Success   201 {object} domain.Challenge
// @Failure   400 {object} map[string]string
// @Failure   403 {object} map[string]string
// @Router    /challenges [post]
func (h *ChallengeHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req createChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	challenge, err := h.svc.Create(c.Request.Context(), services.CreateChallengeInput{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		IsPrivate:    req.IsPrivate,
		FriendIDs:    req.FriendIDs,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, challenge)
}

// Get godoc
// @Summary   One challenge with its participants
// @Tags      challenges
// @Security  BearerAuth
// @Produce   json
// @Param     id path string true "Challenge ID"
// @Success   200 {object} domain.Challenge
// @Failure   404 {object} map[string]string
// @Router    /challenges/{id} [get]
func (h *ChallengeHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	challenge, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// Join godoc
// @Summary   Join a public challenge
// @Tags      challenges
// @Security  BearerAuth
// @Produce   json
// @Param     id path string true "Challenge ID"
// @Success   200 {object} domain.Challenge
// @Failure   404 {object} map[string]string
// @Failure   409 {object} map[string]string
// @Router    /challenges/{id}/join [post]
func (h *ChallengeHandler) Join(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	challenge, err := h.svc.Join(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// Invite godoc
// @Summary   Add a friend to a challenge
// @Tags      challenges
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id   path string        true "Challenge ID"
// @Param     body body inviteRequest true "Friend"
// @Success   200 {object} domain.Challenge
// @Failure   403 {object} map[string]string
// @Failure   409 {object} map[string]string
// @Router    /challenges/{id}/invite [post]
func (h *ChallengeHandler) Invite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	challenge, err := h.svc.Invite(c.Request.Context(), userID, c.Param("id"), req.UserID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenge)
}
