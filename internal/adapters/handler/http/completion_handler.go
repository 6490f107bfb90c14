package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitzen/habitzen-engine/internal/core/services"
)

type CompletionHandler struct {
	svc *services.CompletionService
}

func NewCompletionHandler(svc *services.CompletionService) *CompletionHandler {
	return &CompletionHandler{svc: svc}
}

type completeRequest struct {
	HabitID string `json:"habit_id" binding:"required"`
	Date    string `json:"date"`
}

func (h *CompletionHandler) RegisterRoutes(router *gin.RouterGroup) {
	completions := router.Group("/completions")
	{
		completions.GET("", h.List)
		completions.POST("", h.Complete)
		completions.DELETE("/:habit_id", h.Uncomplete)
	}
}

// List godoc
// @Summary   Completion records in a date window
// @Tags      completions
// @Security  BearerAuth
// @Produce   json
// @Param     from query string false "First day, YYYY-MM-DD"
// @Param     to   query string false "Last day, YYYY-MM-DD"
// @Success   200 {array} domain.CompletionRecord
// @Failure   400 {object} map[string]string
// @Router    /completions [get]
func (h *CompletionHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	records, err := h.svc.ListWindow(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Complete godoc
// @Summary   Mark a habit done today
// @Tags      completions
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     body body completeRequest true "Habit"
// @Success   201 {object} domain.Completion
// @Success   200 {object} domain.Completion "already completed"
// @Failure   422 {object} map[string]string
// @Router    /completions [post]
func (h *CompletionHandler) Complete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	completion, created, err := h.svc.CompleteToday(c.Request.Context(), services.ToggleInput{
		UserID:  userID,
		HabitID: req.HabitID,
		Date:    req.Date,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	countToggle("complete", created)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, completion)
}

// Uncomplete godoc
// @Summary   Undo today's completion of a habit
// @Tags      completions
// @Security  BearerAuth
// @Produce   json
// @Param     habit_id path  string true  "Habit ID"
// @Param     date     query string false "Must be today when set"
// @Success   200 {object} map[string]bool
// @Router    /completions/{habit_id} [delete]
func (h *CompletionHandler) Uncomplete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	removed, err := h.svc.UncompleteToday(c.Request.Context(), services.ToggleInput{
		UserID:  userID,
		HabitID: c.Param("habit_id"),
		Date:    c.Query("date"),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	countToggle("uncomplete", removed)

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
