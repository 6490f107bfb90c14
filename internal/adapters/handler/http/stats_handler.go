package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitzen/habitzen-engine/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("/summary", h.GetSummary)
		stats.GET("/weekly", h.GetWeeklyStats)
	}
}

// GetSummary godoc
// @Summary   Streaks, active days this month and today's completion rate
// @Tags      stats
// @Security  BearerAuth
// @Produce   json
// @Success   200 {object} domain.StreakSummary
// @Router    /stats/summary [get]
func (h *StatsHandler) GetSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetWeeklyStats godoc
// @Summary   Completion progress of the last seven days
// @Tags      stats
// @Security  BearerAuth
// @Produce   json
// @Success   200 {array} domain.DayProgress
// @Router    /stats/weekly [get]
func (h *StatsHandler) GetWeeklyStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	weekly, err := h.svc.Weekly(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, weekly)
}
