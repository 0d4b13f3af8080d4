package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"foodvision/services"
)

type StatsController struct {
	Stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{Stats: stats}
}

// GetDailyStats summarizes one local calendar day (?date=YYYY-MM-DD,
// defaults to today) against an optional calorie target (?target=).
func (h *StatsController) GetDailyStats(c *gin.Context) {
	day := time.Now()
	if v := c.Query("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, day.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
			return
		}
		day = parsed
	}
	target := 0.0
	if v := c.Query("target"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target"})
			return
		}
		target = parsed
	}

	out, err := h.Stats.DayStats(c.Request.Context(), day, target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *StatsController) GetWeeklyReport(c *gin.Context) {
	out, err := h.Stats.WeeklyReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *StatsController) GetStreak(c *gin.Context) {
	streak, err := h.Stats.Streak(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}
