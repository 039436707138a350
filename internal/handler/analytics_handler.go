package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gito/internal/locale"
)

type focusItem struct {
	Block string `json:"block"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// GetAnalytics reports the Baraka score over the trailing 30 days.
func (a *API) GetAnalytics(c *gin.Context) {
	summary, err := a.analytics.Summary(c.Request.Context(), currentUserID(c), a.now())
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Analiz verileri alınamadı")
		return
	}

	language := a.requestLocale(c).Language
	focus := make([]focusItem, 0, len(summary.FocusByBlock))
	for _, bc := range summary.FocusByBlock {
		focus = append(focus, focusItem{
			Block: string(bc.Block),
			Label: locale.BlockLabel(language, string(bc.Block)),
			Count: bc.Count,
		})
	}

	var peak any
	if summary.PeakFocusBlock != "" {
		peak = string(summary.PeakFocusBlock)
	}

	c.JSON(http.StatusOK, gin.H{
		"baraka_score":           summary.BarakaScore,
		"total_tasks":            summary.TotalTasks,
		"completed_tasks":        summary.CompletedTasks,
		"completed_prayers":      summary.CompletedPrayers,
		"task_completion_rate":   summary.TaskCompletionRate,
		"prayer_completion_rate": summary.PrayerCompletionRate,
		"peak_focus_block":       peak,
		"focus_by_prayer":        focus,
	})
}
