package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gito/internal/db"
	"github.com/gito/internal/locale"
	"github.com/gito/internal/service"
)

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PrayerBlock string `json:"prayer_block"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Color       string `json:"color"`
	Completed   bool   `json:"completed"`
}

type taskPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	PrayerBlock *string `json:"prayer_block"`
	Date        *string `json:"date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Color       *string `json:"color"`
	Completed   *bool   `json:"completed"`
}

func taskToPayload(task db.Task, language string) gin.H {
	return gin.H{
		"id":               task.ID,
		"title":            task.Title,
		"description":      task.Description,
		"description_html": service.RenderDescription(task.Description),
		"prayer_block":     task.PrayerBlock,
		"block_label":      locale.BlockLabel(language, task.PrayerBlock),
		"completed":        task.Completed,
		"date":             task.Date,
		"start_time":       task.StartTime,
		"end_time":         task.EndTime,
		"color":            task.Color,
		"created_at":       task.CreatedAt,
		"updated_at":       task.UpdatedAt,
	}
}

// ListTasks returns the tasks of ?date=, or of ?start=&end= when both are given.
func (a *API) ListTasks(c *gin.Context) {
	userID := currentUserID(c)
	start, end := strings.TrimSpace(c.Query("start")), strings.TrimSpace(c.Query("end"))

	var (
		tasks []db.Task
		err   error
	)
	if start != "" || end != "" {
		tasks, err = a.tasks.ListRange(c.Request.Context(), userID, start, end)
	} else {
		tasks, err = a.tasks.List(c.Request.Context(), userID, a.dateQuery(c, "date"))
	}
	if err != nil {
		handleTaskError(c, err)
		return
	}

	language := a.requestLocale(c).Language
	items := make([]gin.H, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, taskToPayload(task, language))
	}
	c.JSON(http.StatusOK, gin.H{"tasks": items})
}

// GetTask returns one task.
func (a *API) GetTask(c *gin.Context) {
	task, err := a.tasks.Get(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": taskToPayload(*task, a.requestLocale(c).Language)})
}

// CreateTask stores a new task for the signed-in user.
func (a *API) CreateTask(c *gin.Context) {
	var req taskRequest
	if !bindJSON(c, &req, "Geçersiz görev verisi") {
		return
	}

	task, err := a.tasks.Create(c.Request.Context(), currentUserID(c), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		PrayerBlock: req.PrayerBlock,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Color:       req.Color,
		Completed:   req.Completed,
	})
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": taskToPayload(*task, a.requestLocale(c).Language)})
}

// UpdateTask applies a partial update.
func (a *API) UpdateTask(c *gin.Context) {
	var req taskPatchRequest
	if !bindJSON(c, &req, "Geçersiz görev verisi") {
		return
	}

	task, err := a.tasks.Update(c.Request.Context(), currentUserID(c), c.Param("id"), service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		PrayerBlock: req.PrayerBlock,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Color:       req.Color,
		Completed:   req.Completed,
	})
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": taskToPayload(*task, a.requestLocale(c).Language)})
}

// DeleteTask removes a task.
func (a *API) DeleteTask(c *gin.Context) {
	if err := a.tasks.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Görev silindi"})
}

// Calendar returns per-day task counts for ?month=YYYY-MM.
func (a *API) Calendar(c *gin.Context) {
	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		month = a.now().Format("2006-01")
	}

	days, err := a.tasks.CalendarMonth(c.Request.Context(), currentUserID(c), month)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	totalTasks, completed := 0, 0
	for _, d := range days {
		totalTasks += d.Total
		completed += d.Completed
	}

	c.JSON(http.StatusOK, gin.H{
		"month": month,
		"days":  days,
		"summary": gin.H{
			"total_tasks":     totalTasks,
			"completed_tasks": completed,
			"active_days":     len(days),
		},
	})
}

func handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		respondError(c, http.StatusNotFound, "Görev bulunamadı")
	case errors.Is(err, service.ErrTitleRequired):
		respondError(c, http.StatusBadRequest, "Görev başlığı gerekli")
	case errors.Is(err, service.ErrInvalidBlock):
		respondError(c, http.StatusBadRequest, "Geçersiz namaz aralığı")
	case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrInvalidRange), errors.Is(err, service.ErrInvalidMonth):
		respondError(c, http.StatusBadRequest, "Geçersiz tarih")
	case errors.Is(err, service.ErrInvalidTime):
		respondError(c, http.StatusBadRequest, "Geçersiz saat")
	case errors.Is(err, service.ErrInvalidColor):
		respondError(c, http.StatusBadRequest, "Geçersiz renk")
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "İşlem başarısız")
	}
}
