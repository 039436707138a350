package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gito/internal/db"
	"github.com/gito/internal/prayer"
	"gorm.io/gorm"
)

const defaultTaskColor = "#B8A9FC"

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// TaskService handles a user's tasks. Every query is scoped by user id, so
// another user's task looks exactly like a missing one.
type TaskService struct {
	db *gorm.DB
}

// TaskInput is the payload for creating a task.
type TaskInput struct {
	Title       string
	Description string
	PrayerBlock string
	Date        string
	StartTime   string
	EndTime     string
	Color       string
	Completed   bool
}

// TaskPatch is a partial update; nil fields keep their stored value.
type TaskPatch struct {
	Title       *string
	Description *string
	PrayerBlock *string
	Date        *string
	StartTime   *string
	EndTime     *string
	Color       *string
	Completed   *bool
}

// DaySummary is one calendar cell.
type DaySummary struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

func NewTaskService(gdb *gorm.DB) *TaskService {
	return &TaskService{db: gdb}
}

// List returns the tasks of one day, oldest first.
func (s *TaskService) List(ctx context.Context, userID, date string) ([]db.Task, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	var tasks []db.Task
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListRange returns tasks between start and end inclusive.
func (s *TaskService) ListRange(ctx context.Context, userID, start, end string) ([]db.Task, error) {
	from, err := parseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(end)
	if err != nil {
		return nil, err
	}
	if to < from {
		return nil, fmt.Errorf("%w: end before start", ErrInvalidRange)
	}

	var tasks []db.Task
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date ASC, created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a single task owned by userID.
func (s *TaskService) Get(ctx context.Context, userID, id string) (*db.Task, error) {
	var task db.Task
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &task, nil
}

// Create validates input and stores a new task.
func (s *TaskService) Create(ctx context.Context, userID string, input TaskInput) (*db.Task, error) {
	task := db.Task{
		UserID:      userID,
		Title:       sanitizeText(input.Title),
		Description: strings.TrimSpace(input.Description),
		PrayerBlock: strings.TrimSpace(input.PrayerBlock),
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Color:       strings.TrimSpace(input.Color),
		Completed:   input.Completed,
	}
	if task.Color == "" {
		task.Color = defaultTaskColor
	}

	if err := validateTask(&task); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

// Update applies patch to the task.
func (s *TaskService) Update(ctx context.Context, userID, id string, patch TaskPatch) (*db.Task, error) {
	task, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = sanitizeText(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.PrayerBlock != nil {
		task.PrayerBlock = strings.TrimSpace(*patch.PrayerBlock)
	}
	if patch.Date != nil {
		task.Date = *patch.Date
	}
	if patch.StartTime != nil {
		task.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		task.EndTime = *patch.EndTime
	}
	if patch.Color != nil {
		task.Color = strings.TrimSpace(*patch.Color)
		if task.Color == "" {
			task.Color = defaultTaskColor
		}
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes the task.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&db.Task{})
	if result.Error != nil {
		return fmt.Errorf("delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// CalendarMonth returns per-day totals for every day of month that has tasks.
func (s *TaskService) CalendarMonth(ctx context.Context, userID, month string) ([]DaySummary, error) {
	first, err := time.Parse("2006-01", strings.TrimSpace(month))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	last := first.AddDate(0, 1, -1)

	var rows []DaySummary
	if err := s.db.WithContext(ctx).Model(&db.Task{}).
		Select("date, COUNT(*) AS total, SUM(CASE WHEN completed THEN 1 ELSE 0 END) AS completed").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, first.Format(db.DateLayout), last.Format(db.DateLayout)).
		Group("date").
		Order("date ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("calendar month: %w", err)
	}
	return rows, nil
}

func validateTask(task *db.Task) error {
	if task.Title == "" {
		return ErrTitleRequired
	}
	if _, err := prayer.ParseBlock(task.PrayerBlock); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBlock, err)
	}

	date, err := parseDate(task.Date)
	if err != nil {
		return err
	}
	task.Date = date

	if task.StartTime, err = parseOptionalClock(task.StartTime); err != nil {
		return err
	}
	if task.EndTime, err = parseOptionalClock(task.EndTime); err != nil {
		return err
	}
	if task.StartTime != "" && task.EndTime != "" && task.EndTime < task.StartTime {
		return fmt.Errorf("%w: end before start", ErrInvalidTime)
	}

	if !hexColorPattern.MatchString(task.Color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, task.Color)
	}
	return nil
}
