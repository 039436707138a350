package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gito/internal/analytics"
	"github.com/gito/internal/db"
	"github.com/gito/internal/prayer"
	"gorm.io/gorm"
)

// AnalyticsService gathers the window counts that feed analytics.Aggregate.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: gdb}
}

type blockRow struct {
	PrayerBlock string
	Count       int
}

// Summary computes the report for the window (start, today].
func (s *AnalyticsService) Summary(ctx context.Context, userID string, today time.Time) (analytics.Summary, error) {
	start := analytics.WindowStart(today).Format(db.DateLayout)
	end := today.Format(db.DateLayout)
	tx := s.db.WithContext(ctx)

	var totalTasks, completedTasks, completedPrayers int64
	taskScope := tx.Model(&db.Task{}).Where("user_id = ? AND date > ? AND date <= ?", userID, start, end)

	if err := taskScope.Session(&gorm.Session{}).Count(&totalTasks).Error; err != nil {
		return analytics.Summary{}, fmt.Errorf("count tasks: %w", err)
	}
	if err := taskScope.Session(&gorm.Session{}).Where("completed = ?", true).Count(&completedTasks).Error; err != nil {
		return analytics.Summary{}, fmt.Errorf("count completed tasks: %w", err)
	}
	if err := tx.Model(&db.PrayerLog{}).
		Where("user_id = ? AND date > ? AND date <= ? AND completed = ?", userID, start, end, true).
		Count(&completedPrayers).Error; err != nil {
		return analytics.Summary{}, fmt.Errorf("count prayers: %w", err)
	}

	var rows []blockRow
	if err := tx.Model(&db.Task{}).
		Select("prayer_block, COUNT(*) AS count").
		Where("user_id = ? AND date > ? AND date <= ? AND completed = ?", userID, start, end, true).
		Group("prayer_block").
		Scan(&rows).Error; err != nil {
		return analytics.Summary{}, fmt.Errorf("group tasks by block: %w", err)
	}

	return analytics.Aggregate(int(totalTasks), int(completedTasks), int(completedPrayers), orderBlocks(rows)), nil
}

// orderBlocks arranges grouped rows in canonical block order so ties resolve
// the same way on every backend.
func orderBlocks(rows []blockRow) []analytics.BlockCount {
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.PrayerBlock] = r.Count
	}

	out := make([]analytics.BlockCount, 0, len(rows))
	for _, b := range prayer.Blocks {
		if c, ok := counts[string(b)]; ok {
			out = append(out, analytics.BlockCount{Block: b, Count: c})
		}
	}
	return out
}
