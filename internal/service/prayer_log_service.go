package service

import (
	"context"
	"fmt"

	"github.com/gito/internal/db"
	"github.com/gito/internal/prayer"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PrayerLogService records performed prayers, one row per user, prayer and day.
type PrayerLogService struct {
	db *gorm.DB
}

// PrayerLogInput is the body of a log request.
type PrayerLogInput struct {
	Prayer    string
	Date      string
	Completed bool
}

func NewPrayerLogService(gdb *gorm.DB) *PrayerLogService {
	return &PrayerLogService{db: gdb}
}

// Upsert creates the log or overwrites its completed flag.
func (s *PrayerLogService) Upsert(ctx context.Context, userID string, input PrayerLogInput) (*db.PrayerLog, error) {
	name, err := prayer.ParseName(input.Prayer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrayer, err)
	}
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	record := db.PrayerLog{
		UserID:    userID,
		Prayer:    string(name),
		Date:      date,
		Completed: input.Completed,
	}

	tx := s.db.WithContext(ctx)
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "prayer"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "updated_at"}),
	}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("upsert prayer log: %w", err)
	}

	// record.ID holds the hook's fresh uuid even when the row already existed.
	var stored db.PrayerLog
	if err := tx.Where("user_id = ? AND prayer = ? AND date = ?", userID, record.Prayer, date).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("reload prayer log: %w", err)
	}
	return &stored, nil
}

// ListForDate returns the user's logs for one day in canonical prayer order.
func (s *PrayerLogService) ListForDate(ctx context.Context, userID, date string) ([]db.PrayerLog, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	var logs []db.PrayerLog
	if err := s.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, day).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list prayer logs: %w", err)
	}

	ordered := make([]db.PrayerLog, 0, len(logs))
	for _, n := range prayer.Names {
		for _, l := range logs {
			if l.Prayer == string(n) {
				ordered = append(ordered, l)
			}
		}
	}
	return ordered, nil
}
