package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account. Email is stored lower-cased.
type User struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	City      string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Task is a to-do item anchored to one prayer block on one day.
type Task struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	UserID      string `gorm:"type:varchar(36);index:idx_tasks_user_date;not null"`
	Title       string `gorm:"not null"`
	Description string
	PrayerBlock string `gorm:"type:varchar(16);not null"`
	Completed   bool   `gorm:"not null"`
	Date        string `gorm:"type:varchar(10);index:idx_tasks_user_date;not null"`
	StartTime   string `gorm:"type:varchar(5)"`
	EndTime     string `gorm:"type:varchar(5)"`
	Color       string `gorm:"type:varchar(16)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// PrayerLog records whether a user performed one prayer on one day.
// user_id + prayer + date is unique so logging is an upsert.
type PrayerLog struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	UserID    string `gorm:"type:varchar(36);index:idx_prayer_log_unique,unique;not null"`
	Prayer    string `gorm:"type:varchar(16);index:idx_prayer_log_unique,unique;not null"`
	Date      string `gorm:"type:varchar(10);index:idx_prayer_log_unique,unique;not null"`
	Completed bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PrayerLog) TableName() string {
	return "prayer_logs"
}

func (p *PrayerLog) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
