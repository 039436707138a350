// Package seed fills a database with a demo account and one day of sample data.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/gito/internal/db"
	"github.com/gito/internal/prayer"
	"github.com/gito/internal/service"
	"gorm.io/gorm"
)

// Options names the demo account.
type Options struct {
	Name     string
	Email    string
	Password string
	City     string
}

// Result reports what Run created.
type Result struct {
	User         *db.User
	UserCreated  bool
	TasksCreated int
	PrayersDone  int
}

type sampleTask struct {
	title string
	block prayer.Block
	start string
	end   string
	color string
}

var sampleTasks = []sampleTask{
	{"Matematik denemesi çöz", prayer.FajrDhuhr, "08:00", "09:30", "#B8A9FC"},
	{"İngilizce kelime çalış", prayer.FajrDhuhr, "10:00", "11:00", "#F8BBD0"},
	{"Kur'an-ı Kerim oku", prayer.DhuhrAsr, "13:30", "14:00", "#C8E6C9"},
	{"Fizik soruları çöz", prayer.DhuhrAsr, "14:00", "15:00", "#FFE0B2"},
	{"Podcast dinle", prayer.AsrMaghrib, "16:30", "17:00", "#FFE0B2"},
	{"Yürüyüşe çık", prayer.AsrMaghrib, "17:00", "18:00", "#B3E5FC"},
	{"Kur'an oku", prayer.MaghribIsha, "19:00", "19:30", "#C8E6C9"},
}

var samplePrayers = []prayer.Name{prayer.Fajr, prayer.Dhuhr, prayer.Asr}

// Run creates the demo user if missing, today's sample tasks when the user has
// none for today, and marks the morning prayers as performed.
func Run(ctx context.Context, gdb *gorm.DB, opts Options, today time.Time) (*Result, error) {
	users := service.NewUserService(gdb)
	tasks := service.NewTaskService(gdb)
	logs := service.NewPrayerLogService(gdb)

	user, created, err := users.EnsureUser(ctx, service.RegisterInput{
		Name:     opts.Name,
		Email:    opts.Email,
		Password: opts.Password,
		City:     opts.City,
	})
	if err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	result := &Result{User: user, UserCreated: created}

	date := today.Format(db.DateLayout)
	existing, err := tasks.List(ctx, user.ID, date)
	if err != nil {
		return nil, fmt.Errorf("seed tasks: %w", err)
	}
	if len(existing) == 0 {
		for _, st := range sampleTasks {
			if _, err := tasks.Create(ctx, user.ID, service.TaskInput{
				Title:       st.title,
				PrayerBlock: string(st.block),
				Date:        date,
				StartTime:   st.start,
				EndTime:     st.end,
				Color:       st.color,
			}); err != nil {
				return nil, fmt.Errorf("seed task %q: %w", st.title, err)
			}
			result.TasksCreated++
		}
	}

	for _, p := range samplePrayers {
		if _, err := logs.Upsert(ctx, user.ID, service.PrayerLogInput{
			Prayer:    string(p),
			Date:      date,
			Completed: true,
		}); err != nil {
			return nil, fmt.Errorf("seed prayer %s: %w", p, err)
		}
		result.PrayersDone++
	}

	return result, nil
}
