package handler

import (
	"time"

	"github.com/gito/internal/auth"
	"github.com/gito/internal/service"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	users     *service.UserService
	tasks     *service.TaskService
	prayerLog *service.PrayerLogService
	analytics *service.AnalyticsService
	schedules *service.ScheduleService
	tokens    *auth.TokenManager
	log       zerolog.Logger
	now       func() time.Time
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, schedules *service.ScheduleService, tokens *auth.TokenManager, log zerolog.Logger) *API {
	return &API{
		db:        gdb,
		users:     service.NewUserService(gdb),
		tasks:     service.NewTaskService(gdb),
		prayerLog: service.NewPrayerLogService(gdb),
		analytics: service.NewAnalyticsService(gdb),
		schedules: schedules,
		tokens:    tokens,
		log:       log,
		now:       time.Now,
	}
}

// WithClock replaces the wall clock, for tests.
func (a *API) WithClock(now func() time.Time) *API {
	if now != nil {
		a.now = now
	}
	return a
}
