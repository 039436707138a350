package service

import (
	"context"
	"strings"
	"time"

	"github.com/gito/internal/aladhan"
	"github.com/gito/internal/cache"
	"github.com/gito/internal/prayer"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Where a schedule came from.
const (
	SourceAPI      = "api"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

// TimingsFetcher is satisfied by *aladhan.Client.
type TimingsFetcher interface {
	FetchByCity(ctx context.Context, date time.Time, city, country string) (*aladhan.Response, error)
}

// ScheduleResult is a schedule together with its origin.
type ScheduleResult struct {
	Schedule prayer.Schedule
	Source   string
	City     string
	Country  string
	Date     time.Time
}

// ScheduleService resolves daily prayer schedules. It never fails: any upstream
// problem yields prayer.Fallback. Fallbacks are not cached.
type ScheduleService struct {
	fetcher        TimingsFetcher
	store          cache.Store
	ttl            time.Duration
	method         int
	defaultCity    string
	defaultCountry string
	log            zerolog.Logger
	group          singleflight.Group
}

// ScheduleOptions configures NewScheduleService.
type ScheduleOptions struct {
	TTL            time.Duration
	Method         int
	DefaultCity    string
	DefaultCountry string
}

func NewScheduleService(fetcher TimingsFetcher, store cache.Store, opts ScheduleOptions, log zerolog.Logger) *ScheduleService {
	if store == nil {
		store = cache.NewMemoryStore()
	}
	if opts.DefaultCity == "" {
		opts.DefaultCity = "Istanbul"
	}
	if opts.DefaultCountry == "" {
		opts.DefaultCountry = "Turkey"
	}
	return &ScheduleService{
		fetcher:        fetcher,
		store:          store,
		ttl:            opts.TTL,
		method:         opts.Method,
		defaultCity:    opts.DefaultCity,
		defaultCountry: opts.DefaultCountry,
		log:            log,
	}
}

// FetchSchedule returns the schedule for city/country on date. Empty location
// fields fall back to the configured defaults.
func (s *ScheduleService) FetchSchedule(ctx context.Context, city, country string, date time.Time) ScheduleResult {
	city = strings.TrimSpace(city)
	if city == "" {
		city = s.defaultCity
	}
	country = strings.TrimSpace(country)
	if country == "" {
		country = s.defaultCountry
	}

	result := ScheduleResult{City: city, Country: country, Date: date}
	key := cache.Key(city, country, date, s.method)

	if cached, ok, err := s.store.Get(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("schedule cache read failed")
	} else if ok {
		result.Schedule = cached
		result.Source = SourceCache
		return result
	}

	// The shared fetch outlives any single caller; it stays bounded by the
	// fetcher's own timeout.
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.fetch(shared, key, city, country, date), nil
	})

	select {
	case res := <-ch:
		fetched := res.Val.(ScheduleResult)
		result.Schedule = fetched.Schedule
		result.Source = fetched.Source
	case <-ctx.Done():
		s.log.Warn().Err(ctx.Err()).Str("city", city).Str("country", country).Msg("caller gave up waiting, serving fallback")
		result.Schedule = prayer.Fallback
		result.Source = SourceFallback
	}
	return result
}

func (s *ScheduleService) fetch(ctx context.Context, key, city, country string, date time.Time) ScheduleResult {
	fallback := ScheduleResult{Schedule: prayer.Fallback, Source: SourceFallback}
	if s.fetcher == nil {
		return fallback
	}

	resp, err := s.fetcher.FetchByCity(ctx, date, city, country)
	if err != nil {
		s.log.Warn().Err(err).Str("city", city).Str("country", country).Msg("prayer times unavailable, serving fallback")
		return fallback
	}

	schedule, err := resp.Data.Timings.Schedule()
	if err != nil {
		s.log.Warn().Err(err).Str("city", city).Str("country", country).Msg("invalid prayer times, serving fallback")
		return fallback
	}

	if err := s.store.Set(ctx, key, schedule, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("schedule cache write failed")
	}
	return ScheduleResult{Schedule: schedule, Source: SourceAPI}
}
