package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/gito/internal/aladhan"
	"github.com/gito/internal/auth"
	"github.com/gito/internal/cache"
	"github.com/gito/internal/config"
	"github.com/gito/internal/db"
	"github.com/gito/internal/handler"
	"github.com/gito/internal/locale"
	"github.com/gito/internal/logging"
	"github.com/gito/internal/prayer"
	"github.com/gito/internal/router"
	"github.com/gito/internal/seed"
	"github.com/gito/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gito",
		Short:         "Prayer-anchored planner API",
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	})
	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Create the demo account with sample tasks and prayer logs",
		RunE:  runSeed,
	})
	root.AddCommand(newTimesCmd())

	return root
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	gdb, err := db.Open(db.Options{Path: cfg.DatabasePath, URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	store, redisClient := scheduleStore(cmd.Context(), cfg, logger)
	schedules := newScheduleService(cfg, store, logger)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	api := handler.NewAPI(gdb, schedules, tokens, logger)

	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: router.SetupRouter(api, router.Options{
			SessionSecret: cfg.SessionSecret,
			CORSOrigins:   cfg.CORSOrigins,
			Logger:        logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to run server")
		}
	}()

	operations := map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
		"database": func(context.Context) error {
			return db.Close(gdb)
		},
	}
	if redisClient != nil {
		operations["redis"] = func(context.Context) error {
			return redisClient.Close()
		}
	}

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, operations)
	exitCode := <-wait
	logger.Info().Int("exit_code", exitCode).Msg("server stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

// scheduleStore prefers Redis and falls back to process memory when it is not
// configured or unreachable.
func scheduleStore(ctx context.Context, cfg config.AppConfig, logger zerolog.Logger) (cache.Store, *redis.Client) {
	if cfg.Redis.Addr == "" {
		return cache.NewMemoryStore(), nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(pingCtx, cache.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, caching schedules in memory")
		return cache.NewMemoryStore(), nil
	}
	return cache.NewRedisStore(client, "gito:"), client
}

func newScheduleService(cfg config.AppConfig, store cache.Store, logger zerolog.Logger) *service.ScheduleService {
	client := aladhan.NewClient(cfg.Prayer.BaseURL, cfg.Prayer.Timeout, cfg.Prayer.Method)
	return service.NewScheduleService(client, store, service.ScheduleOptions{
		TTL:            cfg.Prayer.CacheTTL,
		Method:         cfg.Prayer.Method,
		DefaultCity:    cfg.Prayer.DefaultCity,
		DefaultCountry: cfg.Prayer.DefaultCountry,
	}, logger)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	gdb, err := db.Open(db.Options{Path: cfg.DatabasePath, URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close(gdb)

	result, err := seed.Run(cmd.Context(), gdb, seed.Options{
		Name:     "Ayşe Yılmaz",
		Email:    cfg.SeedUser.Email,
		Password: cfg.SeedUser.Password,
		City:     cfg.Prayer.DefaultCity,
	}, time.Now())
	if err != nil {
		return err
	}

	logger.Info().
		Str("email", result.User.Email).
		Bool("user_created", result.UserCreated).
		Int("tasks_created", result.TasksCreated).
		Int("prayers_logged", result.PrayersDone).
		Msg("seed completed")
	return nil
}

func newTimesCmd() *cobra.Command {
	var city, country, date, lang string

	cmd := &cobra.Command{
		Use:   "times",
		Short: "Print the prayer schedule, current block and countdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := logging.New(cfg.LogLevel, "console")

			day := time.Now()
			if date != "" {
				parsed, err := time.ParseInLocation(db.DateLayout, date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", date, err)
				}
				day = parsed
			}

			schedules := newScheduleService(cfg, cache.NewMemoryStore(), logger)
			result := schedules.FetchSchedule(cmd.Context(), city, country, day)
			return printTimes(cmd.OutOrStdout(), result, time.Now(), lang)
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "City name (default from DEFAULT_CITY)")
	cmd.Flags().StringVar(&country, "country", "", "Country name (default from DEFAULT_COUNTRY)")
	cmd.Flags().StringVar(&date, "date", "", "Day as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&lang, "lang", locale.LanguageTurkish, "Display language: tr or en")
	return cmd
}

func printTimes(w io.Writer, result service.ScheduleResult, now time.Time, lang string) error {
	fmt.Fprintf(w, "%s, %s  %s  (%s)\n\n", result.City, result.Country, result.Date.Format(db.DateLayout), result.Source)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, st := range prayer.Classify(result.Schedule, now) {
		marker := ""
		switch {
		case st.IsNext:
			marker = "<-"
		case st.IsPast:
			marker = "✓"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", locale.PrayerName(lang, string(st.Name)), st.Time, marker)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	block := prayer.CurrentBlock(result.Schedule, now)
	countdown := prayer.TimeUntilNext(result.Schedule, now)
	fmt.Fprintf(w, "\n%s: %s\n", locale.Pick(lang, "Current block", "Şu anki aralık"), locale.BlockLabel(lang, string(block)))
	fmt.Fprintf(w, "%s: %s %02d:%02d:%02d\n",
		locale.Pick(lang, "Next", "Sıradaki"),
		locale.PrayerName(lang, string(countdown.Next)),
		countdown.Hours, countdown.Minutes, countdown.Seconds)
	return nil
}
