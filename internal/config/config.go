package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig collects the settings needed to run the service.
type AppConfig struct {
	ListenAddr      string
	Port            string
	DatabasePath    string
	DatabaseURL     string
	SessionSecret   string
	JWTSecret       string
	JWTTTL          time.Duration
	GinMode         string
	LogLevel        string
	LogFormat       string
	CORSOrigins     []string
	ShutdownTimeout time.Duration

	Redis    RedisConfig
	Prayer   PrayerConfig
	SeedUser SeedUserConfig
}

// RedisConfig points the schedule cache at a Redis server. An empty Addr keeps
// the cache in process memory.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// PrayerConfig controls the upstream timing service.
type PrayerConfig struct {
	BaseURL        string
	Timeout        time.Duration
	Method         int
	CacheTTL       time.Duration
	DefaultCity    string
	DefaultCountry string
}

type SeedUserConfig struct {
	Email    string
	Password string
}

// Load reads configuration from the environment and fills in defaults.
// A .env file in the working directory is applied first when present.
func Load() AppConfig {
	_ = godotenv.Load()

	port := getenv("PORT", "8080")

	return AppConfig{
		ListenAddr:      getenv("LISTEN_ADDR", fmt.Sprintf(":%s", port)),
		Port:            port,
		DatabasePath:    getenv("DATABASE_PATH", "gito.db"),
		DatabaseURL:     getenv("DATABASE_URL", ""),
		SessionSecret:   getenv("SESSION_SECRET", "gito-dev-secret"),
		JWTSecret:       getenv("JWT_SECRET", "gito-dev-jwt-secret"),
		JWTTTL:          getenvDuration("JWT_TTL", 72*time.Hour),
		GinMode:         getenv("GIN_MODE", "release"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "json"),
		CORSOrigins:     splitList(getenv("CORS_ALLOWED_ORIGINS", "")),
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", ""),
			Username: getenv("REDIS_USERNAME", ""),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getenvInt("REDIS_DB", 0),
		},
		Prayer: PrayerConfig{
			BaseURL:        getenv("PRAYER_API_BASE_URL", "https://api.aladhan.com/v1"),
			Timeout:        getenvDuration("PRAYER_API_TIMEOUT", 10*time.Second),
			Method:         getenvInt("PRAYER_METHOD", 13),
			CacheTTL:       getenvDuration("SCHEDULE_CACHE_TTL", time.Hour),
			DefaultCity:    getenv("DEFAULT_CITY", "Istanbul"),
			DefaultCountry: getenv("DEFAULT_COUNTRY", "Turkey"),
		},
		SeedUser: SeedUserConfig{
			Email:    getenv("SEED_EMAIL", "ayse@gito.edu.tr"),
			Password: getenv("SEED_PASSWORD", "gito2026"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// getenvDuration accepts Go duration strings ("90s", "1h") or plain seconds.
func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
