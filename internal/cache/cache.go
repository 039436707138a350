// Package cache keeps fetched prayer schedules so repeated requests for the same
// city and day skip the timing service. Redis is used when configured; otherwise
// an in-process map with expiry stands in.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gito/internal/prayer"
)

// Store is a TTL key-value store for schedules.
type Store interface {
	Get(ctx context.Context, key string) (prayer.Schedule, bool, error)
	Set(ctx context.Context, key string, s prayer.Schedule, ttl time.Duration) error
}

// Key derives a stable key from everything that changes the timings.
func Key(city, country string, date time.Time, method int) string {
	raw := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(city)),
		strings.ToLower(strings.TrimSpace(country)),
		date.Format("2006-01-02"),
		strconv.Itoa(method),
	}, "|")
	sum := sha256.Sum256([]byte(raw))
	return "schedule:" + hex.EncodeToString(sum[:8])
}

// entry is the serialised form of a schedule.
type entry struct {
	Times map[prayer.Name]string `json:"times"`
}

func encode(s prayer.Schedule) ([]byte, error) {
	return json.Marshal(entry{Times: s.Map()})
}

func decode(data []byte) (prayer.Schedule, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return prayer.Schedule{}, fmt.Errorf("cache unmarshal error: %w", err)
	}
	return prayer.NewSchedule(
		e.Times[prayer.Fajr],
		e.Times[prayer.Dhuhr],
		e.Times[prayer.Asr],
		e.Times[prayer.Maghrib],
		e.Times[prayer.Isha],
	)
}
