// Package analytics turns raw 30-day counts into the Baraka summary.
package analytics

import (
	"math"
	"time"

	"github.com/gito/internal/prayer"
)

const (
	// WindowDays is the length of the rolling analytics window.
	WindowDays = 30
	// ExpectedPrayers is the prayer denominator: five a day over the window.
	// It stays fixed even for accounts younger than the window.
	ExpectedPrayers = WindowDays * 5

	prayerWeight = 0.6
	taskWeight   = 0.4
)

// BlockCount is the number of completed tasks in one prayer block.
type BlockCount struct {
	Block prayer.Block
	Count int
}

// Summary is the computed productivity report. Rates are whole percentages.
type Summary struct {
	BarakaScore          int
	TotalTasks           int
	CompletedTasks       int
	CompletedPrayers     int
	TaskCompletionRate   int
	PrayerCompletionRate int
	PeakFocusBlock       prayer.Block
	FocusByBlock         []BlockCount
}

// Aggregate computes the summary. tasksPerBlock is consumed in the given order
// and the first maximum wins; an empty slice leaves PeakFocusBlock empty.
func Aggregate(taskTotal, taskCompleted, prayerCompleted int, tasksPerBlock []BlockCount) Summary {
	prayerRate := float64(prayerCompleted) / ExpectedPrayers
	taskRate := 0.0
	if taskTotal > 0 {
		taskRate = float64(taskCompleted) / float64(taskTotal)
	}

	var peak prayer.Block
	best := -1
	for _, bc := range tasksPerBlock {
		if bc.Count > best {
			best = bc.Count
			peak = bc.Block
		}
	}

	focus := make([]BlockCount, len(tasksPerBlock))
	copy(focus, tasksPerBlock)

	return Summary{
		BarakaScore:          int(math.Round((prayerRate*prayerWeight + taskRate*taskWeight) * 100)),
		TotalTasks:           taskTotal,
		CompletedTasks:       taskCompleted,
		CompletedPrayers:     prayerCompleted,
		TaskCompletionRate:   int(math.Round(taskRate * 100)),
		PrayerCompletionRate: int(math.Round(prayerRate * 100)),
		PeakFocusBlock:       peak,
		FocusByBlock:         focus,
	}
}

// WindowStart returns the window boundary, today minus WindowDays by calendar
// subtraction so DST shifts do not move it. The boundary itself is excluded:
// the window is the WindowDays dates after it, today included, which keeps
// the prayer rate within ExpectedPrayers.
func WindowStart(today time.Time) time.Time {
	y, m, d := today.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, today.Location()).AddDate(0, 0, -WindowDays)
}
