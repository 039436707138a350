package aladhan

import "github.com/gito/internal/prayer"

// Response is the envelope returned by the timingsByCity endpoint.
type Response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   Data   `json:"data"`
}

type Data struct {
	Timings Timings  `json:"timings"`
	Date    DateInfo `json:"date"`
	Meta    Meta     `json:"meta"`
}

// Timings holds "HH:MM" strings, sometimes with a " (+03)" style suffix.
// Only the five obligatory prayers are decoded.
type Timings struct {
	Fajr    string `json:"Fajr"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

type DateInfo struct {
	Readable string    `json:"readable"`
	Hijri    HijriDate `json:"hijri"`
}

type HijriDate struct {
	Date string `json:"date"`
}

type Meta struct {
	Timezone string     `json:"timezone"`
	Method   MethodInfo `json:"method"`
}

type MethodInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Schedule validates the timings and converts them into a prayer.Schedule.
func (t Timings) Schedule() (prayer.Schedule, error) {
	return prayer.NewSchedule(t.Fajr, t.Dhuhr, t.Asr, t.Maghrib, t.Isha)
}
