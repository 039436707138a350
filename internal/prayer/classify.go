package prayer

import "time"

const secondsPerDay = 24 * 60 * 60

// Status describes one prayer relative to a reference time.
type Status struct {
	Name   Name
	Time   Clock
	IsPast bool
	IsNext bool
}

// Classify reports, in canonical order, which prayers have passed and which one
// is next. A prayer whose minute equals now is past. When all five are past no
// prayer is marked next; Countdown handles the wrap to tomorrow.
func Classify(s Schedule, now time.Time) []Status {
	current := now.Hour()*60 + now.Minute()
	out := make([]Status, 0, len(Names))
	nextFound := false

	for i, n := range Names {
		isPast := current >= s.Times[i].Minutes()
		isNext := !isPast && !nextFound
		if isNext {
			nextFound = true
		}
		out = append(out, Status{Name: n, Time: s.Times[i], IsPast: isPast, IsNext: isNext})
	}

	return out
}

// CurrentBlock returns the block containing now. Intervals are closed at the
// opening prayer and open at the closing one.
func CurrentBlock(s Schedule, now time.Time) Block {
	current := now.Hour()*60 + now.Minute()

	if current >= s.Times[4].Minutes() || current < s.Times[0].Minutes() {
		return IshaFajr
	}
	for i := len(Names) - 2; i >= 0; i-- {
		if current >= s.Times[i].Minutes() {
			return Blocks[i]
		}
	}
	return IshaFajr
}

// Countdown is the time left until the next prayer.
type Countdown struct {
	Hours   int
	Minutes int
	Seconds int
	Next    Name
}

// Duration returns the countdown as a time.Duration.
func (c Countdown) Duration() time.Duration {
	return time.Duration(c.Hours)*time.Hour + time.Duration(c.Minutes)*time.Minute + time.Duration(c.Seconds)*time.Second
}

// TimeUntilNext computes the countdown to the first prayer strictly after now.
// After Isha it wraps to tomorrow's Fajr using today's Fajr time.
func TimeUntilNext(s Schedule, now time.Time) Countdown {
	current := now.Hour()*3600 + now.Minute()*60 + now.Second()

	for i, n := range Names {
		if at := s.Times[i].Seconds(); at > current {
			return splitSeconds(at-current, n)
		}
	}

	return splitSeconds(secondsPerDay-current+s.Times[0].Seconds(), Fajr)
}

func splitSeconds(diff int, next Name) Countdown {
	return Countdown{
		Hours:   diff / 3600,
		Minutes: (diff % 3600) / 60,
		Seconds: diff % 60,
		Next:    next,
	}
}
