package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock returns local wall-clock time. Session categories and streak
// days are defined by local time-of-day bands and calendar days, so this
// app must not normalize to UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
