package dto

import "time"

type SessionOutput struct {
	ID                 int64
	StartTime          time.Time
	EndTime            time.Time
	DurationMinutes    int64
	Points             float64
	Category           string
	CategoryLabel      string
	Completed          bool
	Paused             bool
	TotalPausedMinutes int64
}

// EditInput carries the adjusted times for a session edit. A zero EndTime on
// a still-running session means "preview against now".
type EditInput struct {
	ID        int64
	StartTime time.Time
	EndTime   time.Time
}

// PreviewOutput is the live re-derivation of category and points shown while
// the user adjusts session times.
type PreviewOutput struct {
	Category        string
	CategoryLabel   string
	Points          float64
	BasePoints      float64
	Multiplier      float64
	DurationMinutes int64
	FirstOfDay      bool
}

// DayProgressOutput reports completed minutes per category for one calendar
// day, for rendering against the daily goals.
type DayProgressOutput struct {
	Date                time.Time
	DayJobMinutes       int64
	SideWorkMinutes     int64
	EarlyMorningMinutes int64
}
