package domain

import "time"

// Category classifies a work session by when it started. Weekday office
// hours earn at a token rate; side work and early-morning work are the
// productive ("qualifying") categories that feed streaks and bonuses.
type Category string

const (
	CategoryDayJob       Category = "DAY_JOB"
	CategorySideWork     Category = "SIDE_WORK"
	CategoryEarlyMorning Category = "EARLY_MORNING"
)

// MinDurationMinutes is the shortest session worth keeping. Anything under
// it is treated as accidental and discarded on stop.
const MinDurationMinutes = 15

func (c Category) Valid() bool {
	switch c {
	case CategoryDayJob, CategorySideWork, CategoryEarlyMorning:
		return true
	}
	return false
}

// Qualifying reports whether sessions of this category count toward streaks,
// bonuses and daily thresholds.
func (c Category) Qualifying() bool {
	return c == CategorySideWork || c == CategoryEarlyMorning
}

func (c Category) Label() string {
	switch c {
	case CategoryDayJob:
		return "Day Job"
	case CategorySideWork:
		return "Side Work"
	case CategoryEarlyMorning:
		return "Early Morning"
	}
	return string(c)
}

// Session is one measured work interval. EndTime is zero while the interval
// is still running; DurationMinutes excludes paused time.
type Session struct {
	ID                 int64
	StartTime          time.Time
	EndTime            time.Time
	DurationMinutes    int64
	PointsEarned       float64
	Category           Category
	Paused             bool
	PausedAt           time.Time
	TotalPausedMinutes int64
}

func (s Session) Completed() bool {
	return !s.EndTime.IsZero()
}

// EditableOn reports whether the session may still be edited or deleted:
// only sessions whose start date is the given day (today) are.
func (s Session) EditableOn(day time.Time) bool {
	return SameDay(s.StartTime, day)
}

// DateOf truncates t to its local calendar date (midnight, same location).
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysBetween returns the whole-day calendar gap from a to b, ignoring the
// clock time of either. Negative when b is before a. The dates are
// re-anchored in UTC so a 23- or 25-hour civil day (DST transition) still
// counts as exactly one day.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
