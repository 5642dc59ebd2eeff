package domain

import (
	"time"

	sessiondomain "grind/internal/modules/session/domain"
)

const (
	// GracePeriodHours is how long after the last qualifying session the
	// streak survives without new work: one missed day is always forgivable.
	GracePeriodHours = 36
	// UrgentThresholdHours marks the tail of the grace window.
	UrgentThresholdHours = 12
	// DailyThresholdMinutes of qualifying work must accumulate on a day
	// before it counts toward the streak.
	DailyThresholdMinutes = 60
)

// State is the persisted streak record. Zero LastWorkDate means no
// qualifying work has ever been recorded.
type State struct {
	CurrentStreak       int
	LastWorkDate        time.Time
	LastSessionEnd      time.Time
	ConsecutiveWorkDays int
}

// GraceStatus describes the remaining forgiveness window.
type GraceStatus struct {
	Available        bool
	HoursRemaining   int64
	MinutesRemaining int64
	// DaysUntilEarned is reserved for an earn-based grace gate; grace is
	// currently unconditional so it is always zero.
	DaysUntilEarned int
	Urgent          bool
}

// graceAvailable reports whether the one-day forgiveness applies. It is
// unconditionally true today; State is passed so an earn-based gate can be
// added without touching callers.
func graceAvailable(State) bool {
	return true
}

// Advance applies one qualifying work day to the state. Callers invoke it
// only once the daily qualifying-minutes threshold is crossed.
func Advance(state State, workDate, sessionEnd time.Time) State {
	streak, consecutive := 1, 1
	if !state.LastWorkDate.IsZero() {
		switch gap := sessiondomain.DaysBetween(state.LastWorkDate, workDate); {
		case gap == 0:
			streak, consecutive = state.CurrentStreak, state.ConsecutiveWorkDays
		case gap == 1:
			streak, consecutive = state.CurrentStreak+1, state.ConsecutiveWorkDays+1
		case gap == 2 && graceAvailable(state):
			// The grace period absorbs the missed day; the streak continues
			// but the no-grace run starts over.
			streak, consecutive = state.CurrentStreak+1, 1
		}
	}
	return State{
		CurrentStreak:       streak,
		LastWorkDate:        sessiondomain.DateOf(workDate),
		LastSessionEnd:      sessionEnd,
		ConsecutiveWorkDays: consecutive,
	}
}

// Validated returns the streak as it should be displayed: stored state is
// never decremented on write, so reads must lazily reset a streak whose
// grace window has long expired.
func Validated(state State, now time.Time) int {
	if state.LastSessionEnd.IsZero() {
		return state.CurrentStreak
	}
	hoursSince := int64(now.Sub(state.LastSessionEnd).Hours())
	maxHours := int64(24)
	if graceAvailable(state) {
		maxHours = GracePeriodHours
	}
	if hoursSince > maxHours+24 {
		return 0
	}
	return state.CurrentStreak
}

// Grace computes the remaining forgiveness window relative to now.
func Grace(state State, now time.Time) GraceStatus {
	if state.LastSessionEnd.IsZero() {
		return GraceStatus{Available: true, HoursRemaining: GracePeriodHours}
	}
	since := now.Sub(state.LastSessionEnd)
	hoursRemaining := GracePeriodHours - int64(since.Hours())
	if hoursRemaining < 0 {
		hoursRemaining = 0
	}
	totalMinutesRemaining := GracePeriodHours*60 - int64(since.Minutes())
	if totalMinutesRemaining < 0 {
		totalMinutesRemaining = 0
	}
	return GraceStatus{
		Available:        true,
		HoursRemaining:   hoursRemaining,
		MinutesRemaining: totalMinutesRemaining % 60,
		Urgent:           hoursRemaining >= 1 && hoursRemaining < UrgentThresholdHours,
	}
}

// AtRisk reports whether the streak will be lost without work today.
func AtRisk(state State, grace GraceStatus, now time.Time) bool {
	if state.CurrentStreak == 0 || state.LastWorkDate.IsZero() {
		return false
	}
	if sessiondomain.DaysBetween(state.LastWorkDate, now) == 0 {
		// Already worked today.
		return false
	}
	return grace.HoursRemaining <= UrgentThresholdHours
}

// Goals are the configurable daily hour targets shown next to day progress.
type Goals struct {
	DayJobHours   float64
	SideWorkHours float64
}

func DefaultGoals() Goals {
	return Goals{DayJobHours: 7.5, SideWorkHours: 4.0}
}
