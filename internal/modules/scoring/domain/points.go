package domain

import (
	"time"

	sessiondomain "grind/internal/modules/session/domain"
)

// Hourly point rates per category and the flat bonus for the first
// qualifying session of a day.
const (
	DayJobRate        = 0.25
	SideWorkRate      = 1.0
	EarlyMorningRate  = 1.5
	FirstSessionBonus = 0.5
)

// Fixed local time-of-day bands, in minutes from midnight. Band starts are
// inclusive, ends exclusive.
const (
	earlyMorningStart = 5 * 60
	earlyMorningEnd   = 8 * 60
	dayJobStart       = 9 * 60
	dayJobEnd         = 15 * 60
)

// Result carries the final score together with the pieces that produced it,
// so callers can display the breakdown.
type Result struct {
	Points     float64
	BasePoints float64
	Multiplier float64
	Category   sessiondomain.Category
}

// Classify maps a session start time to its category. Weekends never
// produce DAY_JOB: outside the early-morning band everything is side work.
func Classify(start time.Time) sessiondomain.Category {
	minutes := start.Hour()*60 + start.Minute()
	early := minutes >= earlyMorningStart && minutes < earlyMorningEnd

	if wd := start.Weekday(); wd == time.Saturday || wd == time.Sunday {
		if early {
			return sessiondomain.CategoryEarlyMorning
		}
		return sessiondomain.CategorySideWork
	}

	switch {
	case early:
		return sessiondomain.CategoryEarlyMorning
	case minutes >= dayJobStart && minutes < dayJobEnd:
		return sessiondomain.CategoryDayJob
	default:
		return sessiondomain.CategorySideWork
	}
}

// Calculate scores a finished interval. The first-of-day bonus and the
// streak multiplier apply only to qualifying (non-DAY_JOB) categories; the
// bonus is added before the multiplier.
func Calculate(start time.Time, durationMinutes int64, streakDays int, firstOfDay bool) Result {
	hours := float64(durationMinutes) / 60.0
	category := Classify(start)

	var base float64
	switch category {
	case sessiondomain.CategoryDayJob:
		base = hours * DayJobRate
	case sessiondomain.CategorySideWork:
		base = hours * SideWorkRate
	case sessiondomain.CategoryEarlyMorning:
		base = hours * EarlyMorningRate
	}

	total := base
	multiplier := 1.0
	if category.Qualifying() {
		if firstOfDay {
			total += FirstSessionBonus
		}
		multiplier = Multiplier(streakDays)
		total *= multiplier
	}

	return Result{
		Points:     total,
		BasePoints: base,
		Multiplier: multiplier,
		Category:   category,
	}
}

// Multiplier returns the streak multiplier for qualifying categories.
// It is monotonically non-decreasing in streakDays.
func Multiplier(streakDays int) float64 {
	switch {
	case streakDays >= 30:
		return 1.20
	case streakDays >= 7:
		return 1.15
	case streakDays >= 3:
		return 1.10
	default:
		return 1.0
	}
}

// BonusPercent is Multiplier expressed as a whole percentage for display.
func BonusPercent(streakDays int) int {
	switch {
	case streakDays >= 30:
		return 20
	case streakDays >= 7:
		return 15
	case streakDays >= 3:
		return 10
	default:
		return 0
	}
}
