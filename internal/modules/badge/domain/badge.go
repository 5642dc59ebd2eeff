package domain

import (
	"sort"
	"time"

	sessiondomain "grind/internal/modules/session/domain"
)

// Badge identifies one achievement. Badges are never persisted: the full set
// is recomputed from session history, validated streak, and total points on
// every refresh, so a badge whose condition lapses disappears again unless
// it is permanent (milestones the UI treats as sticky).
type Badge string

const (
	EarlyBird      Badge = "early_bird"
	NightOwl       Badge = "night_owl"
	WeekendWarrior Badge = "weekend_warrior"
	MarathonRunner Badge = "marathon_runner"
	Centurion      Badge = "centurion"
	PointCollector Badge = "point_collector"
	PointExpert    Badge = "point_expert"
	PointMaster    Badge = "point_master"
	WeekStreak     Badge = "week_streak"
	MonthStreak    Badge = "month_streak"
	Consistent     Badge = "consistent"
	Diversified    Badge = "diversified"
)

// All lists the catalog in display order.
var All = []Badge{
	EarlyBird,
	NightOwl,
	WeekendWarrior,
	MarathonRunner,
	Centurion,
	PointCollector,
	PointExpert,
	PointMaster,
	WeekStreak,
	MonthStreak,
	Consistent,
	Diversified,
}

type Meta struct {
	Name        string
	Description string
	Icon        string
	Permanent   bool
}

func (b Badge) Meta() Meta {
	switch b {
	case EarlyBird:
		return Meta{"Early Bird", "5+ early morning sessions in 7 days", "🐦", false}
	case NightOwl:
		return Meta{"Night Owl", "5+ sessions after 8 PM in 7 days", "🦉", false}
	case WeekendWarrior:
		return Meta{"Weekend Warrior", "Worked 4+ consecutive weekends", "⚔️", false}
	case MarathonRunner:
		return Meta{"Marathon Runner", "Completed a 3+ hour session", "🏃", false}
	case Centurion:
		return Meta{"Centurion", "100 total sessions completed", "💯", true}
	case PointCollector:
		return Meta{"Point Collector", "Reached 100 points", "⭐", true}
	case PointExpert:
		return Meta{"Point Expert", "Reached 500 points", "🌟", true}
	case PointMaster:
		return Meta{"Point Master", "Reached 1000 points", "🌟🌟", true}
	case WeekStreak:
		return Meta{"Week Streak", "7+ day streak", "🔥", false}
	case MonthStreak:
		return Meta{"Month Streak", "30+ day streak", "🔥🔥", false}
	case Consistent:
		return Meta{"Consistent", "Same productive session type 5 days in a row", "📅", false}
	case Diversified:
		return Meta{"Diversified", "All 3 session types in one day", "🎨", false}
	}
	return Meta{Name: string(b)}
}

const (
	earlyMorningStart = 5 * 60
	earlyMorningEnd   = 8 * 60
	nightStart        = 20 * 60

	marathonMinutes   = 180
	centurionSessions = 100
	timeBadgeSessions = 5

	recentWindowDays = 7
	consistentDays   = 5

	weekendWeeksRequired = 4
	weekendScanWeeks     = 8

	// DefaultHighlightCap limits the highlighted subset shown on the
	// dashboard.
	DefaultHighlightCap = 3
)

// Earned evaluates the full badge set. Only completed sessions count; the
// trailing 7-day window includes today and the day exactly 7 days back.
func Earned(sessions []sessiondomain.Session, today time.Time, currentStreak int, totalPoints float64) []Badge {
	var completed []sessiondomain.Session
	for _, sess := range sessions {
		if sess.Completed() {
			completed = append(completed, sess)
		}
	}
	windowStart := sessiondomain.DateOf(today).AddDate(0, 0, -recentWindowDays)
	var recent []sessiondomain.Session
	for _, sess := range completed {
		if !sess.StartTime.Before(windowStart) {
			recent = append(recent, sess)
		}
	}

	var earned []Badge

	earlyCount, nightCount := 0, 0
	for _, sess := range recent {
		minutes := sess.StartTime.Hour()*60 + sess.StartTime.Minute()
		if minutes >= earlyMorningStart && minutes < earlyMorningEnd {
			earlyCount++
		}
		if minutes >= nightStart {
			nightCount++
		}
	}
	if earlyCount >= timeBadgeSessions {
		earned = append(earned, EarlyBird)
	}
	if nightCount >= timeBadgeSessions {
		earned = append(earned, NightOwl)
	}

	if consecutiveWeekends(completed, today) >= weekendWeeksRequired {
		earned = append(earned, WeekendWarrior)
	}

	for _, sess := range recent {
		if sess.DurationMinutes >= marathonMinutes {
			earned = append(earned, MarathonRunner)
			break
		}
	}

	if len(completed) >= centurionSessions {
		earned = append(earned, Centurion)
	}

	// Point milestones are mutually exclusive: the highest reached wins.
	switch {
	case totalPoints >= 1000:
		earned = append(earned, PointMaster)
	case totalPoints >= 500:
		earned = append(earned, PointExpert)
	case totalPoints >= 100:
		earned = append(earned, PointCollector)
	}

	if currentStreak >= 7 {
		earned = append(earned, WeekStreak)
	}
	if currentStreak >= 30 {
		earned = append(earned, MonthStreak)
	}

	if hasConsistentCategory(completed, today, sessiondomain.CategoryEarlyMorning) ||
		hasConsistentCategory(completed, today, sessiondomain.CategorySideWork) {
		earned = append(earned, Consistent)
	}

	if hasDiversifiedDay(recent) {
		earned = append(earned, Diversified)
	}

	return earned
}

// consecutiveWeekends scans backward week by week, up to the scan horizon,
// counting weeks whose Saturday or Sunday has a session. The current week is
// tolerated without breaking the run since its weekend may not have arrived.
func consecutiveWeekends(sessions []sessiondomain.Session, today time.Time) int {
	if len(sessions) == 0 {
		return 0
	}
	count := 0
	checkDate := sessiondomain.DateOf(today)
	for i := 0; i < weekendScanWeeks; i++ {
		isoWeekday := (int(checkDate.Weekday())+6)%7 + 1
		weekStart := checkDate.AddDate(0, 0, -(isoWeekday - 1))
		saturday := weekStart.AddDate(0, 0, 5)
		sunday := weekStart.AddDate(0, 0, 6)

		hasWeekendSession := false
		for _, sess := range sessions {
			if sessiondomain.SameDay(sess.StartTime, saturday) || sessiondomain.SameDay(sess.StartTime, sunday) {
				hasWeekendSession = true
				break
			}
		}

		if hasWeekendSession {
			count++
		} else if i > 0 {
			break
		}
		checkDate = checkDate.AddDate(0, 0, -7)
	}
	return count
}

// hasConsistentCategory walks back day by day from today and stops at the
// first day missing the category.
func hasConsistentCategory(sessions []sessiondomain.Session, today time.Time, category sessiondomain.Category) bool {
	for i := 0; i < consistentDays; i++ {
		day := sessiondomain.DateOf(today).AddDate(0, 0, -i)
		found := false
		for _, sess := range sessions {
			if sess.Category == category && sessiondomain.SameDay(sess.StartTime, day) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func hasDiversifiedDay(sessions []sessiondomain.Session) bool {
	byDay := make(map[string]map[sessiondomain.Category]bool)
	for _, sess := range sessions {
		key := sess.StartTime.Format("2006-01-02")
		if byDay[key] == nil {
			byDay[key] = make(map[sessiondomain.Category]bool)
		}
		byDay[key][sess.Category] = true
	}
	for _, categories := range byDay {
		if categories[sessiondomain.CategoryDayJob] &&
			categories[sessiondomain.CategorySideWork] &&
			categories[sessiondomain.CategoryEarlyMorning] {
			return true
		}
	}
	return false
}

// highlightPriority orders badges hardest-to-maintain first for the
// truncated dashboard subset.
var highlightPriority = []Badge{
	MonthStreak,
	Consistent,
	WeekStreak,
	EarlyBird,
	NightOwl,
	MarathonRunner,
	WeekendWarrior,
	Diversified,
	PointMaster,
	PointExpert,
	PointCollector,
	Centurion,
}

func Highlighted(badges []Badge, max int) []Badge {
	if len(badges) <= max {
		return badges
	}
	rank := make(map[Badge]int, len(highlightPriority))
	for i, b := range highlightPriority {
		rank[b] = i
	}
	sorted := make([]Badge, len(badges))
	copy(sorted, badges)
	sort.SliceStable(sorted, func(a, b int) bool {
		return rank[sorted[a]] < rank[sorted[b]]
	})
	return sorted[:max]
}
