package domain

import (
	"testing"
	"time"

	sessiondomain "grind/internal/modules/session/domain"
)

// Wednesday.
var badgeToday = time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)

func completedSession(start time.Time, durationMinutes int64, category sessiondomain.Category) sessiondomain.Session {
	return sessiondomain.Session{
		StartTime:       start,
		EndTime:         start.Add(time.Duration(durationMinutes) * time.Minute),
		DurationMinutes: durationMinutes,
		Category:        category,
	}
}

func contains(badges []Badge, want Badge) bool {
	for _, b := range badges {
		if b == want {
			return true
		}
	}
	return false
}

func TestEarnedTimeOfDayBadges(t *testing.T) {
	t.Parallel()

	var sessions []sessiondomain.Session
	for i := 0; i < 5; i++ {
		day := badgeToday.AddDate(0, 0, -i)
		morning := time.Date(day.Year(), day.Month(), day.Day(), 6, 0, 0, 0, time.Local)
		evening := time.Date(day.Year(), day.Month(), day.Day(), 21, 0, 0, 0, time.Local)
		sessions = append(sessions,
			completedSession(morning, 30, sessiondomain.CategoryEarlyMorning),
			completedSession(evening, 30, sessiondomain.CategorySideWork),
		)
	}

	earned := Earned(sessions, badgeToday, 0, 0)
	if !contains(earned, EarlyBird) {
		t.Error("expected early bird for 5 morning sessions in window")
	}
	if !contains(earned, NightOwl) {
		t.Error("expected night owl for 5 evening sessions in window")
	}
}

func TestEarnedIgnoresSessionsOutsideWindow(t *testing.T) {
	t.Parallel()

	var sessions []sessiondomain.Session
	for i := 10; i < 15; i++ {
		day := badgeToday.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 6, 0, 0, 0, time.Local)
		sessions = append(sessions, completedSession(start, 30, sessiondomain.CategoryEarlyMorning))
	}

	if earned := Earned(sessions, badgeToday, 0, 0); contains(earned, EarlyBird) {
		t.Error("sessions older than the window must not count")
	}
}

func TestEarnedIgnoresRunningSessions(t *testing.T) {
	t.Parallel()

	start := time.Date(badgeToday.Year(), badgeToday.Month(), badgeToday.Day(), 6, 0, 0, 0, time.Local)
	running := sessiondomain.Session{StartTime: start, DurationMinutes: 240, Category: sessiondomain.CategorySideWork}

	if earned := Earned([]sessiondomain.Session{running}, badgeToday, 0, 0); contains(earned, MarathonRunner) {
		t.Error("a session without an end time must not earn badges")
	}
}

func TestEarnedMarathonRunner(t *testing.T) {
	t.Parallel()

	long := completedSession(badgeToday.AddDate(0, 0, -1), 200, sessiondomain.CategorySideWork)
	if earned := Earned([]sessiondomain.Session{long}, badgeToday, 0, 0); !contains(earned, MarathonRunner) {
		t.Error("expected marathon runner for a 200 minute session")
	}

	short := completedSession(badgeToday.AddDate(0, 0, -1), 179, sessiondomain.CategorySideWork)
	if earned := Earned([]sessiondomain.Session{short}, badgeToday, 0, 0); contains(earned, MarathonRunner) {
		t.Error("179 minutes must not earn marathon runner")
	}
}

func TestEarnedPointMilestonesAreExclusive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		points float64
		want   Badge
		not    []Badge
	}{
		{points: 150, want: PointCollector, not: []Badge{PointExpert, PointMaster}},
		{points: 600, want: PointExpert, not: []Badge{PointCollector, PointMaster}},
		{points: 1200, want: PointMaster, not: []Badge{PointCollector, PointExpert}},
	}
	for _, tt := range tests {
		earned := Earned(nil, badgeToday, 0, tt.points)
		if !contains(earned, tt.want) {
			t.Errorf("points=%v: missing %s", tt.points, tt.want)
		}
		for _, b := range tt.not {
			if contains(earned, b) {
				t.Errorf("points=%v: unexpected %s", tt.points, b)
			}
		}
	}
}

func TestEarnedStreakBadges(t *testing.T) {
	t.Parallel()

	week := Earned(nil, badgeToday, 7, 0)
	if !contains(week, WeekStreak) || contains(week, MonthStreak) {
		t.Errorf("streak=7: got %v, want week streak only", week)
	}

	month := Earned(nil, badgeToday, 30, 0)
	if !contains(month, WeekStreak) || !contains(month, MonthStreak) {
		t.Errorf("streak=30: got %v, want both streak badges", month)
	}
}

func TestEarnedConsistent(t *testing.T) {
	t.Parallel()

	var sessions []sessiondomain.Session
	for i := 0; i < 5; i++ {
		day := badgeToday.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 6, 0, 0, 0, time.Local)
		sessions = append(sessions, completedSession(start, 45, sessiondomain.CategoryEarlyMorning))
	}
	if earned := Earned(sessions, badgeToday, 0, 0); !contains(earned, Consistent) {
		t.Error("expected consistent for 5 straight days of early morning work")
	}

	// Day job does not qualify for the consistency badge.
	var dayJob []sessiondomain.Session
	for i := 0; i < 5; i++ {
		day := badgeToday.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, time.Local)
		dayJob = append(dayJob, completedSession(start, 45, sessiondomain.CategoryDayJob))
	}
	if earned := Earned(dayJob, badgeToday, 0, 0); contains(earned, Consistent) {
		t.Error("day job days must not earn consistent")
	}
}

func TestEarnedConsistentBreaksOnGap(t *testing.T) {
	t.Parallel()

	var sessions []sessiondomain.Session
	for _, offset := range []int{0, 1, 3, 4, 5} {
		day := badgeToday.AddDate(0, 0, -offset)
		start := time.Date(day.Year(), day.Month(), day.Day(), 6, 0, 0, 0, time.Local)
		sessions = append(sessions, completedSession(start, 45, sessiondomain.CategoryEarlyMorning))
	}
	if earned := Earned(sessions, badgeToday, 0, 0); contains(earned, Consistent) {
		t.Error("a missed day two days ago must break the run")
	}
}

func TestEarnedDiversified(t *testing.T) {
	t.Parallel()

	day := badgeToday.AddDate(0, 0, -1)
	at := func(hour int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.Local)
	}
	sessions := []sessiondomain.Session{
		completedSession(at(6), 60, sessiondomain.CategoryEarlyMorning),
		completedSession(at(10), 60, sessiondomain.CategoryDayJob),
		completedSession(at(19), 60, sessiondomain.CategorySideWork),
	}
	if earned := Earned(sessions, badgeToday, 0, 0); !contains(earned, Diversified) {
		t.Error("expected diversified for all three categories in one day")
	}

	if earned := Earned(sessions[:2], badgeToday, 0, 0); contains(earned, Diversified) {
		t.Error("two categories must not earn diversified")
	}
}

func TestConsecutiveWeekendsToleratesCurrentWeek(t *testing.T) {
	t.Parallel()

	// Saturdays of the four weeks before the current one; the current week's
	// weekend has not happened yet.
	var sessions []sessiondomain.Session
	for _, saturday := range []time.Time{
		time.Date(2025, 3, 8, 14, 0, 0, 0, time.Local),
		time.Date(2025, 3, 1, 14, 0, 0, 0, time.Local),
		time.Date(2025, 2, 22, 14, 0, 0, 0, time.Local),
		time.Date(2025, 2, 15, 14, 0, 0, 0, time.Local),
	} {
		sessions = append(sessions, completedSession(saturday, 60, sessiondomain.CategorySideWork))
	}

	if got := consecutiveWeekends(sessions, badgeToday); got != 4 {
		t.Errorf("consecutiveWeekends = %d, want 4", got)
	}
	if earned := Earned(sessions, badgeToday, 0, 0); !contains(earned, WeekendWarrior) {
		t.Error("expected weekend warrior")
	}
}

func TestConsecutiveWeekendsBreaksOnGap(t *testing.T) {
	t.Parallel()

	// A missed weekend two weeks back cuts the run even though older
	// weekends were worked.
	var sessions []sessiondomain.Session
	for _, saturday := range []time.Time{
		time.Date(2025, 3, 8, 14, 0, 0, 0, time.Local),
		time.Date(2025, 2, 22, 14, 0, 0, 0, time.Local),
		time.Date(2025, 2, 15, 14, 0, 0, 0, time.Local),
	} {
		sessions = append(sessions, completedSession(saturday, 60, sessiondomain.CategorySideWork))
	}

	if got := consecutiveWeekends(sessions, badgeToday); got != 1 {
		t.Errorf("consecutiveWeekends = %d, want 1", got)
	}
}

func TestHighlightedKeepsSmallSets(t *testing.T) {
	t.Parallel()

	badges := []Badge{Centurion, EarlyBird}
	got := Highlighted(badges, DefaultHighlightCap)
	if len(got) != 2 || got[0] != Centurion || got[1] != EarlyBird {
		t.Errorf("Highlighted = %v, want input unchanged", got)
	}
}

func TestHighlightedPrefersHarderBadges(t *testing.T) {
	t.Parallel()

	badges := []Badge{Centurion, PointCollector, EarlyBird, MonthStreak, Diversified}
	got := Highlighted(badges, DefaultHighlightCap)
	want := []Badge{MonthStreak, EarlyBird, Diversified}
	if len(got) != len(want) {
		t.Fatalf("Highlighted = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Highlighted[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
