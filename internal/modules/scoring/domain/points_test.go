package domain

import (
	"math"
	"testing"
	"time"

	sessiondomain "grind/internal/modules/session/domain"
)

// 2026-03-11 is a Wednesday, 2026-03-14 a Saturday.
func weekday(h, m int) time.Time {
	return time.Date(2026, 3, 11, h, m, 0, 0, time.Local)
}

func saturday(h, m int) time.Time {
	return time.Date(2026, 3, 14, h, m, 0, 0, time.Local)
}

func TestClassifyWeekdayBands(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		start time.Time
		want  sessiondomain.Category
	}{
		{"weekday early morning", weekday(6, 0), sessiondomain.CategoryEarlyMorning},
		{"weekday early band end is exclusive", weekday(8, 0), sessiondomain.CategorySideWork},
		{"weekday office hours", weekday(10, 0), sessiondomain.CategoryDayJob},
		{"weekday day-job band start", weekday(9, 0), sessiondomain.CategoryDayJob},
		{"weekday day-job band end is exclusive", weekday(15, 0), sessiondomain.CategorySideWork},
		{"weekday evening", weekday(18, 0), sessiondomain.CategorySideWork},
		{"weekday late night", weekday(23, 30), sessiondomain.CategorySideWork},
		{"weekday gap between bands", weekday(8, 30), sessiondomain.CategorySideWork},
	}
	for _, tc := range cases {
		if got := Classify(tc.start); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestClassifyWeekendNeverDayJob(t *testing.T) {
	t.Parallel()
	if got := Classify(saturday(6, 0)); got != sessiondomain.CategoryEarlyMorning {
		t.Fatalf("saturday 06:00 must be early morning, got %s", got)
	}
	if got := Classify(saturday(10, 0)); got != sessiondomain.CategorySideWork {
		t.Fatalf("saturday 10:00 must be side work, got %s", got)
	}
	sunday := time.Date(2026, 3, 15, 11, 0, 0, 0, time.Local)
	if got := Classify(sunday); got != sessiondomain.CategorySideWork {
		t.Fatalf("sunday office hours must be side work, got %s", got)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateFirstSideWorkSessionOfDay(t *testing.T) {
	t.Parallel()
	// First qualifying session, 2h side work, no streak yet:
	// base 2.0 + 0.5 bonus, multiplier 1.0.
	res := Calculate(weekday(18, 0), 120, 0, true)
	if res.Category != sessiondomain.CategorySideWork {
		t.Fatalf("expected side work, got %s", res.Category)
	}
	if !almostEqual(res.BasePoints, 2.0) || !almostEqual(res.Points, 2.5) {
		t.Fatalf("expected base 2.0 total 2.5, got base %.4f total %.4f", res.BasePoints, res.Points)
	}
	if res.Multiplier != 1.0 {
		t.Fatalf("expected multiplier 1.0, got %.2f", res.Multiplier)
	}
}

func TestCalculateSecondEarlyMorningSessionWithStreak(t *testing.T) {
	t.Parallel()
	// Second qualifying session, 1h early morning, streak 10:
	// base 1.5, no bonus, multiplier 1.10 -> 1.65.
	res := Calculate(weekday(6, 0), 60, 10, false)
	if !almostEqual(res.BasePoints, 1.5) || !almostEqual(res.Points, 1.65) {
		t.Fatalf("expected base 1.5 total 1.65, got base %.4f total %.4f", res.BasePoints, res.Points)
	}
	if !almostEqual(res.Multiplier, 1.10) {
		t.Fatalf("expected multiplier 1.10, got %.2f", res.Multiplier)
	}
}

func TestCalculateDayJobNeverBonusedOrMultiplied(t *testing.T) {
	t.Parallel()
	for _, streak := range []int{0, 3, 7, 30, 365} {
		res := Calculate(weekday(10, 0), 240, streak, true)
		if res.Category != sessiondomain.CategoryDayJob {
			t.Fatalf("expected day job, got %s", res.Category)
		}
		if !almostEqual(res.Points, 1.0) || res.Multiplier != 1.0 {
			t.Fatalf("streak %d: expected flat 1.0 points multiplier 1.0, got %.4f x%.2f",
				streak, res.Points, res.Multiplier)
		}
	}
}

func TestCalculateBonusAddedBeforeMultiplier(t *testing.T) {
	t.Parallel()
	// 1h side work, first of day, streak 7: (1.0 + 0.5) * 1.15 = 1.725.
	res := Calculate(weekday(18, 0), 60, 7, true)
	if !almostEqual(res.Points, 1.725) {
		t.Fatalf("expected 1.725, got %.4f", res.Points)
	}
}

func TestMultiplierMonotonic(t *testing.T) {
	t.Parallel()
	prev := 0.0
	for streak := 0; streak <= 60; streak++ {
		m := Multiplier(streak)
		if m < prev {
			t.Fatalf("multiplier decreased at streak %d: %.2f < %.2f", streak, m, prev)
		}
		prev = m
	}
	if Multiplier(2) != 1.0 || Multiplier(3) != 1.10 || Multiplier(7) != 1.15 || Multiplier(30) != 1.20 {
		t.Fatalf("multiplier thresholds wrong")
	}
}

func TestBonusPercentMatchesMultiplier(t *testing.T) {
	t.Parallel()
	for _, streak := range []int{0, 2, 3, 6, 7, 29, 30, 100} {
		want := int(math.Round((Multiplier(streak) - 1.0) * 100))
		if got := BonusPercent(streak); got != want {
			t.Fatalf("streak %d: bonus percent %d does not match multiplier, want %d", streak, got, want)
		}
	}
}
