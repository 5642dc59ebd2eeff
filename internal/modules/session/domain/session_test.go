package domain

import (
	"testing"
	"time"
)

func TestCategoryQualifying(t *testing.T) {
	t.Parallel()
	if CategoryDayJob.Qualifying() {
		t.Fatalf("day job must not qualify")
	}
	if !CategorySideWork.Qualifying() || !CategoryEarlyMorning.Qualifying() {
		t.Fatalf("side work and early morning must qualify")
	}
	if Category("").Qualifying() {
		t.Fatalf("undetermined category must not qualify")
	}
}

func TestCompletedAndEditable(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 12, 14, 0, 0, 0, time.Local)
	s := Session{StartTime: now.Add(-2 * time.Hour)}
	if s.Completed() {
		t.Fatalf("session without end time must not be completed")
	}
	s.EndTime = now
	if !s.Completed() {
		t.Fatalf("session with end time must be completed")
	}
	if !s.EditableOn(now) {
		t.Fatalf("session started today must be editable")
	}
	if s.EditableOn(now.AddDate(0, 0, 1)) {
		t.Fatalf("session must not be editable the next day")
	}
}

func TestDaysBetweenIgnoresClockTime(t *testing.T) {
	t.Parallel()
	a := time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local)
	b := time.Date(2026, 3, 11, 0, 1, 0, 0, time.Local)
	if got := DaysBetween(a, b); got != 1 {
		t.Fatalf("expected 1 day across midnight, got %d", got)
	}
	if got := DaysBetween(b, a); got != -1 {
		t.Fatalf("expected -1 day reversed, got %d", got)
	}
	if got := DaysBetween(a, a.Add(30*time.Minute)); got != 0 {
		t.Fatalf("expected same day, got %d", got)
	}
}

func TestDaysBetweenSpansDSTTransitions(t *testing.T) {
	t.Parallel()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	// 2025-03-09 is the 23-hour spring-forward day in this zone.
	springEve := time.Date(2025, 3, 8, 20, 0, 0, 0, loc)
	springDay := time.Date(2025, 3, 9, 20, 0, 0, 0, loc)
	after := time.Date(2025, 3, 10, 20, 0, 0, 0, loc)
	if got := DaysBetween(springDay, after); got != 1 {
		t.Fatalf("across spring-forward: got %d, want 1", got)
	}
	if got := DaysBetween(springEve, after); got != 2 {
		t.Fatalf("two days across spring-forward: got %d, want 2", got)
	}

	// 2025-11-02 is the 25-hour fall-back day.
	fallDay := time.Date(2025, 11, 2, 20, 0, 0, 0, loc)
	fallNext := time.Date(2025, 11, 3, 20, 0, 0, 0, loc)
	if got := DaysBetween(fallDay, fallNext); got != 1 {
		t.Fatalf("across fall-back: got %d, want 1", got)
	}
}
