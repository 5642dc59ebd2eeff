package usecase_test

import (
	"context"
	"database/sql"
	"math"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	sessionadapter "grind/internal/modules/session/adapter/out"
	sessionout "grind/internal/modules/session/port/out"
	streakadapter "grind/internal/modules/streak/adapter/out"
	streakin "grind/internal/modules/streak/port/in"
	streakservice "grind/internal/modules/streak/service"
	streakusecase "grind/internal/modules/streak/usecase"
	timeradapter "grind/internal/modules/timer/adapter/out"
	timerin "grind/internal/modules/timer/port/in"
	"grind/internal/modules/timer/usecase"
	apperrors "grind/internal/platform/errors"
	"grind/internal/platform/tx"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

// Tuesday evening.
var tuesday = time.Date(2025, 1, 14, 19, 0, 0, 0, time.Local)

type fixture struct {
	timer    timerin.Usecase
	sessions sessionout.SessionStore
	streak   streakin.Usecase
}

func newFixture(t *testing.T, clk *fakeClock) fixture {
	t.Helper()
	dir := t.TempDir()
	db, err := sql.Open("sqlite", filepath.Join(dir, "grind.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sessions, err := sessionadapter.NewSQLiteSessionStore(db)
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	settings, err := streakadapter.NewSQLiteSettingsStore(db)
	if err != nil {
		t.Fatalf("settings store: %v", err)
	}
	streak := streakusecase.NewInteractor(streakservice.NewStreakService(clk, settings))
	timers := timeradapter.NewFileActiveTimerStore(filepath.Join(dir, "active-timer.json"))
	return fixture{
		timer:    usecase.NewInteractor(timers, sessions, streak, tx.NoopManager{}, clk),
		sessions: sessions,
		streak:   streak,
	}
}

func TestTimerLifecycleScoresAndRecordsStreak(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{
		tuesday,                        // start
		tuesday.Add(30 * time.Minute),  // pause
		tuesday.Add(40 * time.Minute),  // resume
		tuesday.Add(100 * time.Minute), // stop
	}}
	fx := newFixture(t, clk)

	start, err := fx.timer.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !start.Started || start.Category != "SIDE_WORK" {
		t.Fatalf("start = %+v", start)
	}

	if out, err := fx.timer.Pause(ctx); err != nil || !out.Changed {
		t.Fatalf("pause = %+v, %v", out, err)
	}
	if out, err := fx.timer.Resume(ctx); err != nil || !out.Changed {
		t.Fatalf("resume = %+v, %v", out, err)
	}

	stop, err := fx.timer.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !stop.Stopped || stop.Discarded {
		t.Fatalf("stop = %+v", stop)
	}
	if stop.DurationMinutes != 90 {
		t.Errorf("duration = %d, want 90 net of the pause", stop.DurationMinutes)
	}
	// 1.5h side work plus the first-of-day bonus, no streak multiplier yet.
	if math.Abs(stop.Points-2.0) > 1e-9 {
		t.Errorf("points = %v, want 2.0", stop.Points)
	}
	if !stop.FirstOfDay {
		t.Error("expected first-of-day bonus")
	}

	// 90 qualifying minutes crossed the daily threshold.
	if streak, _ := fx.streak.Current(ctx); streak != 1 {
		t.Errorf("streak = %d, want 1", streak)
	}

	sess, err := fx.sessions.GetByID(ctx, stop.SessionID)
	if err != nil {
		t.Fatalf("load settled session: %v", err)
	}
	if !sess.Completed() || sess.TotalPausedMinutes != 10 {
		t.Errorf("settled session = %+v", sess)
	}

	status, err := fx.timer.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Status != "IDLE" {
		t.Errorf("status after stop = %s, want IDLE", status.Status)
	}
}

func TestStopCountsSubMinutePauses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{
		tuesday,                                      // start
		tuesday.Add(30 * time.Minute),                // pause
		tuesday.Add(30*time.Minute + 90*time.Second), // resume
		tuesday.Add(93 * time.Minute),                // stop
	}}
	fx := newFixture(t, clk)

	if _, err := fx.timer.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := fx.timer.Pause(ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if _, err := fx.timer.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	stop, err := fx.timer.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	// 93 minutes of wall time minus a 90-second pause is 5490 worked
	// seconds, 91 whole minutes. Dropping the pause below a minute must
	// not round it away.
	if stop.DurationMinutes != 91 {
		t.Errorf("duration = %d, want 91", stop.DurationMinutes)
	}

	sess, err := fx.sessions.GetByID(ctx, stop.SessionID)
	if err != nil {
		t.Fatalf("load settled session: %v", err)
	}
	if sess.TotalPausedMinutes != 1 {
		t.Errorf("row pause minutes = %d, want 1", sess.TotalPausedMinutes)
	}
}

func TestStartIsNoOpWhileTimerActive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{tuesday}}
	fx := newFixture(t, clk)

	if out, err := fx.timer.Start(ctx); err != nil || !out.Started {
		t.Fatalf("first start = %+v, %v", out, err)
	}
	out, err := fx.timer.Start(ctx)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if out.Started {
		t.Error("second start must be a no-op")
	}
}

func TestStopDiscardsShortSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{
		tuesday,
		tuesday.Add(10 * time.Minute),
	}}
	fx := newFixture(t, clk)

	start, err := fx.timer.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	stop, err := fx.timer.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !stop.Stopped || !stop.Discarded {
		t.Fatalf("stop = %+v, want discarded", stop)
	}
	if _, err := fx.sessions.GetByID(ctx, start.SessionID); err != apperrors.ErrNotFound {
		t.Errorf("discarded row should be gone, got %v", err)
	}
	if streak, _ := fx.streak.Current(ctx); streak != 0 {
		t.Errorf("streak = %d, want 0 after a discarded session", streak)
	}
}

func TestStopUsesPersistedStartTime(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{
		tuesday,
		tuesday.Add(30 * time.Minute), // stop
	}}
	fx := newFixture(t, clk)

	start, err := fx.timer.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// An edit moves the start an hour earlier while the timer runs.
	sess, err := fx.sessions.GetByID(ctx, start.SessionID)
	if err != nil {
		t.Fatalf("load running session: %v", err)
	}
	sess.StartTime = tuesday.Add(-time.Hour)
	if err := fx.sessions.Update(ctx, sess); err != nil {
		t.Fatalf("update start: %v", err)
	}

	stop, err := fx.timer.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stop.DurationMinutes != 90 {
		t.Errorf("duration = %d, want 90 from the edited start", stop.DurationMinutes)
	}
	if !stop.StartTime.Equal(tuesday.Add(-time.Hour)) {
		t.Errorf("start = %v, want the edited time", stop.StartTime)
	}
}

func TestDayJobSessionNeverAdvancesStreak(t *testing.T) {
	t.Parallel()
	morning := time.Date(2025, 1, 14, 10, 0, 0, 0, time.Local)
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{
		morning,
		morning.Add(2 * time.Hour),
	}}
	fx := newFixture(t, clk)

	if _, err := fx.timer.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	stop, err := fx.timer.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stop.Category != "DAY_JOB" {
		t.Fatalf("category = %s, want DAY_JOB", stop.Category)
	}
	if math.Abs(stop.Points-0.5) > 1e-9 {
		t.Errorf("points = %v, want 0.5 (2h at the day-job rate)", stop.Points)
	}
	if stop.FirstOfDay {
		t.Error("day job never gets the first-of-day bonus")
	}
	if streak, _ := fx.streak.Current(ctx); streak != 0 {
		t.Errorf("streak = %d, want 0", streak)
	}
}

func TestStopWithoutTimerIsNoOp(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{tuesday}}
	fx := newFixture(t, clk)

	stop, err := fx.timer.Stop(context.Background())
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stop.Stopped {
		t.Error("stop without a timer must report nothing to do")
	}
}

func TestStatusTicksWhileRunning(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{
		tuesday,
		tuesday.Add(95 * time.Second),
	}}
	fx := newFixture(t, clk)

	if _, err := fx.timer.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	status, err := fx.timer.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Status != "RUNNING" || status.ElapsedSeconds != 95 {
		t.Errorf("status = %+v, want 95s running", status)
	}
}
