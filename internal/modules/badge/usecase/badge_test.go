package usecase_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"grind/internal/modules/badge/dto"
	"grind/internal/modules/badge/usecase"
	sessionout "grind/internal/modules/session/adapter/out"
	sessiondomain "grind/internal/modules/session/domain"
	streakout "grind/internal/modules/streak/adapter/out"
	streakservice "grind/internal/modules/streak/service"
	streakusecase "grind/internal/modules/streak/usecase"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "grind.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func badgeByCode(badges []dto.BadgeOutput, code string) (dto.BadgeOutput, bool) {
	for _, b := range badges {
		if b.Code == code {
			return b, true
		}
	}
	return dto.BadgeOutput{}, false
}

func TestBadgesFromRecordedHistory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openDB(t)
	clk := &fakeClock{now: time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)} // Wednesday

	sessions, err := sessionout.NewSQLiteSessionStore(db)
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	settings, err := streakout.NewSQLiteSettingsStore(db)
	if err != nil {
		t.Fatalf("settings store: %v", err)
	}
	streak := streakusecase.NewInteractor(streakservice.NewStreakService(clk, settings))
	uc := usecase.NewInteractor(sessions, streak, clk)

	// Five straight days of early morning work ending today, 24 points each.
	for i := 0; i < 5; i++ {
		day := clk.now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 6, 0, 0, 0, time.Local)
		_, err := sessions.Insert(ctx, sessiondomain.Session{
			StartTime:       start,
			EndTime:         start.Add(30 * time.Minute),
			DurationMinutes: 30,
			PointsEarned:    24,
			Category:        sessiondomain.CategoryEarlyMorning,
		})
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}

	earned, err := uc.Earned(ctx)
	if err != nil {
		t.Fatalf("earned: %v", err)
	}
	for _, code := range []string{"early_bird", "point_collector", "consistent"} {
		if _, ok := badgeByCode(earned, code); !ok {
			t.Errorf("missing %s in %v", code, earned)
		}
	}
	if _, ok := badgeByCode(earned, "centurion"); ok {
		t.Error("centurion must need 100 sessions")
	}

	highlighted, err := uc.Highlighted(ctx)
	if err != nil {
		t.Fatalf("highlighted: %v", err)
	}
	if len(highlighted) > 3 {
		t.Errorf("highlighted len = %d, want at most 3", len(highlighted))
	}

	catalog, err := uc.Catalog(ctx)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(catalog) != 12 {
		t.Fatalf("catalog len = %d, want 12", len(catalog))
	}
	if b, _ := badgeByCode(catalog, "early_bird"); !b.Earned {
		t.Error("catalog must flag early_bird as earned")
	}
	if b, _ := badgeByCode(catalog, "point_master"); b.Earned {
		t.Error("catalog must not flag point_master")
	}
}

func TestStreakBadgesUseValidatedStreak(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openDB(t)
	clk := &fakeClock{now: time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)}

	sessions, err := sessionout.NewSQLiteSessionStore(db)
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	settings, err := streakout.NewSQLiteSettingsStore(db)
	if err != nil {
		t.Fatalf("settings store: %v", err)
	}
	streak := streakusecase.NewInteractor(streakservice.NewStreakService(clk, settings))
	uc := usecase.NewInteractor(sessions, streak, clk)

	// Build a 7-day streak ending yesterday.
	for i := 7; i >= 1; i-- {
		day := clk.now.AddDate(0, 0, -i)
		end := time.Date(day.Year(), day.Month(), day.Day(), 21, 0, 0, 0, time.Local)
		if err := streak.Record(ctx, day, end); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	earned, err := uc.Earned(ctx)
	if err != nil {
		t.Fatalf("earned: %v", err)
	}
	if _, ok := badgeByCode(earned, "week_streak"); !ok {
		t.Errorf("expected week_streak, got %v", earned)
	}

	// Let the streak lapse well past the grace window; the badge goes away.
	clk.now = clk.now.AddDate(0, 0, 4)
	earned, err = uc.Earned(ctx)
	if err != nil {
		t.Fatalf("earned after lapse: %v", err)
	}
	if _, ok := badgeByCode(earned, "week_streak"); ok {
		t.Error("lapsed streak must drop week_streak")
	}
}
