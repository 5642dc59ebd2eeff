package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"grind/internal/modules/streak/domain"
	streakout "grind/internal/modules/streak/port/out"
)

const (
	timeLayout = time.RFC3339
	dateLayout = "2006-01-02"
)

// SQLiteSettingsStore keeps the streak record and goal overrides in two
// single-row tables keyed by a fixed id.
type SQLiteSettingsStore struct {
	db *sql.DB
}

func NewSQLiteSettingsStore(db *sql.DB) (streakout.SettingsStore, error) {
	store := &SQLiteSettingsStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSettingsStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS streak_state (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  current_streak INTEGER NOT NULL DEFAULT 0,
  last_work_date TEXT NOT NULL DEFAULT '',
  last_session_end TEXT NOT NULL DEFAULT '',
  consecutive_work_days INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS daily_goals (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  day_job_hours REAL NOT NULL,
  side_work_hours REAL NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create settings tables: %w", err)
	}
	return nil
}

func (s *SQLiteSettingsStore) GetStreakState(ctx context.Context) (domain.State, error) {
	const stmt = `
SELECT current_streak, last_work_date, last_session_end, consecutive_work_days
FROM streak_state WHERE id = 1`
	var (
		state           domain.State
		workRaw, endRaw string
	)
	err := s.db.QueryRowContext(ctx, stmt).Scan(&state.CurrentStreak, &workRaw, &endRaw, &state.ConsecutiveWorkDays)
	if err == sql.ErrNoRows {
		return domain.State{}, nil
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("get streak state: %w", err)
	}
	if workRaw != "" {
		day, err := time.ParseInLocation(dateLayout, workRaw, time.Local)
		if err != nil {
			return domain.State{}, fmt.Errorf("parse last work date %q: %w", workRaw, err)
		}
		state.LastWorkDate = day
	}
	if endRaw != "" {
		end, err := time.Parse(timeLayout, endRaw)
		if err != nil {
			return domain.State{}, fmt.Errorf("parse last session end %q: %w", endRaw, err)
		}
		state.LastSessionEnd = end.Local()
	}
	return state, nil
}

func (s *SQLiteSettingsStore) PutStreakState(ctx context.Context, state domain.State) error {
	const stmt = `
INSERT INTO streak_state (id, current_streak, last_work_date, last_session_end, consecutive_work_days)
VALUES (1, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  current_streak = excluded.current_streak,
  last_work_date = excluded.last_work_date,
  last_session_end = excluded.last_session_end,
  consecutive_work_days = excluded.consecutive_work_days;
`
	workRaw, endRaw := "", ""
	if !state.LastWorkDate.IsZero() {
		workRaw = state.LastWorkDate.Format(dateLayout)
	}
	if !state.LastSessionEnd.IsZero() {
		endRaw = state.LastSessionEnd.Format(timeLayout)
	}
	if _, err := s.db.ExecContext(ctx, stmt, state.CurrentStreak, workRaw, endRaw, state.ConsecutiveWorkDays); err != nil {
		return fmt.Errorf("put streak state: %w", err)
	}
	return nil
}

func (s *SQLiteSettingsStore) GetGoals(ctx context.Context) (domain.Goals, bool, error) {
	const stmt = `SELECT day_job_hours, side_work_hours FROM daily_goals WHERE id = 1`
	var goals domain.Goals
	err := s.db.QueryRowContext(ctx, stmt).Scan(&goals.DayJobHours, &goals.SideWorkHours)
	if err == sql.ErrNoRows {
		return domain.Goals{}, false, nil
	}
	if err != nil {
		return domain.Goals{}, false, fmt.Errorf("get goals: %w", err)
	}
	return goals, true, nil
}

func (s *SQLiteSettingsStore) PutGoals(ctx context.Context, goals domain.Goals) error {
	const stmt = `
INSERT INTO daily_goals (id, day_job_hours, side_work_hours)
VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  day_job_hours = excluded.day_job_hours,
  side_work_hours = excluded.side_work_hours;
`
	if _, err := s.db.ExecContext(ctx, stmt, goals.DayJobHours, goals.SideWorkHours); err != nil {
		return fmt.Errorf("put goals: %w", err)
	}
	return nil
}
