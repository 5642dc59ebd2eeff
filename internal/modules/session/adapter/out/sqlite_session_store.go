package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"grind/internal/modules/session/domain"
	sessionout "grind/internal/modules/session/port/out"
	apperrors "grind/internal/platform/errors"
)

const (
	timeLayout = time.RFC3339
	dateLayout = "2006-01-02"
)

// SQLiteSessionStore persists sessions in the shared database handle. The
// start_date column denormalizes the local calendar day so day-scoped
// queries never depend on SQLite's date() timezone handling.
type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) (sessionout.SessionStore, error) {
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  start_time TEXT NOT NULL,
  start_date TEXT NOT NULL,
  end_time TEXT,
  duration_minutes INTEGER NOT NULL DEFAULT 0,
  points_earned REAL NOT NULL DEFAULT 0,
  category TEXT NOT NULL DEFAULT '',
  paused INTEGER NOT NULL DEFAULT 0,
  paused_at TEXT,
  total_paused_minutes INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sessions_start_date ON sessions(start_date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Insert(ctx context.Context, session domain.Session) (int64, error) {
	const stmt = `
INSERT INTO sessions (start_time, start_date, end_time, duration_minutes, points_earned, category, paused, paused_at, total_paused_minutes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	res, err := s.db.ExecContext(ctx, stmt,
		session.StartTime.Format(timeLayout),
		session.StartTime.Format(dateLayout),
		nullTime(session.EndTime),
		session.DurationMinutes,
		session.PointsEarned,
		string(session.Category),
		boolToInt(session.Paused),
		nullTime(session.PausedAt),
		session.TotalPausedMinutes,
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session insert id: %w", err)
	}
	return id, nil
}

func (s *SQLiteSessionStore) Update(ctx context.Context, session domain.Session) error {
	const stmt = `
UPDATE sessions SET
  start_time = ?, start_date = ?, end_time = ?, duration_minutes = ?,
  points_earned = ?, category = ?, paused = ?, paused_at = ?, total_paused_minutes = ?
WHERE id = ?;
`
	res, err := s.db.ExecContext(ctx, stmt,
		session.StartTime.Format(timeLayout),
		session.StartTime.Format(dateLayout),
		nullTime(session.EndTime),
		session.DurationMinutes,
		session.PointsEarned,
		string(session.Category),
		boolToInt(session.Paused),
		nullTime(session.PausedAt),
		session.TotalPausedMinutes,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteSessionStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

const sessionColumns = `id, start_time, end_time, duration_minutes, points_earned, category, paused, paused_at, total_paused_minutes`

func (s *SQLiteSessionStore) GetByID(ctx context.Context, id int64) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return domain.Session{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session %d: %w", id, err)
	}
	return sess, nil
}

func (s *SQLiteSessionStore) ListRecent(ctx context.Context, limit int) ([]domain.Session, error) {
	const stmt = `SELECT ` + sessionColumns + ` FROM sessions WHERE end_time IS NOT NULL ORDER BY start_time DESC LIMIT ?`
	return s.list(ctx, stmt, limit)
}

func (s *SQLiteSessionStore) ListCompleted(ctx context.Context) ([]domain.Session, error) {
	const stmt = `SELECT ` + sessionColumns + ` FROM sessions WHERE end_time IS NOT NULL ORDER BY start_time DESC`
	return s.list(ctx, stmt)
}

func (s *SQLiteSessionStore) ListCompletedInRange(ctx context.Context, from, to time.Time) ([]domain.Session, error) {
	const stmt = `
SELECT ` + sessionColumns + ` FROM sessions
WHERE end_time IS NOT NULL AND start_date BETWEEN ? AND ?
ORDER BY start_time ASC`
	return s.list(ctx, stmt, from.Format(dateLayout), to.Format(dateLayout))
}

func (s *SQLiteSessionStore) ListCompletedOnDate(ctx context.Context, date time.Time) ([]domain.Session, error) {
	const stmt = `
SELECT ` + sessionColumns + ` FROM sessions
WHERE end_time IS NOT NULL AND start_date = ?
ORDER BY start_time ASC`
	return s.list(ctx, stmt, date.Format(dateLayout))
}

func (s *SQLiteSessionStore) CountQualifyingCompletedOnDate(ctx context.Context, date time.Time) (int, error) {
	const stmt = `
SELECT COUNT(*) FROM sessions
WHERE end_time IS NOT NULL AND start_date = ? AND category IN (?, ?)`
	var count int
	err := s.db.QueryRowContext(ctx, stmt,
		date.Format(dateLayout),
		string(domain.CategorySideWork),
		string(domain.CategoryEarlyMorning),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count qualifying sessions: %w", err)
	}
	return count, nil
}

func (s *SQLiteSessionStore) SumQualifyingMinutesOnDate(ctx context.Context, date time.Time) (int64, error) {
	const stmt = `
SELECT COALESCE(SUM(duration_minutes), 0) FROM sessions
WHERE end_time IS NOT NULL AND start_date = ? AND category IN (?, ?)`
	var minutes int64
	err := s.db.QueryRowContext(ctx, stmt,
		date.Format(dateLayout),
		string(domain.CategorySideWork),
		string(domain.CategoryEarlyMorning),
	).Scan(&minutes)
	if err != nil {
		return 0, fmt.Errorf("sum qualifying minutes: %w", err)
	}
	return minutes, nil
}

func (s *SQLiteSessionStore) SumMinutesOnDate(ctx context.Context, date time.Time, category domain.Category) (int64, error) {
	const stmt = `
SELECT COALESCE(SUM(duration_minutes), 0) FROM sessions
WHERE end_time IS NOT NULL AND start_date = ? AND category = ?`
	var minutes int64
	err := s.db.QueryRowContext(ctx, stmt, date.Format(dateLayout), string(category)).Scan(&minutes)
	if err != nil {
		return 0, fmt.Errorf("sum minutes for %s: %w", category, err)
	}
	return minutes, nil
}

func (s *SQLiteSessionStore) SumAllPoints(ctx context.Context) (float64, error) {
	const stmt = `SELECT COALESCE(SUM(points_earned), 0) FROM sessions WHERE end_time IS NOT NULL`
	var points float64
	if err := s.db.QueryRowContext(ctx, stmt).Scan(&points); err != nil {
		return 0, fmt.Errorf("sum points: %w", err)
	}
	return points, nil
}

func (s *SQLiteSessionStore) list(ctx context.Context, stmt string, args ...any) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (domain.Session, error) {
	var (
		sess            domain.Session
		startRaw        string
		endRaw, pauseRaw sql.NullString
		category        string
		paused          int
	)
	err := row.Scan(&sess.ID, &startRaw, &endRaw, &sess.DurationMinutes,
		&sess.PointsEarned, &category, &paused, &pauseRaw, &sess.TotalPausedMinutes)
	if err != nil {
		return domain.Session{}, err
	}
	if sess.StartTime, err = parseTime(startRaw); err != nil {
		return domain.Session{}, err
	}
	if sess.EndTime, err = parseNullTime(endRaw); err != nil {
		return domain.Session{}, err
	}
	if sess.PausedAt, err = parseNullTime(pauseRaw); err != nil {
		return domain.Session{}, err
	}
	sess.Category = domain.Category(category)
	sess.Paused = paused != 0
	return sess, nil
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", raw, err)
	}
	return t.Local(), nil
}

func parseNullTime(raw sql.NullString) (time.Time, error) {
	if !raw.Valid || raw.String == "" {
		return time.Time{}, nil
	}
	return parseTime(raw.String)
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(timeLayout)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
