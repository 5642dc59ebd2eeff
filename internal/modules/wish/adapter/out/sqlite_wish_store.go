package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"grind/internal/modules/wish/domain"
	wishout "grind/internal/modules/wish/port/out"
	apperrors "grind/internal/platform/errors"
)

const timeLayout = time.RFC3339

type SQLiteWishStore struct {
	db *sql.DB
}

func NewSQLiteWishStore(db *sql.DB) (wishout.WishStore, error) {
	store := &SQLiteWishStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteWishStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS wish_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  price REAL NOT NULL,
  url TEXT NOT NULL DEFAULT '',
  redeemed INTEGER NOT NULL DEFAULT 0,
  redeemed_at TEXT,
  created_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create wish_items table: %w", err)
	}
	return nil
}

func (s *SQLiteWishStore) Insert(ctx context.Context, item domain.WishItem) (int64, error) {
	const stmt = `
INSERT INTO wish_items (name, price, url, redeemed, redeemed_at, created_at)
VALUES (?, ?, ?, ?, ?, ?);
`
	res, err := s.db.ExecContext(ctx, stmt,
		item.Name,
		item.Price,
		item.URL,
		boolToInt(item.Redeemed),
		nullTime(item.RedeemedAt),
		item.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert wish item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("wish item insert id: %w", err)
	}
	return id, nil
}

func (s *SQLiteWishStore) Update(ctx context.Context, item domain.WishItem) error {
	const stmt = `
UPDATE wish_items SET
  name = ?, price = ?, url = ?, redeemed = ?, redeemed_at = ?
WHERE id = ?;
`
	res, err := s.db.ExecContext(ctx, stmt,
		item.Name,
		item.Price,
		item.URL,
		boolToInt(item.Redeemed),
		nullTime(item.RedeemedAt),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update wish item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteWishStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM wish_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete wish item: %w", err)
	}
	return nil
}

const wishColumns = `id, name, price, url, redeemed, redeemed_at, created_at`

func (s *SQLiteWishStore) GetByID(ctx context.Context, id int64) (domain.WishItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+wishColumns+` FROM wish_items WHERE id = ?`, id)
	item, err := scanWishItem(row)
	if err == sql.ErrNoRows {
		return domain.WishItem{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.WishItem{}, fmt.Errorf("get wish item %d: %w", id, err)
	}
	return item, nil
}

func (s *SQLiteWishStore) List(ctx context.Context) ([]domain.WishItem, error) {
	const stmt = `SELECT ` + wishColumns + ` FROM wish_items ORDER BY redeemed ASC, created_at DESC`
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("list wish items: %w", err)
	}
	defer rows.Close()

	var items []domain.WishItem
	for rows.Next() {
		item, err := scanWishItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wish item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWishItem(row rowScanner) (domain.WishItem, error) {
	var (
		item        domain.WishItem
		redeemed    int
		redeemedRaw sql.NullString
		createdRaw  string
	)
	err := row.Scan(&item.ID, &item.Name, &item.Price, &item.URL, &redeemed, &redeemedRaw, &createdRaw)
	if err != nil {
		return domain.WishItem{}, err
	}
	item.Redeemed = redeemed != 0
	if redeemedRaw.Valid && redeemedRaw.String != "" {
		t, err := time.Parse(timeLayout, redeemedRaw.String)
		if err != nil {
			return domain.WishItem{}, fmt.Errorf("parse redeemed_at %q: %w", redeemedRaw.String, err)
		}
		item.RedeemedAt = t.Local()
	}
	created, err := time.Parse(timeLayout, createdRaw)
	if err != nil {
		return domain.WishItem{}, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}
	item.CreatedAt = created.Local()
	return item, nil
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
