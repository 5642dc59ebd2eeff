package out

import (
	"context"
	"time"

	"grind/internal/modules/session/domain"
)

// SessionStore is the keyed record store for sessions. Date arguments are
// interpreted as local calendar days (clock time ignored).
type SessionStore interface {
	Insert(ctx context.Context, session domain.Session) (int64, error)
	Update(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (domain.Session, error)

	ListRecent(ctx context.Context, limit int) ([]domain.Session, error)
	ListCompleted(ctx context.Context) ([]domain.Session, error)
	ListCompletedInRange(ctx context.Context, from, to time.Time) ([]domain.Session, error)
	ListCompletedOnDate(ctx context.Context, date time.Time) ([]domain.Session, error)

	CountQualifyingCompletedOnDate(ctx context.Context, date time.Time) (int, error)
	SumQualifyingMinutesOnDate(ctx context.Context, date time.Time) (int64, error)
	SumMinutesOnDate(ctx context.Context, date time.Time, category domain.Category) (int64, error)
	SumAllPoints(ctx context.Context) (float64, error)
}
