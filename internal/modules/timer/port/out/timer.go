package out

import (
	"context"

	"grind/internal/modules/timer/domain"
)

// ActiveTimerStore persists the single live timer across process restarts.
// Load returns apperrors.ErrNoActiveTimer when nothing is running.
type ActiveTimerStore interface {
	Save(ctx context.Context, timer domain.Timer) error
	Load(ctx context.Context) (domain.Timer, error)
	Clear(ctx context.Context) error
}
