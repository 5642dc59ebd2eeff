package out

import (
	"context"

	"grind/internal/modules/streak/domain"
)

// SettingsStore persists the streak record and the daily goal overrides.
// A missing streak row reads back as the zero State.
type SettingsStore interface {
	GetStreakState(ctx context.Context) (domain.State, error)
	PutStreakState(ctx context.Context, state domain.State) error

	// GetGoals reports found=false when the user never overrode the defaults.
	GetGoals(ctx context.Context) (goals domain.Goals, found bool, err error)
	PutGoals(ctx context.Context, goals domain.Goals) error
}
