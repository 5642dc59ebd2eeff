package tx

import "context"

// Manager wraps the finalize-session + update-streak step so both writes run
// as one logical unit. Each write targets a single keyed record and the
// streak update is re-derivable from the finalized session, so the default
// manager does not need a database transaction.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
