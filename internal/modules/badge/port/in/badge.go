package in

import (
	"context"

	"grind/internal/modules/badge/dto"
)

type Usecase interface {
	// Earned recomputes the earned set from session history, the validated
	// streak, and lifetime points.
	Earned(ctx context.Context) ([]dto.BadgeOutput, error)
	// Highlighted is the capped dashboard subset of Earned.
	Highlighted(ctx context.Context) ([]dto.BadgeOutput, error)
	// Catalog lists every badge with its earned flag set.
	Catalog(ctx context.Context) ([]dto.BadgeOutput, error)
}
