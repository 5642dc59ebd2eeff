package in

import (
	"context"
	"time"

	"grind/internal/modules/session/dto"
)

type Usecase interface {
	Get(ctx context.Context, id int64) (dto.SessionOutput, error)
	ListRecent(ctx context.Context, limit int) ([]dto.SessionOutput, error)
	History(ctx context.Context, from, to time.Time) ([]dto.SessionOutput, error)
	Preview(ctx context.Context, input dto.EditInput) (dto.PreviewOutput, error)
	Edit(ctx context.Context, input dto.EditInput) (dto.SessionOutput, error)
	Delete(ctx context.Context, id int64) error
	TotalPoints(ctx context.Context) (float64, error)
	DayProgress(ctx context.Context, date time.Time) (dto.DayProgressOutput, error)
}
