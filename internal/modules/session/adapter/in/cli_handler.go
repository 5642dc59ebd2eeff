package in

import (
	"context"
	"time"

	"grind/internal/modules/session/dto"
	sessionin "grind/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Get(ctx context.Context, id int64) (dto.SessionOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) ListRecent(ctx context.Context, limit int) ([]dto.SessionOutput, error) {
	return h.usecase.ListRecent(ctx, limit)
}

func (h CLIHandler) History(ctx context.Context, from, to time.Time) ([]dto.SessionOutput, error) {
	return h.usecase.History(ctx, from, to)
}

func (h CLIHandler) Preview(ctx context.Context, id int64, start, end time.Time) (dto.PreviewOutput, error) {
	return h.usecase.Preview(ctx, dto.EditInput{ID: id, StartTime: start, EndTime: end})
}

func (h CLIHandler) Edit(ctx context.Context, id int64, start, end time.Time) (dto.SessionOutput, error) {
	return h.usecase.Edit(ctx, dto.EditInput{ID: id, StartTime: start, EndTime: end})
}

func (h CLIHandler) Delete(ctx context.Context, id int64) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) TotalPoints(ctx context.Context) (float64, error) {
	return h.usecase.TotalPoints(ctx)
}

func (h CLIHandler) DayProgress(ctx context.Context, date time.Time) (dto.DayProgressOutput, error) {
	return h.usecase.DayProgress(ctx, date)
}
