package in

import (
	"context"
	"time"

	"grind/internal/modules/streak/dto"
	streakin "grind/internal/modules/streak/port/in"
)

type CLIHandler struct {
	usecase streakin.Usecase
}

func NewCLIHandler(usecase streakin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Record(ctx context.Context, workDate, sessionEnd time.Time) error {
	return h.usecase.Record(ctx, workDate, sessionEnd)
}

func (h CLIHandler) Current(ctx context.Context) (int, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Info(ctx context.Context) (dto.StreakInfoOutput, error) {
	return h.usecase.Info(ctx)
}

func (h CLIHandler) Message(ctx context.Context, badges []string) (string, error) {
	return h.usecase.Message(ctx, badges)
}

func (h CLIHandler) Goals(ctx context.Context) (dto.GoalsOutput, error) {
	return h.usecase.Goals(ctx)
}

func (h CLIHandler) SetGoals(ctx context.Context, dayJobHours, sideWorkHours float64) error {
	return h.usecase.SetGoals(ctx, dto.GoalsInput{DayJobHours: dayJobHours, SideWorkHours: sideWorkHours})
}
