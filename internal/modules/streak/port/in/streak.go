package in

import (
	"context"
	"time"

	"grind/internal/modules/streak/dto"
)

type Usecase interface {
	// Record applies one qualifying work day. Callers invoke it only after
	// the day crosses the qualifying-minutes threshold.
	Record(ctx context.Context, workDate, sessionEnd time.Time) error
	// Current is the validated streak length for display and scoring.
	Current(ctx context.Context) (int, error)
	Info(ctx context.Context) (dto.StreakInfoOutput, error)
	// Message renders the dashboard line; badges are the earned badge codes.
	Message(ctx context.Context, badges []string) (string, error)
	Goals(ctx context.Context) (dto.GoalsOutput, error)
	SetGoals(ctx context.Context, input dto.GoalsInput) error
}
