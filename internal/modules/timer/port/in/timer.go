package in

import (
	"context"

	"grind/internal/modules/timer/dto"
)

type Usecase interface {
	// Start opens a session row and begins the timer. A timer that is
	// already active reports Started=false and changes nothing.
	Start(ctx context.Context) (dto.StartOutput, error)
	Pause(ctx context.Context) (dto.ChangeOutput, error)
	Resume(ctx context.Context) (dto.ChangeOutput, error)
	// Stop settles the session: scores it from the persisted start time,
	// or discards it when the worked time is under the minimum.
	Stop(ctx context.Context) (dto.StopOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
}
