package usecase

import (
	"context"
	"time"

	badgedomain "grind/internal/modules/badge/domain"
	"grind/internal/modules/streak/domain"
	"grind/internal/modules/streak/dto"
	streakin "grind/internal/modules/streak/port/in"
	"grind/internal/modules/streak/service"
)

type Interactor struct {
	svc *service.StreakService
}

func NewInteractor(svc *service.StreakService) streakin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Record(ctx context.Context, workDate, sessionEnd time.Time) error {
	return i.svc.Record(ctx, workDate, sessionEnd)
}

func (i *Interactor) Current(ctx context.Context) (int, error) {
	return i.svc.Current(ctx)
}

func (i *Interactor) Info(ctx context.Context) (dto.StreakInfoOutput, error) {
	info, state, err := i.svc.Info(ctx)
	if err != nil {
		return dto.StreakInfoOutput{}, err
	}
	return dto.StreakInfoOutput{
		CurrentStreak:       info.CurrentStreak,
		ConsecutiveWorkDays: info.ConsecutiveWorkDays,
		LastWorkDate:        state.LastWorkDate,
		Grace: dto.GraceOutput{
			Available:        info.Grace.Available,
			HoursRemaining:   info.Grace.HoursRemaining,
			MinutesRemaining: info.Grace.MinutesRemaining,
			Urgent:           info.Grace.Urgent,
		},
		AtRisk: info.AtRisk,
	}, nil
}

func (i *Interactor) Message(ctx context.Context, badges []string) (string, error) {
	info, _, err := i.svc.Info(ctx)
	if err != nil {
		return "", err
	}
	codes := make([]badgedomain.Badge, len(badges))
	for idx, code := range badges {
		codes[idx] = badgedomain.Badge(code)
	}
	return domain.Message(info, codes), nil
}

func (i *Interactor) Goals(ctx context.Context) (dto.GoalsOutput, error) {
	goals, err := i.svc.Goals(ctx)
	if err != nil {
		return dto.GoalsOutput{}, err
	}
	return dto.GoalsOutput{DayJobHours: goals.DayJobHours, SideWorkHours: goals.SideWorkHours}, nil
}

func (i *Interactor) SetGoals(ctx context.Context, input dto.GoalsInput) error {
	return i.svc.SetGoals(ctx, domain.Goals{
		DayJobHours:   input.DayJobHours,
		SideWorkHours: input.SideWorkHours,
	})
}
