package service

import (
	"context"
	"time"

	"grind/internal/modules/streak/domain"
	streakout "grind/internal/modules/streak/port/out"
	"grind/internal/platform/clock"
	apperrors "grind/internal/platform/errors"
)

// StreakService owns the streak state transitions. Writes only ever advance
// the stored record; expiry is applied lazily on read via domain.Validated.
type StreakService struct {
	clock clock.Clock
	store streakout.SettingsStore
}

func NewStreakService(clock clock.Clock, store streakout.SettingsStore) *StreakService {
	return &StreakService{clock: clock, store: store}
}

func (s *StreakService) Record(ctx context.Context, workDate, sessionEnd time.Time) error {
	state, err := s.store.GetStreakState(ctx)
	if err != nil {
		return err
	}
	return s.store.PutStreakState(ctx, domain.Advance(state, workDate, sessionEnd))
}

func (s *StreakService) Current(ctx context.Context) (int, error) {
	state, err := s.store.GetStreakState(ctx)
	if err != nil {
		return 0, err
	}
	return domain.Validated(state, s.clock.Now()), nil
}

// Info assembles the full streak read-model at one instant.
func (s *StreakService) Info(ctx context.Context) (domain.Info, domain.State, error) {
	state, err := s.store.GetStreakState(ctx)
	if err != nil {
		return domain.Info{}, domain.State{}, err
	}
	now := s.clock.Now()
	validated := domain.Validated(state, now)
	state.CurrentStreak = validated
	grace := domain.Grace(state, now)
	info := domain.Info{
		CurrentStreak:       validated,
		ConsecutiveWorkDays: state.ConsecutiveWorkDays,
		Grace:               grace,
		AtRisk:              domain.AtRisk(state, grace, now),
	}
	return info, state, nil
}

func (s *StreakService) Goals(ctx context.Context) (domain.Goals, error) {
	goals, found, err := s.store.GetGoals(ctx)
	if err != nil {
		return domain.Goals{}, err
	}
	if !found {
		return domain.DefaultGoals(), nil
	}
	return goals, nil
}

func (s *StreakService) SetGoals(ctx context.Context, goals domain.Goals) error {
	if goals.DayJobHours < 0 || goals.SideWorkHours < 0 {
		return apperrors.ErrInvalidInput
	}
	return s.store.PutGoals(ctx, goals)
}
