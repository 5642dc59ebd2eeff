package usecase

import (
	"context"

	"grind/internal/modules/badge/domain"
	"grind/internal/modules/badge/dto"
	badgein "grind/internal/modules/badge/port/in"
	sessionout "grind/internal/modules/session/port/out"
	streakin "grind/internal/modules/streak/port/in"
	"grind/internal/platform/clock"
)

// Interactor recomputes badges on demand; nothing badge-related is persisted.
type Interactor struct {
	sessions sessionout.SessionStore
	streak   streakin.Usecase
	clock    clock.Clock
}

func NewInteractor(sessions sessionout.SessionStore, streak streakin.Usecase, clock clock.Clock) badgein.Usecase {
	return &Interactor{sessions: sessions, streak: streak, clock: clock}
}

func (i *Interactor) Earned(ctx context.Context) ([]dto.BadgeOutput, error) {
	earned, err := i.earned(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(earned, true), nil
}

func (i *Interactor) Highlighted(ctx context.Context) ([]dto.BadgeOutput, error) {
	earned, err := i.earned(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(domain.Highlighted(earned, domain.DefaultHighlightCap), true), nil
}

func (i *Interactor) Catalog(ctx context.Context) ([]dto.BadgeOutput, error) {
	earned, err := i.earned(ctx)
	if err != nil {
		return nil, err
	}
	earnedSet := make(map[domain.Badge]bool, len(earned))
	for _, b := range earned {
		earnedSet[b] = true
	}
	outs := make([]dto.BadgeOutput, len(domain.All))
	for idx, b := range domain.All {
		outs[idx] = toOutput(b, earnedSet[b])
	}
	return outs, nil
}

func (i *Interactor) earned(ctx context.Context) ([]domain.Badge, error) {
	sessions, err := i.sessions.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}
	streak, err := i.streak.Current(ctx)
	if err != nil {
		return nil, err
	}
	points, err := i.sessions.SumAllPoints(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Earned(sessions, i.clock.Now(), streak, points), nil
}

func toOutput(b domain.Badge, earned bool) dto.BadgeOutput {
	meta := b.Meta()
	return dto.BadgeOutput{
		Code:        string(b),
		Name:        meta.Name,
		Description: meta.Description,
		Icon:        meta.Icon,
		Permanent:   meta.Permanent,
		Earned:      earned,
	}
}

func toOutputs(badges []domain.Badge, earned bool) []dto.BadgeOutput {
	outs := make([]dto.BadgeOutput, len(badges))
	for idx, b := range badges {
		outs[idx] = toOutput(b, earned)
	}
	return outs
}
