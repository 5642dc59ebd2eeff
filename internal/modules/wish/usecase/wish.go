package usecase

import (
	"context"

	sessionin "grind/internal/modules/session/port/in"
	"grind/internal/modules/wish/domain"
	"grind/internal/modules/wish/dto"
	wishin "grind/internal/modules/wish/port/in"
	wishout "grind/internal/modules/wish/port/out"
	"grind/internal/modules/wish/service"
)

type Interactor struct {
	svc      *service.WishService
	store    wishout.WishStore
	sessions sessionin.Usecase
}

func NewInteractor(svc *service.WishService, store wishout.WishStore, sessions sessionin.Usecase) wishin.Usecase {
	return &Interactor{svc: svc, store: store, sessions: sessions}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.WishOutput, error) {
	item, err := i.svc.Add(ctx, input.Name, input.Price, input.URL)
	if err != nil {
		return dto.WishOutput{}, err
	}
	total, err := i.sessions.TotalPoints(ctx)
	if err != nil {
		return dto.WishOutput{}, err
	}
	return toOutput(item, total), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.WishOutput, error) {
	items, err := i.store.List(ctx)
	if err != nil {
		return nil, err
	}
	total, err := i.sessions.TotalPoints(ctx)
	if err != nil {
		return nil, err
	}
	outs := make([]dto.WishOutput, len(items))
	for idx, item := range items {
		outs[idx] = toOutput(item, total)
	}
	return outs, nil
}

func (i *Interactor) Redeem(ctx context.Context, id int64) (dto.WishOutput, error) {
	total, err := i.sessions.TotalPoints(ctx)
	if err != nil {
		return dto.WishOutput{}, err
	}
	item, err := i.svc.Redeem(ctx, id, total)
	if err != nil {
		return dto.WishOutput{}, err
	}
	return toOutput(item, total), nil
}

func (i *Interactor) Delete(ctx context.Context, id int64) error {
	return i.store.Delete(ctx, id)
}

func (i *Interactor) NextTarget(ctx context.Context) (dto.TargetOutput, error) {
	items, err := i.store.List(ctx)
	if err != nil {
		return dto.TargetOutput{}, err
	}
	total, err := i.sessions.TotalPoints(ctx)
	if err != nil {
		return dto.TargetOutput{}, err
	}
	target, ok := domain.NextTarget(items, total)
	if !ok {
		return dto.TargetOutput{}, nil
	}
	return dto.TargetOutput{
		Found:        true,
		Item:         toOutput(target, total),
		PointsNeeded: target.PointsRequired() - total,
	}, nil
}

func toOutput(item domain.WishItem, totalPoints float64) dto.WishOutput {
	return dto.WishOutput{
		ID:             item.ID,
		Name:           item.Name,
		Price:          item.Price,
		URL:            item.URL,
		PointsRequired: item.PointsRequired(),
		Affordable:     item.Affordable(totalPoints),
		Redeemed:       item.Redeemed,
		RedeemedAt:     item.RedeemedAt,
		CreatedAt:      item.CreatedAt,
	}
}
