package service

import (
	"context"
	"strings"

	"grind/internal/modules/wish/domain"
	wishout "grind/internal/modules/wish/port/out"
	"grind/internal/platform/clock"
	apperrors "grind/internal/platform/errors"
)

type WishService struct {
	clock clock.Clock
	store wishout.WishStore
}

func NewWishService(clock clock.Clock, store wishout.WishStore) *WishService {
	return &WishService{clock: clock, store: store}
}

func (s *WishService) Add(ctx context.Context, name string, price float64, url string) (domain.WishItem, error) {
	name = strings.TrimSpace(name)
	if name == "" || price <= 0 {
		return domain.WishItem{}, apperrors.ErrInvalidInput
	}
	item := domain.WishItem{
		Name:      name,
		Price:     price,
		URL:       strings.TrimSpace(url),
		CreatedAt: s.clock.Now(),
	}
	id, err := s.store.Insert(ctx, item)
	if err != nil {
		return domain.WishItem{}, err
	}
	item.ID = id
	return item, nil
}

// Redeem marks the item once the lifetime total covers it. Redeeming twice
// is a no-op that returns the item unchanged.
func (s *WishService) Redeem(ctx context.Context, id int64, totalPoints float64) (domain.WishItem, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.WishItem{}, err
	}
	if item.Redeemed {
		return item, nil
	}
	if !item.Affordable(totalPoints) {
		return domain.WishItem{}, apperrors.ErrNotEnoughPoints
	}
	item.Redeemed = true
	item.RedeemedAt = s.clock.Now()
	if err := s.store.Update(ctx, item); err != nil {
		return domain.WishItem{}, err
	}
	return item, nil
}
