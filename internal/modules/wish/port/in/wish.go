package in

import (
	"context"

	"grind/internal/modules/wish/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.WishOutput, error)
	List(ctx context.Context) ([]dto.WishOutput, error)
	// Redeem marks the item once lifetime points cover its price. Points are
	// never deducted.
	Redeem(ctx context.Context, id int64) (dto.WishOutput, error)
	Delete(ctx context.Context, id int64) error
	NextTarget(ctx context.Context) (dto.TargetOutput, error)
}
