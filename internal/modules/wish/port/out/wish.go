package out

import (
	"context"

	"grind/internal/modules/wish/domain"
)

type WishStore interface {
	Insert(ctx context.Context, item domain.WishItem) (int64, error)
	Update(ctx context.Context, item domain.WishItem) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (domain.WishItem, error)
	// List returns unredeemed items first, newest first within each group.
	List(ctx context.Context) ([]domain.WishItem, error)
}
