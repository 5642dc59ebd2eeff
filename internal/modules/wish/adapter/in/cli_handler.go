package in

import (
	"context"

	"grind/internal/modules/wish/dto"
	wishin "grind/internal/modules/wish/port/in"
)

type CLIHandler struct {
	usecase wishin.Usecase
}

func NewCLIHandler(usecase wishin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, name string, price float64, url string) (dto.WishOutput, error) {
	return h.usecase.Add(ctx, dto.AddInput{Name: name, Price: price, URL: url})
}

func (h CLIHandler) List(ctx context.Context) ([]dto.WishOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Redeem(ctx context.Context, id int64) (dto.WishOutput, error) {
	return h.usecase.Redeem(ctx, id)
}

func (h CLIHandler) Delete(ctx context.Context, id int64) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) NextTarget(ctx context.Context) (dto.TargetOutput, error) {
	return h.usecase.NextTarget(ctx)
}
