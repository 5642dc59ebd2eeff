package in

import (
	"context"

	"grind/internal/modules/badge/dto"
	badgein "grind/internal/modules/badge/port/in"
)

type CLIHandler struct {
	usecase badgein.Usecase
}

func NewCLIHandler(usecase badgein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Earned(ctx context.Context) ([]dto.BadgeOutput, error) {
	return h.usecase.Earned(ctx)
}

func (h CLIHandler) Highlighted(ctx context.Context) ([]dto.BadgeOutput, error) {
	return h.usecase.Highlighted(ctx)
}

func (h CLIHandler) Catalog(ctx context.Context) ([]dto.BadgeOutput, error) {
	return h.usecase.Catalog(ctx)
}
