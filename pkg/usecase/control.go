package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/aegis-sec/aegis/pkg/domain/interfaces"
	"github.com/aegis-sec/aegis/pkg/domain/model"
)

type ControlUseCase struct {
	repo interfaces.Repository
}

func NewControlUseCase(repo interfaces.Repository) *ControlUseCase {
	return &ControlUseCase{repo: repo}
}

func (uc *ControlUseCase) List(ctx context.Context) ([]*model.Control, error) {
	controls, err := uc.repo.Control().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list controls")
	}
	return controls, nil
}

func (uc *ControlUseCase) Put(ctx context.Context, control *model.Control) error {
	if err := uc.repo.Control().Put(ctx, control); err != nil {
		return goerr.Wrap(err, "failed to store control", goerr.V("control_id", control.ID))
	}
	return nil
}
