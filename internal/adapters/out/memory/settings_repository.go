package memory

import (
	"context"

	"marketplace/internal/core/domain/model/platform"
	"marketplace/internal/pkg/errs"
)

type settingsRepository struct {
	uow *UnitOfWork
}

func (r *settingsRepository) Get(_ context.Context) (*platform.Settings, error) {
	if err := r.uow.check(); err != nil {
		return nil, err
	}
	if r.uow.changes.settings != nil {
		return r.uow.changes.settings, nil
	}
	if r.uow.store.settings == nil {
		return nil, errs.NewObjectNotFoundError("platform settings", "current")
	}
	return r.uow.store.settings, nil
}

func (r *settingsRepository) Update(_ context.Context, settings *platform.Settings) error {
	if err := r.uow.check(); err != nil {
		return err
	}
	if settings == nil {
		return errs.NewValueIsRequiredError("platform settings")
	}

	r.uow.changes.settings = settings
	return nil
}
