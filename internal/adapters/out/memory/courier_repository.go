package memory

import (
	"context"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

type courierRepository struct {
	uow *UnitOfWork
}

func (r *courierRepository) rows() layered[kernel.UUID, *courier.Courier] {
	return layered[kernel.UUID, *courier.Courier]{committed: r.uow.store.couriers, staged: r.uow.changes.couriers}
}

func (r *courierRepository) Add(_ context.Context, c *courier.Courier) error {
	if err := r.uow.check(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if r.rows().has(c.ID()) {
		return errs.NewObjectAlreadyExistsError("courier", c.ID())
	}

	r.uow.changes.couriers.put(c.ID(), c)
	return nil
}

func (r *courierRepository) Update(_ context.Context, c *courier.Courier) error {
	if err := r.uow.check(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if !r.rows().has(c.ID()) {
		return errs.NewObjectNotFoundError("courier", c.ID())
	}
	return nil
}

func (r *courierRepository) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := r.uow.check(); err != nil {
		return nil, err
	}
	c, ok := r.rows().get(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("courier", id)
	}
	return c, nil
}

func (r *courierRepository) GetAll(_ context.Context) ([]*courier.Courier, error) {
	if err := r.uow.check(); err != nil {
		return nil, err
	}
	return r.rows().all(), nil
}

func (r *courierRepository) GetAllOnDuty(ctx context.Context) ([]*courier.Courier, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	onDuty := make([]*courier.Courier, 0, len(all))
	for _, c := range all {
		if c.IsOnDuty() {
			onDuty = append(onDuty, c)
		}
	}
	return onDuty, nil
}
