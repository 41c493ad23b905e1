package memory

import (
	"context"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/restaurant"
	"marketplace/internal/pkg/errs"
)

type customerRepository struct {
	uow *UnitOfWork
}

func (r *customerRepository) rows() layered[kernel.UUID, *customer.Customer] {
	return layered[kernel.UUID, *customer.Customer]{committed: r.uow.store.customers, staged: r.uow.changes.customers}
}

func (r *customerRepository) Add(_ context.Context, c *customer.Customer) error {
	if err := r.uow.check(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if r.rows().has(c.ID()) {
		return errs.NewObjectAlreadyExistsError("customer", c.ID())
	}

	r.uow.changes.customers.put(c.ID(), c)
	return nil
}

func (r *customerRepository) Update(_ context.Context, c *customer.Customer) error {
	if err := r.uow.check(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if !r.rows().has(c.ID()) {
		return errs.NewObjectNotFoundError("customer", c.ID())
	}
	return nil
}

func (r *customerRepository) Get(_ context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := r.uow.check(); err != nil {
		return nil, err
	}
	c, ok := r.rows().get(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("customer", id)
	}
	return c, nil
}

func (r *customerRepository) GetAll(_ context.Context) ([]*customer.Customer, error) {
	if err := r.uow.check(); err != nil {
		return nil, err
	}
	return r.rows().all(), nil
}

type restaurantRepository struct {
	uow *UnitOfWork
}

func (r *restaurantRepository) rows() layered[kernel.UUID, *restaurant.Restaurant] {
	return layered[kernel.UUID, *restaurant.Restaurant]{committed: r.uow.store.restaurants, staged: r.uow.changes.restaurants}
}

func (r *restaurantRepository) Add(_ context.Context, rest *restaurant.Restaurant) error {
	if err := r.uow.check(); err != nil {
		return err
	}
	if err := rest.Validate(); err != nil {
		return err
	}
	if r.rows().has(rest.ID()) {
		return errs.NewObjectAlreadyExistsError("restaurant", rest.ID())
	}

	r.uow.changes.restaurants.put(rest.ID(), rest)
	return nil
}

func (r *restaurantRepository) Update(_ context.Context, rest *restaurant.Restaurant) error {
	if err := r.uow.check(); err != nil {
		return err
	}
	if err := rest.Validate(); err != nil {
		return err
	}
	if !r.rows().has(rest.ID()) {
		return errs.NewObjectNotFoundError("restaurant", rest.ID())
	}
	return nil
}

func (r *restaurantRepository) Get(_ context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	if err := r.uow.check(); err != nil {
		return nil, err
	}
	rest, ok := r.rows().get(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("restaurant", id)
	}
	return rest, nil
}

func (r *restaurantRepository) GetAll(_ context.Context) ([]*restaurant.Restaurant, error) {
	if err := r.uow.check(); err != nil {
		return nil, err
	}
	return r.rows().all(), nil
}

type managerRepository struct {
	uow *UnitOfWork
}

func (r *managerRepository) rows() layered[kernel.UUID, *account.Manager] {
	return layered[kernel.UUID, *account.Manager]{committed: r.uow.store.managers, staged: r.uow.changes.managers}
}

func (r *managerRepository) Add(_ context.Context, m *account.Manager) error {
	if err := r.uow.check(); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if r.rows().has(m.ID()) {
		return errs.NewObjectAlreadyExistsError("manager", m.ID())
	}

	r.uow.changes.managers.put(m.ID(), m)
	return nil
}

func (r *managerRepository) Get(_ context.Context, id kernel.UUID) (*account.Manager, error) {
	if err := r.uow.check(); err != nil {
		return nil, err
	}
	m, ok := r.rows().get(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("manager", id)
	}
	return m, nil
}
