package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) rows() layered[order.ID, *order.Order] {
	return layered[order.ID, *order.Order]{committed: r.uow.store.orders, staged: r.uow.changes.orders}
}

// NextID advances the store's counter directly, so identifiers stay unique
// even when the unit of work is rolled back.
func (r *orderRepository) NextID(_ context.Context) (order.ID, error) {
	if err := r.uow.check(); err != nil {
		return 0, err
	}
	r.uow.store.lastOrderID++
	return r.uow.store.lastOrderID, nil
}

func (r *orderRepository) Add(_ context.Context, o *order.Order) error {
	if err := r.uow.check(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if r.rows().has(o.ID()) {
		return errs.NewObjectAlreadyExistsError("order", o.ID())
	}

	r.uow.changes.orders.put(o.ID(), o)
	return nil
}

func (r *orderRepository) Update(_ context.Context, o *order.Order) error {
	if err := r.uow.check(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if !r.rows().has(o.ID()) {
		return errs.NewObjectNotFoundError("order", o.ID())
	}
	return nil
}

func (r *orderRepository) Get(_ context.Context, id order.ID) (*order.Order, error) {
	if err := r.uow.check(); err != nil {
		return nil, err
	}
	o, ok := r.rows().get(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return o, nil
}

func (r *orderRepository) GetOpenByCustomer(ctx context.Context, customerID kernel.UUID) (*order.Order, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, o := range all {
		if o.Status() == order.Open && o.CustomerID().IsEqual(customerID) {
			return o, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("open order of customer", customerID)
}

func (r *orderRepository) GetAllAwaitingCourier(ctx context.Context) ([]*order.Order, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(all, func(o *order.Order) bool {
		return o.Status() != order.AwaitingCourier
	}), nil
}

func (r *orderRepository) GetAll(_ context.Context) ([]*order.Order, error) {
	if err := r.uow.check(); err != nil {
		return nil, err
	}

	all := r.rows().all()
	slices.SortFunc(all, func(a, b *order.Order) int { return cmp.Compare(a.ID(), b.ID()) })
	return all, nil
}

type historyRepository struct {
	uow *UnitOfWork
}

func (r *historyRepository) Append(_ context.Context, completed *order.Order) error {
	if err := r.uow.check(); err != nil {
		return err
	}
	if err := completed.Validate(); err != nil {
		return err
	}
	if completed.Status() != order.Completed {
		return errs.NewInvalidStateError("order", completed.Status().String(), "append to history")
	}

	r.uow.changes.history = append(r.uow.changes.history, completed)
	return nil
}

func (r *historyRepository) GetCompletedBetween(ctx context.Context, from time.Time, to time.Time) ([]*order.Order, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(all, func(o *order.Order) bool {
		at := o.CompletedAt()
		return at.Before(from) || !at.Before(to)
	}), nil
}

func (r *historyRepository) GetAll(_ context.Context) ([]*order.Order, error) {
	if err := r.uow.check(); err != nil {
		return nil, err
	}
	return slices.Concat(r.uow.store.history, r.uow.changes.history), nil
}
