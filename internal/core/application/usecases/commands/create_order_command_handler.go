package commands

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// ErrCustomerHasOpenOrder is returned when a customer who already has an Open order creates another.
var ErrCustomerHasOpenOrder = errs.NewInvalidStateError("customer", "with an open order", "create an order for")

// CreateOrderCommandHandler opens orders. A customer has at most one Open order.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

// NewCreateOrderCommandHandler creates the handler. A nil clock uses time.Now.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, clock Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the identifier of the new order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (order.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID()); err != nil {
		return 0, err
	}
	if _, err := uow.RestaurantRepository().Get(ctx, cmd.RestaurantID()); err != nil {
		return 0, err
	}

	orderRepo := uow.OrderRepository()
	open, err := orderRepo.GetOpenByCustomer(ctx, cmd.CustomerID())
	switch {
	case err == nil:
		return 0, fmt.Errorf("%w: order %d", ErrCustomerHasOpenOrder, open.ID())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return 0, err
	}

	id, err := orderRepo.NextID(ctx)
	if err != nil {
		return 0, err
	}

	o, err := order.NewOrder(id, cmd.CustomerID(), cmd.RestaurantID(), h.clock.now())
	if err != nil {
		return 0, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return id, nil
}
