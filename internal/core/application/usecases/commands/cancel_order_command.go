package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand abandons an Open order, freeing the customer to open another.
// Finalized orders cannot be cancelled.
type CancelOrderCommand struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID order.ID) (CancelOrderCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() order.ID {
	return c.orderID
}
