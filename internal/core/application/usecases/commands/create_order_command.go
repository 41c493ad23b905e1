package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand opens an empty order for a customer at a restaurant.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, restaurantID)
//	if err != nil {
//	    return err
//	}
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	customerID   kernel.UUID
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(customerID kernel.UUID, restaurantID kernel.UUID) (CreateOrderCommand, error) {
	if err := errors.Join(customerID.Validate(), restaurantID.Validate()); err != nil {
		return CreateOrderCommand{}, err
	}
	return CreateOrderCommand{
		customerID:   customerID,
		restaurantID: restaurantID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}
