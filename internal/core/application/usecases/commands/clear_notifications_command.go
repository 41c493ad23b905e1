package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrClearNotificationsCommandIsNotConstructed = errors.New(
	"ClearNotificationsCommand must be created via NewClearNotificationsCommand constructor",
)

// ClearNotificationsCommand empties a customer's notification log.
type ClearNotificationsCommand struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClearNotificationsCommand(customerID kernel.UUID) (ClearNotificationsCommand, error) {
	if err := customerID.Validate(); err != nil {
		return ClearNotificationsCommand{}, err
	}
	return ClearNotificationsCommand{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (c ClearNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrClearNotificationsCommandIsNotConstructed)
}

func (c ClearNotificationsCommand) CustomerID() kernel.UUID {
	return c.customerID
}
