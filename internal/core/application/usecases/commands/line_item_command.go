package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrAddLineItemCommandIsNotConstructed = errors.New(
		"AddLineItemCommand must be created via NewAddLineItemCommand constructor",
	)
	ErrRemoveLineItemCommandIsNotConstructed = errors.New(
		"RemoveLineItemCommand must be created via NewRemoveLineItemCommand constructor",
	)
)

// AddLineItemCommand adds one unit of a dish or meal, named as on the
// restaurant's menu, to an Open order.
type AddLineItemCommand struct {
	orderID  order.ID
	itemName string

	guard guard.ConstructorGuard
}

func NewAddLineItemCommand(orderID order.ID, itemName string) (AddLineItemCommand, error) {
	itemName, err := validateLineItem(orderID, itemName)
	if err != nil {
		return AddLineItemCommand{}, err
	}
	return AddLineItemCommand{orderID: orderID, itemName: itemName, guard: guard.NewConstructorGuard()}, nil
}

func (c AddLineItemCommand) Validate() error {
	return c.guard.Validate(ErrAddLineItemCommandIsNotConstructed)
}

func (c AddLineItemCommand) OrderID() order.ID {
	return c.orderID
}

func (c AddLineItemCommand) ItemName() string {
	return c.itemName
}

// RemoveLineItemCommand removes one unit of a dish or meal from an Open order.
type RemoveLineItemCommand struct {
	orderID  order.ID
	itemName string

	guard guard.ConstructorGuard
}

func NewRemoveLineItemCommand(orderID order.ID, itemName string) (RemoveLineItemCommand, error) {
	itemName, err := validateLineItem(orderID, itemName)
	if err != nil {
		return RemoveLineItemCommand{}, err
	}
	return RemoveLineItemCommand{orderID: orderID, itemName: itemName, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveLineItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveLineItemCommandIsNotConstructed)
}

func (c RemoveLineItemCommand) OrderID() order.ID {
	return c.orderID
}

func (c RemoveLineItemCommand) ItemName() string {
	return c.itemName
}

func validateOrderID(id order.ID) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("order id", id, 1, "unbounded")
	}
	return nil
}

func validateLineItem(orderID order.ID, itemName string) (string, error) {
	itemName = strings.TrimSpace(itemName)
	var nameErr error
	if itemName == "" {
		nameErr = errs.NewValueIsRequiredError("item name")
	}
	return itemName, errors.Join(validateOrderID(orderID), nameErr)
}
