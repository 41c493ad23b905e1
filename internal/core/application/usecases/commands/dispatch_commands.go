package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrFinalizeOrderCommandIsNotConstructed = errors.New(
		"FinalizeOrderCommand must be created via NewFinalizeOrderCommand constructor",
	)
	ErrRedispatchOrderCommandIsNotConstructed = errors.New(
		"RedispatchOrderCommand must be created via NewRedispatchOrderCommand constructor",
	)
	ErrAcceptOfferCommandIsNotConstructed = errors.New(
		"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
	)
	ErrRefuseOfferCommandIsNotConstructed = errors.New(
		"RefuseOfferCommand must be created via NewRefuseOfferCommand constructor",
	)
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
)

// FinalizeOrderCommand settles an Open order with the customer's fidelity card
// and offers it to the best ranked on-duty courier.
type FinalizeOrderCommand struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewFinalizeOrderCommand(orderID order.ID) (FinalizeOrderCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return FinalizeOrderCommand{}, err
	}
	return FinalizeOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c FinalizeOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeOrderCommandIsNotConstructed)
}

func (c FinalizeOrderCommand) OrderID() order.ID {
	return c.orderID
}

// RedispatchOrderCommand ranks the couriers again for an order whose candidate
// pool ran out or was never built.
type RedispatchOrderCommand struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewRedispatchOrderCommand(orderID order.ID) (RedispatchOrderCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return RedispatchOrderCommand{}, err
	}
	return RedispatchOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c RedispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrRedispatchOrderCommandIsNotConstructed)
}

func (c RedispatchOrderCommand) OrderID() order.ID {
	return c.orderID
}

// AcceptOfferCommand is a courier's acceptance of an offer it holds.
type AcceptOfferCommand struct {
	courierID kernel.UUID
	orderID   order.ID

	guard guard.ConstructorGuard
}

func NewAcceptOfferCommand(courierID kernel.UUID, orderID order.ID) (AcceptOfferCommand, error) {
	if err := errors.Join(courierID.Validate(), validateOrderID(orderID)); err != nil {
		return AcceptOfferCommand{}, err
	}
	return AcceptOfferCommand{courierID: courierID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}

func (c AcceptOfferCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c AcceptOfferCommand) OrderID() order.ID {
	return c.orderID
}

// RefuseOfferCommand is a courier's refusal of an offer it holds.
type RefuseOfferCommand struct {
	courierID kernel.UUID
	orderID   order.ID

	guard guard.ConstructorGuard
}

func NewRefuseOfferCommand(courierID kernel.UUID, orderID order.ID) (RefuseOfferCommand, error) {
	if err := errors.Join(courierID.Validate(), validateOrderID(orderID)); err != nil {
		return RefuseOfferCommand{}, err
	}
	return RefuseOfferCommand{courierID: courierID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c RefuseOfferCommand) Validate() error {
	return c.guard.Validate(ErrRefuseOfferCommandIsNotConstructed)
}

func (c RefuseOfferCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c RefuseOfferCommand) OrderID() order.ID {
	return c.orderID
}

// CompleteDeliveryCommand marks an accepted order as delivered.
type CompleteDeliveryCommand struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(orderID order.ID) (CompleteDeliveryCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	return CompleteDeliveryCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) OrderID() order.ID {
	return c.orderID
}
