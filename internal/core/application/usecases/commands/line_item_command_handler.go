package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// AddLineItemCommandHandler resolves an item on the order's restaurant menu and
// adds it at its current price.
type AddLineItemCommandHandler struct {
	uowFactory UoWFactory
}

func NewAddLineItemCommandHandler(uowFactory UoWFactory) AddLineItemCommandHandler {
	return AddLineItemCommandHandler{uowFactory: uowFactory}
}

func (h AddLineItemCommandHandler) Handle(ctx context.Context, cmd AddLineItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return changeLineItem(ctx, h.uowFactory, cmd.OrderID(), cmd.ItemName(), (*order.Order).AddItem)
}

// RemoveLineItemCommandHandler removes one unit of an item. It fails with
// order.ErrItemNotInOrder when the order does not contain the item.
type RemoveLineItemCommandHandler struct {
	uowFactory UoWFactory
}

func NewRemoveLineItemCommandHandler(uowFactory UoWFactory) RemoveLineItemCommandHandler {
	return RemoveLineItemCommandHandler{uowFactory: uowFactory}
}

func (h RemoveLineItemCommandHandler) Handle(ctx context.Context, cmd RemoveLineItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return changeLineItem(ctx, h.uowFactory, cmd.OrderID(), cmd.ItemName(), (*order.Order).RemoveItem)
}

func changeLineItem(
	ctx context.Context,
	uowFactory UoWFactory,
	orderID order.ID,
	itemName string,
	change func(*order.Order, order.Item) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	r, err := uow.RestaurantRepository().Get(ctx, o.RestaurantID())
	if err != nil {
		return err
	}

	item, err := menuItem(r.Menu(), itemName)
	if err != nil {
		return err
	}

	if err = change(o, item); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func menuItem(m *menu.Menu, name string) (order.Item, error) {
	found, err := m.Item(name)
	if err != nil {
		return nil, err
	}
	item, ok := found.(order.Item)
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause("item", fmt.Errorf("%q cannot be ordered", name))
	}
	return item, nil
}
