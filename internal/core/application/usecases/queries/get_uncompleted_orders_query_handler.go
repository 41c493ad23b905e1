package queries

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// GetUncompletedOrdersQueryHandler returns the live orders by ascending ID.
type GetUncompletedOrdersQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetUncompletedOrdersQueryHandler(uowFactory ReadUoWFactory) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{uowFactory: uowFactory}
}

func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]OrderResponse, 0)
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		all, err := uow.OrderRepository().GetAll(ctx)
		if err != nil {
			return err
		}
		for _, o := range all {
			if !o.Status().IsFinal() {
				orders = append(orders, newOrderResponse(o))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

type GetOrderQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetOrderQueryHandler(uowFactory ReadUoWFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var response OrderResponse
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		o, err := uow.OrderRepository().Get(ctx, query.OrderID())
		if err != nil {
			return err
		}
		response = newOrderResponse(o)
		return nil
	})
	return response, err
}

func errOrderIDOutOfRange(id order.ID) error {
	return errs.NewValueIsOutOfRangeError("order id", id, 1, "unbounded")
}
