package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetUncompletedOrdersQueryIsNotConstructed = errors.New(
		"GetUncompletedOrdersQuery must be created via NewGetUncompletedOrdersQuery constructor",
	)
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetUncompletedOrdersQuery lists orders that are neither completed nor cancelled:
// open carts, orders awaiting a courier and orders on their way.
type GetUncompletedOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetUncompletedOrdersQuery() GetUncompletedOrdersQuery {
	return GetUncompletedOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetUncompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedOrdersQueryIsNotConstructed)
}

// GetOrderQuery fetches one order with its lines and dispatch state.
type GetOrderQuery struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID order.ID) (GetOrderQuery, error) {
	if orderID <= 0 {
		return GetOrderQuery{}, errOrderIDOutOfRange(orderID)
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() order.ID {
	return q.orderID
}

// OrderLine is one line of an order read model.
type OrderLine struct {
	Name      string
	IsMeal    bool
	Quantity  int
	UnitPrice kernel.Money
	Total     kernel.Money
}

// OrderResponse is the read model of one order. Courier is set once a courier
// accepted; OfferedTo is set while an offer is outstanding.
type OrderResponse struct {
	ID           order.ID
	Status       order.Status
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	Lines        []OrderLine
	Price        kernel.Money
	FinalPrice   kernel.Money
	Courier      *kernel.UUID
	OfferedTo    *kernel.UUID
	Candidates   []kernel.UUID
	CreatedAt    time.Time
	CompletedAt  time.Time
}

func newOrderResponse(o *order.Order) OrderResponse {
	response := OrderResponse{
		ID:           o.ID(),
		Status:       o.Status(),
		CustomerID:   o.CustomerID(),
		RestaurantID: o.RestaurantID(),
		Price:        o.Price(),
		FinalPrice:   o.FinalPrice(),
		Courier:      o.Courier(),
		Candidates:   o.Candidates(),
		CreatedAt:    o.CreatedAt(),
		CompletedAt:  o.CompletedAt(),
	}
	if offered, ok := o.OfferedCourier(); ok {
		response.OfferedTo = &offered
	}
	for _, l := range o.Lines() {
		response.Lines = append(response.Lines, OrderLine{
			Name:      l.Name(),
			IsMeal:    l.Item().IsMeal(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice(),
			Total:     l.Total(),
		})
	}
	return response
}
