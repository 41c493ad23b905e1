package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// NextID reserves the next order identifier. Identifiers increase monotonically
	// and are never reused, even when the reserving unit of work rolls back.
	NextID(ctx context.Context) (order.ID, error)

	// Add stores a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with id or errs.ErrObjectNotFound.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// GetOpenByCustomer returns the customer's Open order or errs.ErrObjectNotFound.
	GetOpenByCustomer(ctx context.Context, customerID kernel.UUID) (*order.Order, error)

	// GetAllAwaitingCourier returns every order in AwaitingCourier status, oldest first.
	GetAllAwaitingCourier(ctx context.Context) ([]*order.Order, error)

	// GetAll returns every order, oldest first.
	GetAll(ctx context.Context) ([]*order.Order, error)
}

// HistoryRepository is the append-only log of completed orders read by the
// profit policy and the statistics queries.
type HistoryRepository interface {
	// Append records a completed order.
	Append(ctx context.Context, completed *order.Order) error

	// GetCompletedBetween returns the orders completed in [from, to), in completion order.
	GetCompletedBetween(ctx context.Context, from time.Time, to time.Time) ([]*order.Order, error)

	// GetAll returns the whole log in completion order.
	GetAll(ctx context.Context) ([]*order.Order, error)
}
