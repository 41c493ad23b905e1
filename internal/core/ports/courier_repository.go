// Package ports defines the repository contracts between the marketplace
// domain and its storage. Repositories are always obtained from a UnitOfWork
// and are only valid inside it.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add stores a new courier. Adding an existing ID fails with errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get returns the courier with id or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAll returns every courier in registration order.
	GetAll(ctx context.Context) ([]*courier.Courier, error)

	// GetAllOnDuty returns the couriers currently available for offers.
	//
	// Example:
	//   onDuty, err := repo.GetAllOnDuty(ctx)
	//   if err != nil {
	//       return err
	//   }
	//   ranked, err := strategy.Rank(onDuty, restaurant)
	GetAllOnDuty(ctx context.Context) ([]*courier.Courier, error)
}
