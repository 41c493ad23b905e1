// Package commands contains the operations that change marketplace state.
// Every command follows the same pattern: a Command value built by its
// constructor and validated by a guard, and a Handler that runs the operation
// inside one unit of work.
package commands

import (
	"context"
	"time"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces give command handlers transactional access to the repositories.
type (
	// TxManager handles the unit of work lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UoW spans every aggregate of the marketplace. Accept and its cascade,
	// for example, touch several orders and couriers in one unit of work.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   courierRepo := uow.CourierRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CustomerRepository() ports.CustomerRepository
		RestaurantRepository() ports.RestaurantRepository
		CourierRepository() ports.CourierRepository
		ManagerRepository() ports.ManagerRepository
		OrderRepository() ports.OrderRepository
		HistoryRepository() ports.HistoryRepository
		SettingsRepository() ports.SettingsRepository
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)

// Clock returns the current time. Handlers that stamp orders take one so tests can pin time.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
