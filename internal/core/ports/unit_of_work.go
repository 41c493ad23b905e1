package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents one state transition of the marketplace.
// Begin enters the store's exclusive section; Commit or Rollback leaves it.
// Client code must explicitly manage the lifecycle:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//	// ... repository calls
//	return uow.Commit(ctx)
type UnitOfWork interface {
	// Begin waits for exclusive access to the store. It returns ctx.Err() if the
	// context ends first.
	Begin(ctx context.Context) error

	// Commit applies the staged changes and releases the store.
	Commit(ctx context.Context) error

	// Rollback discards the staged changes and releases the store.
	// Calling it after Commit is a no-op.
	Rollback(ctx context.Context) error

	CustomerRepository() CustomerRepository
	RestaurantRepository() RestaurantRepository
	CourierRepository() CourierRepository
	ManagerRepository() ManagerRepository
	OrderRepository() OrderRepository
	HistoryRepository() HistoryRepository
	SettingsRepository() SettingsRepository
}
