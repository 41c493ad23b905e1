package memory

import (
	"context"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ErrUnitOfWorkIsNotActive is returned when a unit of work is used before Begin or after it ended.
var ErrUnitOfWorkIsNotActive = errs.NewInvalidStateError("unit of work", "not active", "use")

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a fresh, inactive unit of work.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages changes against a Store while holding its exclusive section.
// A UnitOfWork is used by one goroutine.
type UnitOfWork struct {
	store   *Store
	active  bool
	changes *staged
}

// Begin waits for the store's exclusive section. Calling Begin on an active unit
// of work is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.active {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case uow.store.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	uow.active = true
	uow.changes = newStaged()
	return nil
}

// Commit applies the staged changes and releases the store.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrUnitOfWorkIsNotActive
	}

	uow.store.apply(uow.changes)
	uow.end()
	return nil
}

// Rollback discards the staged changes and releases the store.
// It is a no-op on an inactive unit of work, so it can always be deferred.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return nil
	}

	uow.end()
	return nil
}

func (uow *UnitOfWork) end() {
	uow.active = false
	uow.changes = nil
	<-uow.store.sem
}

func (uow *UnitOfWork) check() error {
	if !uow.active {
		return ErrUnitOfWorkIsNotActive
	}
	return nil
}

func (uow *UnitOfWork) CustomerRepository() ports.CustomerRepository {
	return &customerRepository{uow: uow}
}

func (uow *UnitOfWork) RestaurantRepository() ports.RestaurantRepository {
	return &restaurantRepository{uow: uow}
}

func (uow *UnitOfWork) CourierRepository() ports.CourierRepository {
	return &courierRepository{uow: uow}
}

func (uow *UnitOfWork) ManagerRepository() ports.ManagerRepository {
	return &managerRepository{uow: uow}
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

func (uow *UnitOfWork) HistoryRepository() ports.HistoryRepository {
	return &historyRepository{uow: uow}
}

func (uow *UnitOfWork) SettingsRepository() ports.SettingsRepository {
	return &settingsRepository{uow: uow}
}
