// Package memory provides the in-process storage of the marketplace: a Store
// holding every aggregate by identity and a UnitOfWork that serializes state
// transitions over it.
//
// Usage:
//
//	settings, _ := platform.NewSettings(platform.FairOccupationDelivery, data, target)
//	store := memory.NewStore(settings)
//	factory := memory.NewUnitOfWorkFactory(store)
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.CourierRepository().Add(ctx, c); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Concurrency:
//   - Begin acquires the store's single exclusive section and honours context
//     cancellation while waiting
//   - Commit and Rollback release it
//   - aggregates are shared pointers and must only be touched inside a unit of work
//
// Additions, the history log and settings replacements are staged and applied on
// Commit. Aggregates are mutated in place by the domain, which validates before
// mutating, so a rolled back unit of work leaves them as they were.
package memory

import (
	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/platform"
	"marketplace/internal/core/domain/model/restaurant"
)

// Store is the committed state of the marketplace.
type Store struct {
	sem chan struct{}

	customers   *table[kernel.UUID, *customer.Customer]
	restaurants *table[kernel.UUID, *restaurant.Restaurant]
	couriers    *table[kernel.UUID, *courier.Courier]
	managers    *table[kernel.UUID, *account.Manager]
	orders      *table[order.ID, *order.Order]
	history     []*order.Order
	settings    *platform.Settings

	lastOrderID order.ID
}

// NewStore creates an empty store with the given platform settings.
func NewStore(settings *platform.Settings) *Store {
	return &Store{
		sem:         make(chan struct{}, 1),
		customers:   newTable[kernel.UUID, *customer.Customer](),
		restaurants: newTable[kernel.UUID, *restaurant.Restaurant](),
		couriers:    newTable[kernel.UUID, *courier.Courier](),
		managers:    newTable[kernel.UUID, *account.Manager](),
		orders:      newTable[order.ID, *order.Order](),
		settings:    settings,
	}
}

type staged struct {
	customers   *table[kernel.UUID, *customer.Customer]
	restaurants *table[kernel.UUID, *restaurant.Restaurant]
	couriers    *table[kernel.UUID, *courier.Courier]
	managers    *table[kernel.UUID, *account.Manager]
	orders      *table[order.ID, *order.Order]
	history     []*order.Order
	settings    *platform.Settings
}

func newStaged() *staged {
	return &staged{
		customers:   newTable[kernel.UUID, *customer.Customer](),
		restaurants: newTable[kernel.UUID, *restaurant.Restaurant](),
		couriers:    newTable[kernel.UUID, *courier.Courier](),
		managers:    newTable[kernel.UUID, *account.Manager](),
		orders:      newTable[order.ID, *order.Order](),
	}
}

func (s *Store) apply(changes *staged) {
	changes.customers.mergeInto(s.customers)
	changes.restaurants.mergeInto(s.restaurants)
	changes.couriers.mergeInto(s.couriers)
	changes.managers.mergeInto(s.managers)
	changes.orders.mergeInto(s.orders)
	s.history = append(s.history, changes.history...)
	if changes.settings != nil {
		s.settings = changes.settings
	}
}
