// Package queries contains read operations for retrieving marketplace state.
// Queries return read models shaped for one use case and never change state:
// every handler rolls its unit of work back.
package queries

import (
	"context"

	"marketplace/internal/core/ports"
)

type (
	// ReadUoW is the read side of a unit of work. Holding it still serializes
	// with writers, so a query always sees a committed state.
	ReadUoW interface {
		Begin(ctx context.Context) error
		Rollback(ctx context.Context) error
		CustomerRepository() ports.CustomerRepository
		RestaurantRepository() ports.RestaurantRepository
		CourierRepository() ports.CourierRepository
		OrderRepository() ports.OrderRepository
		HistoryRepository() ports.HistoryRepository
		SettingsRepository() ports.SettingsRepository
	}

	// ReadUoWFactory creates new read units of work.
	ReadUoWFactory interface {
		Create() ReadUoW
	}
)

// read runs fn inside a fresh read unit of work.
func read(ctx context.Context, factory ReadUoWFactory, fn func(uow ReadUoW) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return fn(uow)
}
