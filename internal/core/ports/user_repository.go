package ports

import (
	"context"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/restaurant"
)

// CustomerRepository defines the persistence contract for customers.
type CustomerRepository interface {
	Add(ctx context.Context, customer *customer.Customer) error
	Update(ctx context.Context, customer *customer.Customer) error
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
	GetAll(ctx context.Context) ([]*customer.Customer, error)
}

// RestaurantRepository defines the persistence contract for restaurants and their menus.
type RestaurantRepository interface {
	Add(ctx context.Context, restaurant *restaurant.Restaurant) error
	Update(ctx context.Context, restaurant *restaurant.Restaurant) error
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)
	GetAll(ctx context.Context) ([]*restaurant.Restaurant, error)
}

// ManagerRepository stores platform managers.
type ManagerRepository interface {
	Add(ctx context.Context, manager *account.Manager) error
	Get(ctx context.Context, id kernel.UUID) (*account.Manager, error)
}
