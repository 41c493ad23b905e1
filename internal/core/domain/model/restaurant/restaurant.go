// Package restaurant models the businesses that sell through the marketplace.
package restaurant

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrRestaurantIsNotConstructed = errs.NewValueIsRequiredError(
		"restaurant must be created via NewRestaurant constructor")
	ErrNameIsRequired     = errs.NewValueIsRequiredError("name")
	ErrUsernameIsRequired = errs.NewValueIsRequiredError("username")
)

// Restaurant owns a menu and counts the orders delivered from it.
type Restaurant struct {
	id             kernel.UUID
	name           string
	username       string
	location       kernel.Location
	menu           *menu.Menu
	deliveredCount int
	guard          guard.ConstructorGuard
}

// NewRestaurant creates a restaurant with an empty menu priced by rates.
// A nil rates value uses menu.DefaultDiscountRates.
func NewRestaurant(
	id kernel.UUID,
	name string,
	username string,
	location kernel.Location,
	rates *menu.DiscountRates,
) (*Restaurant, error) {
	r := &Restaurant{
		menu:  menu.NewMenu(rates),
		guard: guard.NewConstructorGuard(),
	}

	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	var nameErr, usernameErr error
	if name == "" {
		nameErr = ErrNameIsRequired
	}
	if username == "" {
		usernameErr = ErrUsernameIsRequired
	}
	if err := errors.Join(id.Validate(), nameErr, usernameErr, location.Validate()); err != nil {
		return nil, err
	}

	r.id = id
	r.name = name
	r.username = username
	r.location = location
	return r, nil
}

func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

func (r *Restaurant) Name() string {
	return r.name
}

func (r *Restaurant) Username() string {
	return r.username
}

func (r *Restaurant) Location() kernel.Location {
	return r.location
}

func (r *Restaurant) Menu() *menu.Menu {
	return r.menu
}

func (r *Restaurant) Role() account.Role {
	return account.RestaurantRole
}

// DeliveredCount is the number of completed orders from this restaurant.
func (r *Restaurant) DeliveredCount() int {
	return r.deliveredCount
}

func (r *Restaurant) RecordDelivery() {
	r.deliveredCount++
}
