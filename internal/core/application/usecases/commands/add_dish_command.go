package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddDishCommandIsNotConstructed = errors.New(
	"AddDishCommand must be created via NewAddDishCommand constructor",
)

// DishSpec describes a dish to put on a menu.
type DishSpec struct {
	Name       string
	Price      kernel.Money
	Category   menu.Category
	Vegetarian bool
	GlutenFree bool
}

// AddDishCommand puts a new dish on a restaurant's menu.
//
// Example:
//
//	cmd, err := NewAddDishCommand(restaurantID, DishSpec{
//	    Name:     "Soup",
//	    Price:    kernel.MustParseMoney("6.50"),
//	    Category: menu.Starter,
//	})
type AddDishCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	dish         DishSpec

	guard guard.ConstructorGuard
}

func NewAddDishCommand(restaurantID kernel.UUID, dish DishSpec) (AddDishCommand, error) {
	command := AddDishCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		restaurantID.Validate(),
		command.setDish(dish),
	); err != nil {
		return AddDishCommand{}, err
	}

	command.restaurantID = restaurantID
	return command, nil
}

func (c AddDishCommand) Validate() error {
	return c.guard.Validate(ErrAddDishCommandIsNotConstructed)
}

func (c AddDishCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c AddDishCommand) Dish() DishSpec {
	return c.dish
}

func (c *AddDishCommand) setDish(dish DishSpec) error {
	dish.Name = strings.TrimSpace(dish.Name)
	if dish.Name == "" {
		return ErrNameIsRequired
	}
	if dish.Price.IsNegative() {
		return errs.NewValueIsOutOfRangeError("price", dish.Price, kernel.Zero, "unbounded")
	}
	if err := dish.Category.Validate(); err != nil {
		return err
	}
	c.dish = dish
	return nil
}
