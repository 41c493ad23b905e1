package commands

import (
	"errors"
	"slices"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddMealCommandIsNotConstructed = errors.New(
	"AddMealCommand must be created via NewAddMealCommand constructor",
)

// AddMealCommand composes dishes already on a menu into a meal. The meal starts
// with general pricing.
type AddMealCommand struct {
	restaurantID kernel.UUID
	name         string
	size         menu.MealSize
	dishNames    []string

	guard guard.ConstructorGuard
}

func NewAddMealCommand(restaurantID kernel.UUID, name string, size menu.MealSize, dishNames ...string) (AddMealCommand, error) {
	name = strings.TrimSpace(name)
	var nameErr, sizeErr, dishesErr error
	if name == "" {
		nameErr = ErrNameIsRequired
	}
	if size != menu.HalfMeal && size != menu.FullMeal {
		sizeErr = errs.NewValueIsInvalidError("meal size")
	}
	if len(dishNames) == 0 {
		dishesErr = errs.NewValueIsRequiredError("dishes")
	}
	if err := errors.Join(restaurantID.Validate(), nameErr, sizeErr, dishesErr); err != nil {
		return AddMealCommand{}, err
	}

	return AddMealCommand{
		restaurantID: restaurantID,
		name:         name,
		size:         size,
		dishNames:    slices.Clone(dishNames),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AddMealCommand) Validate() error {
	return c.guard.Validate(ErrAddMealCommandIsNotConstructed)
}

func (c AddMealCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c AddMealCommand) Name() string {
	return c.name
}

func (c AddMealCommand) Size() menu.MealSize {
	return c.size
}

func (c AddMealCommand) DishNames() []string {
	return slices.Clone(c.dishNames)
}
