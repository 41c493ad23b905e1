package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRotateMealOfTheWeekCommandIsNotConstructed = errors.New(
	"RotateMealOfTheWeekCommand must be created via NewRotateMealOfTheWeekCommand constructor",
)

// RotateMealOfTheWeekCommand moves a restaurant's meal-of-the-week pricing to
// the next meal on its menu.
type RotateMealOfTheWeekCommand struct {
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRotateMealOfTheWeekCommand(restaurantID kernel.UUID) (RotateMealOfTheWeekCommand, error) {
	if err := restaurantID.Validate(); err != nil {
		return RotateMealOfTheWeekCommand{}, err
	}
	return RotateMealOfTheWeekCommand{restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

func (c RotateMealOfTheWeekCommand) Validate() error {
	return c.guard.Validate(ErrRotateMealOfTheWeekCommandIsNotConstructed)
}

func (c RotateMealOfTheWeekCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}
