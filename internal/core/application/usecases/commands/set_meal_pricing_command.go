package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrSetMealPricingCommandIsNotConstructed = errors.New(
	"SetMealPricingCommand must be created via NewSetMealPricingCommand constructor",
)

// SetMealPricingCommand assigns one of the menu's pricing strategies to a meal.
type SetMealPricingCommand struct {
	restaurantID kernel.UUID
	mealName     string
	pricing      menu.PricingKind

	guard guard.ConstructorGuard
}

func NewSetMealPricingCommand(restaurantID kernel.UUID, mealName string, pricing menu.PricingKind) (SetMealPricingCommand, error) {
	mealName = strings.TrimSpace(mealName)
	var nameErr, pricingErr error
	if mealName == "" {
		nameErr = ErrNameIsRequired
	}
	if pricing != menu.GeneralPricing && pricing != menu.MealOfTheWeekPricing {
		pricingErr = errs.NewValueIsInvalidError("pricing")
	}
	if err := errors.Join(restaurantID.Validate(), nameErr, pricingErr); err != nil {
		return SetMealPricingCommand{}, err
	}

	return SetMealPricingCommand{
		restaurantID: restaurantID,
		mealName:     mealName,
		pricing:      pricing,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SetMealPricingCommand) Validate() error {
	return c.guard.Validate(ErrSetMealPricingCommandIsNotConstructed)
}

func (c SetMealPricingCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c SetMealPricingCommand) MealName() string {
	return c.mealName
}

func (c SetMealPricingCommand) Pricing() menu.PricingKind {
	return c.pricing
}
