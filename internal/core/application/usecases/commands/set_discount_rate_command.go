package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSetDiscountRateCommandIsNotConstructed = errors.New(
	"SetDiscountRateCommand must be created via NewSetDiscountRateCommand constructor",
)

// SetDiscountRateCommand changes the general or the special rate of one
// restaurant. Meals read the rate when they are priced, so the change applies
// to every meal using that strategy at once.
type SetDiscountRateCommand struct {
	restaurantID kernel.UUID
	pricing      menu.PricingKind
	rate         decimal.Decimal

	guard guard.ConstructorGuard
}

// NewSetDiscountRateCommand targets the general rate for menu.GeneralPricing and
// the special rate for menu.MealOfTheWeekPricing. The rate range is checked by
// the menu and is never clamped.
func NewSetDiscountRateCommand(restaurantID kernel.UUID, pricing menu.PricingKind, rate decimal.Decimal) (SetDiscountRateCommand, error) {
	var pricingErr error
	if pricing != menu.GeneralPricing && pricing != menu.MealOfTheWeekPricing {
		pricingErr = errs.NewValueIsInvalidError("pricing")
	}
	if err := errors.Join(restaurantID.Validate(), pricingErr); err != nil {
		return SetDiscountRateCommand{}, err
	}

	return SetDiscountRateCommand{
		restaurantID: restaurantID,
		pricing:      pricing,
		rate:         rate,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SetDiscountRateCommand) Validate() error {
	return c.guard.Validate(ErrSetDiscountRateCommandIsNotConstructed)
}

func (c SetDiscountRateCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c SetDiscountRateCommand) Pricing() menu.PricingKind {
	return c.pricing
}

func (c SetDiscountRateCommand) Rate() decimal.Decimal {
	return c.rate
}
