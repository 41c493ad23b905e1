package commands

import (
	"context"

	"marketplace/internal/core/domain/model/menu"
)

type SetDiscountRateCommandHandler struct {
	uowFactory UoWFactory
}

func NewSetDiscountRateCommandHandler(uowFactory UoWFactory) SetDiscountRateCommandHandler {
	return SetDiscountRateCommandHandler{uowFactory: uowFactory}
}

// Handle fails with menu.ErrInvalidDiscount for a rate outside [0, 1].
func (h SetDiscountRateCommandHandler) Handle(ctx context.Context, cmd SetDiscountRateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	restaurantRepo := uow.RestaurantRepository()
	r, err := restaurantRepo.Get(ctx, cmd.RestaurantID())
	if err != nil {
		return err
	}

	rates := r.Menu().Rates()
	if cmd.Pricing() == menu.MealOfTheWeekPricing {
		err = rates.SetSpecial(cmd.Rate())
	} else {
		err = rates.SetGeneral(cmd.Rate())
	}
	if err != nil {
		return err
	}

	if err = restaurantRepo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
