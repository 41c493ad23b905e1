package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// ErrMenuHasNoMeals is returned when rotating the meal of the week of a menu without meals.
var ErrMenuHasNoMeals = errs.NewObjectNotFoundError("meal", "any")

// RotateMealOfTheWeekCommandHandler demotes the current meals of the week to
// general pricing and promotes the next meal in menu order, wrapping around.
// The promotion is announced like any other meal-of-the-week assignment.
type RotateMealOfTheWeekCommandHandler struct {
	uowFactory UoWFactory
	channel    *services.NotificationChannel
	logger     *slog.Logger
}

func NewRotateMealOfTheWeekCommandHandler(
	uowFactory UoWFactory,
	channel *services.NotificationChannel,
	logger *slog.Logger,
) RotateMealOfTheWeekCommandHandler {
	return RotateMealOfTheWeekCommandHandler{
		uowFactory: uowFactory,
		channel:    channel,
		logger:     logger.With("component", "rotate_meal_of_the_week_handler"),
	}
}

func (h RotateMealOfTheWeekCommandHandler) Handle(ctx context.Context, cmd RotateMealOfTheWeekCommand) (PricingChange, error) {
	if err := cmd.Validate(); err != nil {
		return PricingChange{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PricingChange{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	restaurantRepo := uow.RestaurantRepository()
	r, err := restaurantRepo.Get(ctx, cmd.RestaurantID())
	if err != nil {
		return PricingChange{}, err
	}

	m := r.Menu()
	next := m.NextMealOfTheWeek()
	if next == nil {
		return PricingChange{}, ErrMenuHasNoMeals
	}

	for _, current := range m.MealsOfTheWeek() {
		if current.IsEqual(next) {
			continue
		}
		if _, err = current.SetPricing(m.Pricing(menu.GeneralPricing)); err != nil {
			return PricingChange{}, err
		}
	}

	change, err := assignPricing(ctx, h.channel, h.logger, r, next, menu.MealOfTheWeekPricing)
	if err != nil {
		return PricingChange{}, err
	}

	if err = restaurantRepo.Update(ctx, r); err != nil {
		return PricingChange{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PricingChange{}, err
	}

	return change, nil
}
