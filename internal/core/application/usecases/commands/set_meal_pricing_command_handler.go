package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/restaurant"
	"marketplace/internal/core/domain/services"
)

// PricingChange reports the effect of a pricing assignment.
type PricingChange struct {
	Meal string
	// Announced is true when the meal entered meal-of-the-week pricing.
	Announced bool
	// Notified counts the customers who received the announcement.
	Notified int
}

// SetMealPricingCommandHandler changes a meal's pricing strategy. A meal
// entering meal-of-the-week pricing is announced on the notification channel
// before the unit of work commits.
type SetMealPricingCommandHandler struct {
	uowFactory UoWFactory
	channel    *services.NotificationChannel
	logger     *slog.Logger
}

func NewSetMealPricingCommandHandler(
	uowFactory UoWFactory,
	channel *services.NotificationChannel,
	logger *slog.Logger,
) SetMealPricingCommandHandler {
	return SetMealPricingCommandHandler{
		uowFactory: uowFactory,
		channel:    channel,
		logger:     logger.With("component", "set_meal_pricing_handler"),
	}
}

func (h SetMealPricingCommandHandler) Handle(ctx context.Context, cmd SetMealPricingCommand) (PricingChange, error) {
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

	meal, err := r.Menu().Meal(cmd.MealName())
	if err != nil {
		return PricingChange{}, err
	}

	change, err := assignPricing(ctx, h.channel, h.logger, r, meal, cmd.Pricing())
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

// assignPricing installs the menu's strategy of the given kind on meal and
// broadcasts when the meal enters meal-of-the-week pricing.
func assignPricing(
	ctx context.Context,
	channel *services.NotificationChannel,
	logger *slog.Logger,
	r *restaurant.Restaurant,
	meal *menu.Meal,
	kind menu.PricingKind,
) (PricingChange, error) {
	entered, err := meal.SetPricing(r.Menu().Pricing(kind))
	if err != nil {
		return PricingChange{}, err
	}

	change := PricingChange{Meal: meal.Name(), Announced: entered}
	if entered {
		change.Notified = channel.Broadcast(r.Name(), meal)
		logger.InfoContext(ctx, "meal of the week announced",
			"restaurant_id", r.ID().String(), "meal", meal.Name(), "notified", change.Notified)
	}
	return change, nil
}
