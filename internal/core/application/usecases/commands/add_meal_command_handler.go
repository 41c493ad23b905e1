package commands

import (
	"context"

	"marketplace/internal/core/domain/model/menu"
)

// AddMealCommandHandler resolves the dish names against the restaurant's menu
// and adds the meal. The meal formula is checked by the menu package.
type AddMealCommandHandler struct {
	uowFactory UoWFactory
}

func NewAddMealCommandHandler(uowFactory UoWFactory) AddMealCommandHandler {
	return AddMealCommandHandler{uowFactory: uowFactory}
}

func (h AddMealCommandHandler) Handle(ctx context.Context, cmd AddMealCommand) error {
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

	m := r.Menu()
	names := cmd.DishNames()
	dishes := make([]*menu.Dish, 0, len(names))
	for _, name := range names {
		d, dishErr := m.Dish(name)
		if dishErr != nil {
			return dishErr
		}
		dishes = append(dishes, d)
	}

	meal, err := menu.NewMeal(cmd.Name(), cmd.Size(), dishes, m.Pricing(menu.GeneralPricing))
	if err != nil {
		return err
	}

	if err = m.AddMeal(meal); err != nil {
		return err
	}

	if err = restaurantRepo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
