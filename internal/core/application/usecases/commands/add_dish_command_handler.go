package commands

import (
	"context"

	"marketplace/internal/core/domain/model/menu"
)

// AddDishCommandHandler adds dishes to menus. Dish and meal names share one
// namespace per menu.
type AddDishCommandHandler struct {
	uowFactory UoWFactory
}

func NewAddDishCommandHandler(uowFactory UoWFactory) AddDishCommandHandler {
	return AddDishCommandHandler{uowFactory: uowFactory}
}

func (h AddDishCommandHandler) Handle(ctx context.Context, cmd AddDishCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	spec := cmd.Dish()
	dish, err := menu.NewDish(spec.Name, spec.Price, spec.Category, spec.Vegetarian, spec.GlutenFree)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = r.Menu().AddDish(dish); err != nil {
		return err
	}

	if err = restaurantRepo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
