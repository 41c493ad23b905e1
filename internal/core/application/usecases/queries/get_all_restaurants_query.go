package queries

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetAllRestaurantsQueryIsNotConstructed = errors.New(
	"GetAllRestaurantsQuery must be created via NewGetAllRestaurantsQuery constructor",
)

// GetAllRestaurantsQuery lists every registered restaurant.
type GetAllRestaurantsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllRestaurantsQuery() GetAllRestaurantsQuery {
	return GetAllRestaurantsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAllRestaurantsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllRestaurantsQueryIsNotConstructed)
}

type GetAllRestaurantsQueryResponse struct {
	ID        kernel.UUID
	Name      string
	Location  kernel.Location
	Delivered int
	Dishes    int
	Meals     int
	// MealsOfTheWeek names the meals currently sold at the special rate.
	MealsOfTheWeek []string
}

// GetAllRestaurantsQueryHandler lists restaurants sorted by name.
type GetAllRestaurantsQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetAllRestaurantsQueryHandler(uowFactory ReadUoWFactory) GetAllRestaurantsQueryHandler {
	return GetAllRestaurantsQueryHandler{uowFactory: uowFactory}
}

func (h GetAllRestaurantsQueryHandler) Handle(
	ctx context.Context,
	query GetAllRestaurantsQuery,
) ([]GetAllRestaurantsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	restaurants := make([]GetAllRestaurantsQueryResponse, 0)
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		all, err := uow.RestaurantRepository().GetAll(ctx)
		if err != nil {
			return err
		}

		for _, r := range all {
			m := r.Menu()
			response := GetAllRestaurantsQueryResponse{
				ID:        r.ID(),
				Name:      r.Name(),
				Location:  r.Location(),
				Delivered: r.DeliveredCount(),
				Dishes:    len(m.Dishes()),
				Meals:     len(m.Meals()),
			}
			for _, meal := range m.MealsOfTheWeek() {
				response.MealsOfTheWeek = append(response.MealsOfTheWeek, meal.Name())
			}
			restaurants = append(restaurants, response)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(restaurants, func(a, b GetAllRestaurantsQueryResponse) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), a.ID.Compare(b.ID))
	})
	return restaurants, nil
}
