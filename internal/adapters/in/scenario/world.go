package scenario

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/fidelity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"

	"github.com/jaswdr/faker"
)

// world is what a run registered.
type world struct {
	restaurants []seededRestaurant
	customers   []kernel.UUID
	couriers    []seededCourier
}

type seededRestaurant struct {
	id kernel.UUID
	// items are the dish and meal names on the menu
	items []string
}

// seededCourier owns its random source, so responders never share one.
type seededCourier struct {
	id  kernel.UUID
	rng *rand.Rand
}

var courses = []menu.Category{menu.Starter, menu.Main, menu.Dessert}

func (r *Runner) seed(ctx context.Context, rng *rand.Rand) (*world, error) {
	fake := faker.NewWithSeed(rand.NewSource(r.config.Seed)) //nolint:gosec // reproducible scenario data
	w := &world{}

	for i := range r.config.Restaurants {
		shop, err := r.seedRestaurant(ctx, fake, i)
		if err != nil {
			return nil, err
		}
		w.restaurants = append(w.restaurants, shop)
	}

	for i := range r.config.Customers {
		id, err := r.register(ctx, fake, account.CustomerRole, fake.Person().Name(), "customer", i)
		if err != nil {
			return nil, err
		}
		if err = r.seedCustomerPreferences(ctx, rng, id); err != nil {
			return nil, err
		}
		w.customers = append(w.customers, id)
	}

	for i := range r.config.Couriers {
		id, err := r.register(ctx, fake, account.CourierRole, fake.Person().Name(), "courier", i)
		if err != nil {
			return nil, err
		}
		w.couriers = append(w.couriers, seededCourier{
			id:  id,
			rng: rand.New(rand.NewSource(r.config.Seed + int64(i) + 1)), //nolint:gosec // reproducible scenario data
		})
	}

	return w, nil
}

func (r *Runner) register(
	ctx context.Context,
	fake faker.Faker,
	role account.Role,
	name string,
	prefix string,
	n int,
) (kernel.UUID, error) {
	loc, err := kernel.NewLocation(
		fake.Float64(2, 0, int(r.config.Area)),
		fake.Float64(2, 0, int(r.config.Area)),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	contact := account.Contact{
		Username: fmt.Sprintf("%s-%d", prefix, n),
		Email:    fmt.Sprintf("%s%d.%s", prefix, n, fake.Internet().Email()),
		Phone:    fmt.Sprintf("%s-%d", fake.Phone().Number(), n),
	}
	cmd, err := commands.NewRegisterUserCommand(role, name, contact, loc)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = r.useCases.RegisterUser.Handle(ctx, cmd); err != nil {
		return kernel.UUID{}, fmt.Errorf("register %s %q: %w", prefix, name, err)
	}
	return cmd.UserID(), nil
}

// seedRestaurant registers a restaurant with two dishes per course, a half
// meal, a full meal and a meal of the week.
func (r *Runner) seedRestaurant(ctx context.Context, fake faker.Faker, n int) (seededRestaurant, error) {
	id, err := r.register(ctx, fake, account.RestaurantRole, fake.Company().Name(), "restaurant", n)
	if err != nil {
		return seededRestaurant{}, err
	}
	shop := seededRestaurant{id: id}

	dishes := map[menu.Category][]string{}
	for _, course := range courses {
		for k := range 2 {
			name := fmt.Sprintf("%s %s %d", capitalize(fake.Lorem().Word()), strings.ToLower(course.String()), k+1)
			cmd, cmdErr := commands.NewAddDishCommand(id, commands.DishSpec{
				Name:       name,
				Price:      kernel.MoneyFromFloat(fake.Float64(2, 4, 30)),
				Category:   course,
				Vegetarian: fake.Bool(),
				GlutenFree: fake.Bool(),
			})
			if cmdErr != nil {
				return seededRestaurant{}, cmdErr
			}
			if cmdErr = r.useCases.AddDish.Handle(ctx, cmd); cmdErr != nil {
				return seededRestaurant{}, fmt.Errorf("add dish %q: %w", name, cmdErr)
			}
			dishes[course] = append(dishes[course], name)
			shop.items = append(shop.items, name)
		}
	}

	meals := []struct {
		name   string
		size   menu.MealSize
		dishes []string
	}{
		{"Lunch", menu.HalfMeal, []string{dishes[menu.Starter][0], dishes[menu.Main][0]}},
		{"Dinner", menu.FullMeal, []string{dishes[menu.Starter][1], dishes[menu.Main][1], dishes[menu.Dessert][1]}},
	}
	for _, m := range meals {
		cmd, cmdErr := commands.NewAddMealCommand(id, m.name, m.size, m.dishes...)
		if cmdErr != nil {
			return seededRestaurant{}, cmdErr
		}
		if cmdErr = r.useCases.AddMeal.Handle(ctx, cmd); cmdErr != nil {
			return seededRestaurant{}, fmt.Errorf("add meal %q: %w", m.name, cmdErr)
		}
		shop.items = append(shop.items, m.name)
	}

	rotate, err := commands.NewRotateMealOfTheWeekCommand(id)
	if err != nil {
		return seededRestaurant{}, err
	}
	if _, err = r.useCases.RotateMeal.Handle(ctx, rotate); err != nil {
		return seededRestaurant{}, fmt.Errorf("rotate meal of the week: %w", err)
	}

	return shop, nil
}

// seedCustomerPreferences hands out a random fidelity card and consents half of the customers.
func (r *Runner) seedCustomerPreferences(ctx context.Context, rng *rand.Rand, id kernel.UUID) error {
	kind := fidelity.Kind(rng.Intn(3))
	if kind != fidelity.Basic {
		cmd, err := commands.NewSetFidelityCardCommand(id, kind)
		if err != nil {
			return err
		}
		if err = r.useCases.SetFidelityCard.Handle(ctx, cmd); err != nil {
			return fmt.Errorf("set fidelity card: %w", err)
		}
	}

	if rng.Intn(2) == 0 {
		return nil
	}
	cmd, err := commands.NewSetNotificationConsentCommand(id, true)
	if err != nil {
		return err
	}
	return r.useCases.SetConsent.Handle(ctx, cmd)
}

func capitalize(word string) string {
	if word == "" {
		return "Dish"
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
