package menu

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ErrDishNotOnMenu is returned when a meal refers to a dish the menu does not hold.
var ErrDishNotOnMenu = errs.NewValueIsInvalidError("dish is not on this menu")

// Item is anything a customer can order from a menu: a *Dish or a *Meal.
type Item interface {
	Name() string
	IsMeal() bool
}

// Menu is the catalogue of one restaurant. Dish and meal names share one namespace,
// so every name resolves to at most one item.
type Menu struct {
	rates  *DiscountRates
	dishes []*Dish
	meals  []*Meal
	byName map[string]Item
}

// NewMenu creates an empty menu priced with the given rates.
func NewMenu(rates *DiscountRates) *Menu {
	if rates == nil {
		rates = DefaultDiscountRates()
	}
	return &Menu{
		rates:  rates,
		byName: map[string]Item{},
	}
}

// Rates exposes the shared rate configuration.
func (m *Menu) Rates() *DiscountRates {
	return m.rates
}

// Pricing returns a strategy bound to this menu's rates.
func (m *Menu) Pricing(kind PricingKind) PricingStrategy {
	if kind == MealOfTheWeekPricing {
		return NewMealOfTheWeekDiscount(m.rates)
	}
	return NewGeneralDiscount(m.rates)
}

// AddDish fails with ObjectAlreadyExists when the name is taken.
func (m *Menu) AddDish(d *Dish) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := m.checkFreeName(d.Name()); err != nil {
		return err
	}

	m.dishes = append(m.dishes, d)
	m.byName[d.Name()] = d
	return nil
}

// AddMeal fails when the name is taken or any of the meal's dishes belongs to another menu.
func (m *Menu) AddMeal(meal *Meal) error {
	if err := meal.Validate(); err != nil {
		return err
	}
	if err := m.checkFreeName(meal.Name()); err != nil {
		return err
	}
	for _, d := range meal.dishes {
		if own, ok := m.byName[d.Name()].(*Dish); !ok || own != d {
			return fmt.Errorf("%w: %s", ErrDishNotOnMenu, d.Name())
		}
	}

	m.meals = append(m.meals, meal)
	m.byName[meal.Name()] = meal
	return nil
}

// Dish resolves a dish by name.
func (m *Menu) Dish(name string) (*Dish, error) {
	if d, ok := m.byName[name].(*Dish); ok {
		return d, nil
	}
	return nil, errs.NewObjectNotFoundError("dish", name)
}

// Meal resolves a meal by name.
func (m *Menu) Meal(name string) (*Meal, error) {
	if meal, ok := m.byName[name].(*Meal); ok {
		return meal, nil
	}
	return nil, errs.NewObjectNotFoundError("meal", name)
}

// Item resolves a dish or a meal by name.
func (m *Menu) Item(name string) (Item, error) {
	if it, ok := m.byName[name]; ok {
		return it, nil
	}
	return nil, errs.NewObjectNotFoundError("menu item", name)
}

// Dishes returns the dishes in insertion order.
func (m *Menu) Dishes() []*Dish {
	return append([]*Dish(nil), m.dishes...)
}

// Meals returns the meals in insertion order.
func (m *Menu) Meals() []*Meal {
	return append([]*Meal(nil), m.meals...)
}

// MealsOfTheWeek returns the meals currently priced with the special rate.
func (m *Menu) MealsOfTheWeek() []*Meal {
	var out []*Meal
	for _, meal := range m.meals {
		if meal.IsMealOfTheWeek() {
			out = append(out, meal)
		}
	}
	return out
}

// NextMealOfTheWeek picks the meal following the last current meal of the week,
// wrapping around. With no current one it returns the first meal.
// It returns nil for a menu without meals.
func (m *Menu) NextMealOfTheWeek() *Meal {
	if len(m.meals) == 0 {
		return nil
	}
	next := 0
	for i, meal := range m.meals {
		if meal.IsMealOfTheWeek() {
			next = (i + 1) % len(m.meals)
		}
	}
	return m.meals[next]
}

func (m *Menu) checkFreeName(name string) error {
	if _, taken := m.byName[name]; taken {
		return errs.NewObjectAlreadyExistsError("name", name)
	}
	return nil
}
