package menu

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrMealIsNotConstructed is returned when a zero value Meal is used.
	ErrMealIsNotConstructed = errs.NewValueIsRequiredError("meal must be created via NewHalfMeal or NewFullMeal")
	// ErrInvalidMealFormula is returned when the dishes do not form a recognized formula.
	ErrInvalidMealFormula = errs.NewValueIsInvalidError("meal formula")
	// ErrPricingStrategyIsRequired is returned for a nil pricing strategy.
	ErrPricingStrategyIsRequired = errs.NewValueIsRequiredError("pricing strategy")
)

// MealSize distinguishes the two meal formulas.
type MealSize int

const (
	// HalfMeal is a main with either a starter or a dessert.
	HalfMeal MealSize = iota + 1
	// FullMeal is a starter, a main and a dessert.
	FullMeal
)

func (s MealSize) String() string {
	switch s {
	case HalfMeal:
		return "half"
	case FullMeal:
		return "full"
	}
	return "unknown"
}

// Meal is a named bundle of dishes sold at a price given by its pricing strategy.
//
// Formulas:
//   - half meal: exactly two dishes, main+starter or main+dessert
//   - full meal: exactly starter+main+dessert
//
// The vegetarian and gluten-free flags hold only when they hold for every dish.
// Meals are compared by name.
type Meal struct {
	name              string
	size              MealSize
	dishes            []*Dish
	pricing           PricingStrategy
	deliveryFrequency int
	guard             guard.ConstructorGuard
}

// NewHalfMeal builds a two-dish meal. Dish order does not matter.
//
// Example:
//
//	lunch, err := menu.NewHalfMeal("Lunch", steak, soup, m.Pricing(menu.GeneralPricing))
//	if errors.Is(err, menu.ErrInvalidMealFormula) {
//	    // e.g. two mains
//	}
func NewHalfMeal(name string, first *Dish, second *Dish, pricing PricingStrategy) (*Meal, error) {
	return newMeal(name, HalfMeal, []*Dish{first, second}, pricing)
}

// NewFullMeal builds a starter+main+dessert meal.
func NewFullMeal(name string, starter *Dish, main *Dish, dessert *Dish, pricing PricingStrategy) (*Meal, error) {
	return newMeal(name, FullMeal, []*Dish{starter, main, dessert}, pricing)
}

// NewMeal builds a meal of the given size from any number of dishes,
// failing with ErrInvalidMealFormula when the count or categories do not fit.
func NewMeal(name string, size MealSize, dishes []*Dish, pricing PricingStrategy) (*Meal, error) {
	return newMeal(name, size, dishes, pricing)
}

func newMeal(name string, size MealSize, dishes []*Dish, pricing PricingStrategy) (*Meal, error) {
	m := &Meal{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setName(name),
		m.setDishes(size, dishes),
		m.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Meal) Validate() error {
	if m == nil {
		return ErrMealIsNotConstructed
	}
	return m.guard.Validate(ErrMealIsNotConstructed)
}

func (m *Meal) Name() string {
	return m.name
}

func (m *Meal) Size() MealSize {
	return m.size
}

// Dishes returns a copy of the member dishes.
func (m *Meal) Dishes() []*Dish {
	out := make([]*Dish, len(m.dishes))
	copy(out, m.dishes)
	return out
}

// Price is the current total computed by the meal's pricing strategy.
func (m *Meal) Price() kernel.Money {
	return m.pricing.Total(m.dishes)
}

func (m *Meal) IsMeal() bool {
	return true
}

func (m *Meal) IsVegetarian() bool {
	for _, d := range m.dishes {
		if !d.IsVegetarian() {
			return false
		}
	}
	return true
}

func (m *Meal) IsGlutenFree() bool {
	for _, d := range m.dishes {
		if !d.IsGlutenFree() {
			return false
		}
	}
	return true
}

func (m *Meal) Pricing() PricingStrategy {
	return m.pricing
}

func (m *Meal) IsMealOfTheWeek() bool {
	return m.pricing.Kind() == MealOfTheWeekPricing
}

// SetPricing replaces the pricing strategy. It reports whether the meal has just
// become meal of the week, which is the caller's cue to broadcast.
func (m *Meal) SetPricing(pricing PricingStrategy) (bool, error) {
	was := m.IsMealOfTheWeek()
	if err := m.setPricing(pricing); err != nil {
		return false, err
	}
	return !was && m.IsMealOfTheWeek(), nil
}

func (m *Meal) DeliveryFrequency() int {
	return m.deliveryFrequency
}

// RecordDelivery is called once per completed order containing the meal.
func (m *Meal) RecordDelivery() {
	m.deliveryFrequency++
}

func (m *Meal) IsEqual(other *Meal) bool {
	return other != nil && m.name == other.name
}

func (m *Meal) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	m.name = name
	return nil
}

func (m *Meal) setDishes(size MealSize, dishes []*Dish) error {
	for _, d := range dishes {
		if err := d.Validate(); err != nil {
			return err
		}
	}

	if err := checkFormula(size, dishes); err != nil {
		return err
	}

	m.size = size
	m.dishes = append([]*Dish(nil), dishes...)
	return nil
}

func (m *Meal) setPricing(pricing PricingStrategy) error {
	if pricing == nil {
		return ErrPricingStrategyIsRequired
	}
	m.pricing = pricing
	return nil
}

func checkFormula(size MealSize, dishes []*Dish) error {
	count := map[Category]int{}
	for _, d := range dishes {
		count[d.Category()]++
	}

	switch size {
	case HalfMeal:
		if len(dishes) == 2 && count[Main] == 1 && (count[Starter] == 1 || count[Dessert] == 1) {
			return nil
		}
	case FullMeal:
		if len(dishes) == 3 && count[Starter] == 1 && count[Main] == 1 && count[Dessert] == 1 {
			return nil
		}
	}

	return fmt.Errorf("%w: %s meal cannot be made of %s", ErrInvalidMealFormula, size, describe(dishes))
}

func describe(dishes []*Dish) string {
	if len(dishes) == 0 {
		return "no dishes"
	}
	parts := make([]string, 0, len(dishes))
	for _, d := range dishes {
		parts = append(parts, d.Category().String())
	}
	return strings.Join(parts, "+")
}
