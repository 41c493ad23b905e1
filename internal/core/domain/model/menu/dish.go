package menu

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrDishIsNotConstructed is returned when a zero value Dish is used.
	ErrDishIsNotConstructed = errs.NewValueIsRequiredError("dish must be created via NewDish constructor")
	// ErrNameIsRequired is returned for a blank dish or meal name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Dish is a single item on a menu. It is identified by its name within the menu.
//
// Business rules:
//   - name is non-blank
//   - price is not negative
//   - category is one of Starter, Main, Dessert
//
// Example:
//
//	soup, err := menu.NewDish("Onion soup", kernel.MustParseMoney("6.50"), menu.Starter, true, false)
type Dish struct {
	name              string
	price             kernel.Money
	category          Category
	vegetarian        bool
	glutenFree        bool
	deliveryFrequency int
	guard             guard.ConstructorGuard
}

// NewDish creates a Dish with a zero delivery frequency.
func NewDish(name string, price kernel.Money, category Category, vegetarian bool, glutenFree bool) (*Dish, error) {
	d := &Dish{
		vegetarian: vegetarian,
		glutenFree: glutenFree,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setName(name),
		d.setPrice(price),
		d.setCategory(category),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Dish) Validate() error {
	if d == nil {
		return ErrDishIsNotConstructed
	}
	return d.guard.Validate(ErrDishIsNotConstructed)
}

func (d *Dish) Name() string {
	return d.name
}

func (d *Dish) Price() kernel.Money {
	return d.price
}

func (d *Dish) Category() Category {
	return d.category
}

func (d *Dish) IsVegetarian() bool {
	return d.vegetarian
}

func (d *Dish) IsGlutenFree() bool {
	return d.glutenFree
}

// IsMeal is always false for a dish.
func (d *Dish) IsMeal() bool {
	return false
}

// DeliveryFrequency is the number of completed orders that contained this dish.
func (d *Dish) DeliveryFrequency() int {
	return d.deliveryFrequency
}

// RecordDelivery is called once per completed order containing the dish,
// regardless of quantity.
func (d *Dish) RecordDelivery() {
	d.deliveryFrequency++
}

// IsEqual compares dishes by name.
func (d *Dish) IsEqual(other *Dish) bool {
	return other != nil && d.name == other.name
}

func (d *Dish) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Dish) setPrice(price kernel.Money) error {
	if price.IsNegative() {
		return errs.NewValueIsOutOfRangeError("price", price, kernel.Zero, "unbounded")
	}
	d.price = price
	return nil
}

func (d *Dish) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	d.category = category
	return nil
}
