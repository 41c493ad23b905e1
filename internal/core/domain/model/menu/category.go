package menu

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Category is the course a dish belongs to. Meal formulas are expressed in categories.
type Category int

const (
	UnknownCategory Category = iota
	Starter
	Main
	Dessert
)

func (c Category) String() string {
	switch c {
	case Starter:
		return "Starter"
	case Main:
		return "Main"
	case Dessert:
		return "Dessert"
	case UnknownCategory:
	}
	return "Unknown"
}

func (c Category) Validate() error {
	if c < Starter || c > Dessert {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

// ParseCategory accepts the names returned by String, case-sensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range []Category{Starter, Main, Dessert} {
		if c.String() == s {
			return c, nil
		}
	}
	return UnknownCategory, errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a valid category", s))
}
