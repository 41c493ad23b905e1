package menu

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// PricingKind names the built-in pricing strategies.
type PricingKind int

const (
	GeneralPricing PricingKind = iota
	MealOfTheWeekPricing
)

func (k PricingKind) String() string {
	if k == MealOfTheWeekPricing {
		return "meal-of-the-week"
	}
	return "general"
}

// ParsePricingKind accepts "general" and "meal-of-the-week".
func ParsePricingKind(s string) (PricingKind, error) {
	switch s {
	case "general":
		return GeneralPricing, nil
	case "meal-of-the-week":
		return MealOfTheWeekPricing, nil
	}
	return GeneralPricing, errs.NewValueIsInvalidErrorWithCause("pricing", fmt.Errorf("%q is not supported", s))
}

// PricingStrategy computes the price of a meal from its dishes.
// Total is pure and never negative for dishes with non-negative prices.
type PricingStrategy interface {
	Total(dishes []*Dish) kernel.Money
	Kind() PricingKind
}

// GeneralDiscount prices a meal with the general rate.
type GeneralDiscount struct {
	rates *DiscountRates
}

func NewGeneralDiscount(rates *DiscountRates) GeneralDiscount {
	return GeneralDiscount{rates: rates}
}

func (s GeneralDiscount) Total(dishes []*Dish) kernel.Money {
	return s.rates.apply(sumPrices(dishes), s.rates.General())
}

func (s GeneralDiscount) Kind() PricingKind {
	return GeneralPricing
}

// MealOfTheWeekDiscount prices a meal with the special rate.
type MealOfTheWeekDiscount struct {
	rates *DiscountRates
}

func NewMealOfTheWeekDiscount(rates *DiscountRates) MealOfTheWeekDiscount {
	return MealOfTheWeekDiscount{rates: rates}
}

func (s MealOfTheWeekDiscount) Total(dishes []*Dish) kernel.Money {
	return s.rates.apply(sumPrices(dishes), s.rates.Special())
}

func (s MealOfTheWeekDiscount) Kind() PricingKind {
	return MealOfTheWeekPricing
}

func sumPrices(dishes []*Dish) kernel.Money {
	prices := make([]kernel.Money, 0, len(dishes))
	for _, d := range dishes {
		prices = append(prices, d.Price())
	}
	return kernel.SumMoney(prices...)
}
