package menu

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrInvalidDiscount is returned for a discount rate outside [0, 1]. Rates are never clamped.
var ErrInvalidDiscount = errs.NewValueIsInvalidError("discount rate")

var (
	// DefaultGeneralRate applies to every meal that is not meal of the week.
	DefaultGeneralRate = decimal.RequireFromString("0.05")
	// DefaultSpecialRate applies to the meal of the week.
	DefaultSpecialRate = decimal.RequireFromString("0.1")
)

// DiscountMode selects how a rate is applied to the sum of dish prices.
type DiscountMode int

const (
	// Multiplicative charges sum * rate. A 0.05 rate makes a meal cost 5% of its dishes.
	Multiplicative DiscountMode = iota
	// PercentOff charges sum * (1 - rate). A 0.05 rate takes 5% off.
	PercentOff
)

func (m DiscountMode) String() string {
	if m == PercentOff {
		return "percent-off"
	}
	return "multiplicative"
}

// ParseDiscountMode accepts "multiplicative" and "percent-off".
func ParseDiscountMode(s string) (DiscountMode, error) {
	switch s {
	case "multiplicative", "":
		return Multiplicative, nil
	case "percent-off":
		return PercentOff, nil
	}
	return Multiplicative, errs.NewValueIsInvalidErrorWithCause("discount mode", fmt.Errorf("%q is not supported", s))
}

// DiscountRates is the rate configuration shared by a menu and all of its pricing strategies.
type DiscountRates struct {
	general decimal.Decimal
	special decimal.Decimal
	mode    DiscountMode
}

// NewDiscountRates validates both rates. Use DefaultDiscountRates for the platform defaults.
func NewDiscountRates(general decimal.Decimal, special decimal.Decimal, mode DiscountMode) (*DiscountRates, error) {
	if err := validateRate(general); err != nil {
		return nil, err
	}
	if err := validateRate(special); err != nil {
		return nil, err
	}
	return &DiscountRates{general: general, special: special, mode: mode}, nil
}

// DefaultDiscountRates returns 0.05 general and 0.1 special, applied multiplicatively.
func DefaultDiscountRates() *DiscountRates {
	return &DiscountRates{general: DefaultGeneralRate, special: DefaultSpecialRate, mode: Multiplicative}
}

func (r *DiscountRates) General() decimal.Decimal {
	return r.general
}

func (r *DiscountRates) Special() decimal.Decimal {
	return r.special
}

func (r *DiscountRates) Mode() DiscountMode {
	return r.mode
}

// SetGeneral changes the general rate. On error the previous rate is kept.
func (r *DiscountRates) SetGeneral(rate decimal.Decimal) error {
	if err := validateRate(rate); err != nil {
		return err
	}
	r.general = rate
	return nil
}

// SetSpecial changes the meal-of-the-week rate. On error the previous rate is kept.
func (r *DiscountRates) SetSpecial(rate decimal.Decimal) error {
	if err := validateRate(rate); err != nil {
		return err
	}
	r.special = rate
	return nil
}

func (r *DiscountRates) SetMode(mode DiscountMode) {
	r.mode = mode
}

func (r *DiscountRates) apply(sum kernel.Money, rate decimal.Decimal) kernel.Money {
	if r.mode == PercentOff {
		return sum.Mul(decimal.NewFromInt(1).Sub(rate))
	}
	return sum.Mul(rate)
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: %s is outside [0, 1]", ErrInvalidDiscount, rate)
	}
	return nil
}
