package kernel

import (
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount in the platform currency.
// It may be negative: profit computations legitimately produce negative
// delivery costs or fees. Prices of dishes and orders are validated by
// their owners, not by Money.
//
// The zero value is a valid amount of 0.
type Money struct {
	amount decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// NewMoney wraps a decimal amount.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// MoneyFromFloat converts a float amount. Use it for configuration and generated data only.
func MoneyFromFloat(amount float64) Money {
	return Money{amount: decimal.NewFromFloat(amount)}
}

// MoneyFromInt converts a whole amount.
func MoneyFromInt(amount int64) Money {
	return Money{amount: decimal.NewFromInt(amount)}
}

// ParseMoney parses a decimal string such as "12.50".
func ParseMoney(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return Money{amount: amount}, nil
}

// MustParseMoney is ParseMoney for literals known to be valid. It panics otherwise.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal exposes the underlying amount for arithmetic with rates.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Mul scales the amount by a rate or a count.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// Div divides the amount by a non-zero divisor. Callers check the divisor.
func (m Money) Div(divisor decimal.Decimal) Money {
	return Money{amount: m.amount.Div(divisor)}
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Cmp returns -1, 0 or +1.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equal compares amounts by value, so 1.5 equals 1.50.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Clamp bounds the amount to [lo, hi].
func (m Money) Clamp(lo Money, hi Money) Money {
	if m.Cmp(lo) < 0 {
		return lo
	}
	if m.Cmp(hi) > 0 {
		return hi
	}
	return m
}

// String renders the amount with two decimals, e.g. "12.50".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// SumMoney adds all amounts.
func SumMoney(amounts ...Money) Money {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
