package fidelity

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Priced is the part of an order a card needs.
type Priced interface {
	Price() kernel.Money
}

// Kind names a card variant.
type Kind int

const (
	Basic Kind = iota
	Point
	Lottery
)

func (k Kind) String() string {
	switch k {
	case Point:
		return "point"
	case Lottery:
		return "lottery"
	case Basic:
	}
	return "basic"
}

// ParseKind accepts "basic", "point" and "lottery".
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{Basic, Point, Lottery} {
		if k.String() == s {
			return k, nil
		}
	}
	return Basic, errs.NewValueIsInvalidErrorWithCause("fidelity card", fmt.Errorf("%q is not a card type", s))
}

// Card is a customer's discount policy.
//
// FinalPrice returns price minus OrderReduction, always within [0, price].
// Both methods may change the card's state, so exactly one of them is
// called per order.
type Card interface {
	OrderReduction(order Priced) kernel.Money
	FinalPrice(order Priced) kernel.Money
	Kind() Kind
}

// New returns a fresh card of the given kind. Nothing is carried over from
// a previous card.
func New(kind Kind) Card {
	switch kind {
	case Point:
		return NewPointCard()
	case Lottery:
		return NewLotteryCard(DefaultWinProbability, nil)
	case Basic:
	}
	return NewBasicCard()
}

func finalPrice(price kernel.Money, reduction kernel.Money) kernel.Money {
	if price.IsNegative() {
		return kernel.Zero
	}
	return price.Sub(reduction).Clamp(kernel.Zero, price)
}

// BasicCard gives no reduction.
type BasicCard struct{}

func NewBasicCard() *BasicCard {
	return &BasicCard{}
}

func (c *BasicCard) OrderReduction(Priced) kernel.Money {
	return kernel.Zero
}

func (c *BasicCard) FinalPrice(order Priced) kernel.Money {
	return finalPrice(order.Price(), c.OrderReduction(order))
}

func (c *BasicCard) Kind() Kind {
	return Basic
}
