package fidelity

import (
	"math"
	"math/rand/v2"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// DefaultWinProbability is the chance that an order is free.
const DefaultWinProbability = 0.005

// LotteryCard waives the whole price of an order with probability winProbability.
// Each order draws independently.
type LotteryCard struct {
	winProbability float64
	draw           func() float64
}

// NewLotteryCard creates a card. A nil draw uses math/rand/v2; tests inject a fixed sequence.
func NewLotteryCard(winProbability float64, draw func() float64) *LotteryCard {
	if draw == nil {
		draw = rand.Float64
	}
	return &LotteryCard{winProbability: winProbability, draw: draw}
}

// NewLotteryCardWithProbability validates the probability first.
func NewLotteryCardWithProbability(winProbability float64) (*LotteryCard, error) {
	if winProbability < 0 || winProbability > 1 || math.IsNaN(winProbability) {
		return nil, errs.NewValueIsOutOfRangeError("win probability", winProbability, 0, 1)
	}
	return NewLotteryCard(winProbability, nil), nil
}

func (c *LotteryCard) WinProbability() float64 {
	return c.winProbability
}

func (c *LotteryCard) OrderReduction(order Priced) kernel.Money {
	if c.draw() < c.winProbability {
		return order.Price()
	}
	return kernel.Zero
}

func (c *LotteryCard) FinalPrice(order Priced) kernel.Money {
	return finalPrice(order.Price(), c.OrderReduction(order))
}

func (c *LotteryCard) Kind() Kind {
	return Lottery
}
