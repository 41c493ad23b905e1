package fidelity

import (
	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	// PointsForDiscount is the point balance that earns the next-order discount.
	PointsForDiscount = 100
)

var (
	spendPerPoint  = decimal.NewFromInt(10)
	spendWindow    = decimal.NewFromInt(1000)
	pointsDiscount = decimal.RequireFromString("0.1")
)

// PointCard earns one point per 10 units spent. Reaching 100 points arms a
// one-shot 10% discount for the following order.
//
// Spend is kept modulo 1000 once the threshold is hit, so a single large order
// arms at most one discount and any spend above a multiple of 1000 carries over.
//
// Example:
//
//	card := fidelity.NewPointCard()
//	card.FinalPrice(orderOf1000) // 1000, discount armed
//	card.FinalPrice(orderOf50)   // 45, discount consumed
type PointCard struct {
	moneySpent        kernel.Money
	points            int
	nextOrderDiscount bool
}

func NewPointCard() *PointCard {
	return &PointCard{}
}

func (c *PointCard) Points() int {
	return c.points
}

func (c *PointCard) MoneySpent() kernel.Money {
	return c.moneySpent
}

func (c *PointCard) HasNextOrderDiscount() bool {
	return c.nextOrderDiscount
}

// OrderReduction consumes an armed discount, then books the order's full price
// as spend.
func (c *PointCard) OrderReduction(order Priced) kernel.Money {
	price := order.Price()

	reduction := kernel.Zero
	if c.nextOrderDiscount {
		reduction = price.Mul(pointsDiscount)
		c.nextOrderDiscount = false
	}

	c.moneySpent = c.moneySpent.Add(price)
	c.points = pointsFor(c.moneySpent)
	if c.points >= PointsForDiscount {
		c.nextOrderDiscount = true
		c.moneySpent = kernel.NewMoney(c.moneySpent.Decimal().Mod(spendWindow))
		c.points = pointsFor(c.moneySpent)
	}

	return reduction
}

func (c *PointCard) FinalPrice(order Priced) kernel.Money {
	return finalPrice(order.Price(), c.OrderReduction(order))
}

func (c *PointCard) Kind() Kind {
	return Point
}

func pointsFor(spent kernel.Money) int {
	return int(spent.Decimal().Div(spendPerPoint).Floor().IntPart())
}
