package order

import (
	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Item is a dish or a meal as seen by an order.
type Item interface {
	Name() string
	Price() kernel.Money
	IsMeal() bool
	RecordDelivery()
}

// LineItem is one menu item in an order with its multiplicity. The unit price is
// fixed when the first unit is added; the same item added later at a different
// price goes on a separate line.
type LineItem struct {
	item      Item
	quantity  int
	unitPrice kernel.Money
}

func (l LineItem) Item() Item {
	return l.item
}

func (l LineItem) Name() string {
	return l.item.Name()
}

func (l LineItem) Quantity() int {
	return l.quantity
}

func (l LineItem) UnitPrice() kernel.Money {
	return l.unitPrice
}

func (l LineItem) Total() kernel.Money {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}
