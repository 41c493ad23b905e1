package profit

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Data holds the three parameters of the profit equation. Any of them may be
// negative after a recomputation.
type Data struct {
	markupPercentage decimal.Decimal
	serviceFee       kernel.Money
	deliveryCost     kernel.Money
}

func NewData(markupPercentage decimal.Decimal, serviceFee kernel.Money, deliveryCost kernel.Money) Data {
	return Data{
		markupPercentage: markupPercentage,
		serviceFee:       serviceFee,
		deliveryCost:     deliveryCost,
	}
}

func (d Data) MarkupPercentage() decimal.Decimal {
	return d.markupPercentage
}

func (d Data) ServiceFee() kernel.Money {
	return d.serviceFee
}

func (d Data) DeliveryCost() kernel.Money {
	return d.deliveryCost
}

func (d Data) WithMarkupPercentage(markup decimal.Decimal) Data {
	d.markupPercentage = markup
	return d
}

func (d Data) WithServiceFee(fee kernel.Money) Data {
	d.serviceFee = fee
	return d
}

func (d Data) WithDeliveryCost(cost kernel.Money) Data {
	d.deliveryCost = cost
	return d
}

// ProfitFor is the platform's profit on one order priced at price.
func (d Data) ProfitFor(price kernel.Money) kernel.Money {
	return price.Mul(d.markupPercentage).Add(d.serviceFee).Sub(d.deliveryCost)
}

// Equal compares all three parameters by value.
func (d Data) Equal(other Data) bool {
	return d.markupPercentage.Equal(other.markupPercentage) &&
		d.serviceFee.Equal(other.serviceFee) &&
		d.deliveryCost.Equal(other.deliveryCost)
}

func (d Data) String() string {
	return fmt.Sprintf("ProfitData(markup=%s, serviceFee=%s, deliveryCost=%s)",
		d.markupPercentage, d.serviceFee, d.deliveryCost)
}
