package profit

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyWindow is returned when there is no order to average over.
	ErrEmptyWindow = errs.NewResourceExhaustedError("profit window")
	// ErrZeroAveragePrice is returned when solving for the markup over orders that cost nothing.
	ErrZeroAveragePrice = errs.NewValueIsInvalidError("average order price")
)

// Priced is an order of the profit window.
type Priced interface {
	Price() kernel.Money
}

// Kind names the parameter a policy solves for.
type Kind int

const (
	DeliveryCostOriented Kind = iota
	ServiceFeeOriented
	MarkupPercentageOriented
)

func (k Kind) String() string {
	switch k {
	case ServiceFeeOriented:
		return "service-fee"
	case MarkupPercentageOriented:
		return "markup-percentage"
	case DeliveryCostOriented:
	}
	return "delivery-cost"
}

func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{DeliveryCostOriented, ServiceFeeOriented, MarkupPercentageOriented} {
		if k.String() == s {
			return k, nil
		}
	}
	return DeliveryCostOriented, errs.NewValueIsInvalidErrorWithCause("profit policy", fmt.Errorf("%q is not a policy", s))
}

// Policy recomputes one parameter of current so that the window of orders yields
// targetProfit. The other two parameters are kept.
type Policy interface {
	Recompute(current Data, window []Priced, targetProfit kernel.Money) (Data, error)
	Kind() Kind
}

// NewPolicy returns the policy solving for the parameter named by kind.
func NewPolicy(kind Kind) Policy {
	switch kind {
	case ServiceFeeOriented:
		return ServiceFeePolicy{}
	case MarkupPercentageOriented:
		return MarkupPercentagePolicy{}
	case DeliveryCostOriented:
	}
	return DeliveryCostPolicy{}
}

// DeliveryCostPolicy solves deliveryCost = avg*markup + fee - target/n.
type DeliveryCostPolicy struct{}

func (DeliveryCostPolicy) Recompute(current Data, window []Priced, targetProfit kernel.Money) (Data, error) {
	avg, perOrder, err := averages(window, targetProfit)
	if err != nil {
		return current, err
	}

	cost := avg.Mul(current.markupPercentage).Add(current.serviceFee).Sub(perOrder)
	return current.WithDeliveryCost(cost), nil
}

func (DeliveryCostPolicy) Kind() Kind {
	return DeliveryCostOriented
}

// ServiceFeePolicy solves serviceFee = target/n - avg*markup + cost.
type ServiceFeePolicy struct{}

func (ServiceFeePolicy) Recompute(current Data, window []Priced, targetProfit kernel.Money) (Data, error) {
	avg, perOrder, err := averages(window, targetProfit)
	if err != nil {
		return current, err
	}

	fee := perOrder.Sub(avg.Mul(current.markupPercentage)).Add(current.deliveryCost)
	return current.WithServiceFee(fee), nil
}

func (ServiceFeePolicy) Kind() Kind {
	return ServiceFeeOriented
}

// MarkupPercentagePolicy solves markup = (target/n - fee + cost) / avg.
type MarkupPercentagePolicy struct{}

func (MarkupPercentagePolicy) Recompute(current Data, window []Priced, targetProfit kernel.Money) (Data, error) {
	avg, perOrder, err := averages(window, targetProfit)
	if err != nil {
		return current, err
	}
	if avg.IsZero() {
		return current, ErrZeroAveragePrice
	}

	markup := perOrder.Sub(current.serviceFee).Add(current.deliveryCost).Decimal().Div(avg.Decimal())
	return current.WithMarkupPercentage(markup), nil
}

func (MarkupPercentagePolicy) Kind() Kind {
	return MarkupPercentageOriented
}

// averages returns the average order price and the target profit per order.
func averages(window []Priced, targetProfit kernel.Money) (kernel.Money, kernel.Money, error) {
	if len(window) == 0 {
		return kernel.Zero, kernel.Zero, ErrEmptyWindow
	}

	n := decimal.NewFromInt(int64(len(window)))
	total := kernel.Zero
	for _, o := range window {
		total = total.Add(o.Price())
	}

	return total.Div(n), targetProfit.Div(n), nil
}
