// Package platform holds the marketplace-wide settings a manager tunes: how couriers
// are matched to orders and the economics of every order.
package platform

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/profit"
	"marketplace/internal/pkg/errs"
)

// DeliveryPolicy selects how on-duty couriers are ranked for an order.
type DeliveryPolicy int

const (
	// FastestDelivery prefers the courier closest to the restaurant.
	FastestDelivery DeliveryPolicy = iota
	// FairOccupationDelivery prefers the courier with the fewest completed deliveries.
	FairOccupationDelivery
)

func (p DeliveryPolicy) String() string {
	if p == FairOccupationDelivery {
		return "fair-occupation"
	}
	return "fastest"
}

func (p DeliveryPolicy) Validate() error {
	if p != FastestDelivery && p != FairOccupationDelivery {
		return errs.NewValueIsInvalidErrorWithCause("delivery policy", fmt.Errorf("%d is not a policy", p))
	}
	return nil
}

// ParseDeliveryPolicy accepts "fastest" and "fair-occupation".
func ParseDeliveryPolicy(s string) (DeliveryPolicy, error) {
	switch s {
	case "fastest":
		return FastestDelivery, nil
	case "fair-occupation":
		return FairOccupationDelivery, nil
	}
	return FastestDelivery, errs.NewValueIsInvalidErrorWithCause("delivery policy", fmt.Errorf("%q is not a policy", s))
}

// Settings is the single platform configuration record.
type Settings struct {
	deliveryPolicy DeliveryPolicy
	profitData     profit.Data
	targetProfit   kernel.Money
}

func NewSettings(policy DeliveryPolicy, data profit.Data, targetProfit kernel.Money) (*Settings, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Settings{
		deliveryPolicy: policy,
		profitData:     data,
		targetProfit:   targetProfit,
	}, nil
}

func (s *Settings) DeliveryPolicy() DeliveryPolicy {
	return s.deliveryPolicy
}

func (s *Settings) SetDeliveryPolicy(policy DeliveryPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	s.deliveryPolicy = policy
	return nil
}

func (s *Settings) ProfitData() profit.Data {
	return s.profitData
}

func (s *Settings) SetProfitData(data profit.Data) {
	s.profitData = data
}

func (s *Settings) TargetProfit() kernel.Money {
	return s.targetProfit
}

func (s *Settings) SetTargetProfit(target kernel.Money) {
	s.targetProfit = target
}
