package services

import (
	"cmp"
	"slices"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/platform"
	"marketplace/internal/core/domain/model/restaurant"
)

// DeliveryMatchStrategy ranks couriers for an order from a restaurant, best first.
//
// Rank ignores couriers that are off duty and returns an empty slice, not an
// error, when nobody is on duty. The ranking is a total order: ties are broken
// by courier ID, so the same input always yields the same pool.
type DeliveryMatchStrategy interface {
	Rank(couriers []*courier.Courier, r *restaurant.Restaurant) ([]*courier.Courier, error)
	Policy() platform.DeliveryPolicy
}

// NewDeliveryMatchStrategy returns the strategy implementing policy.
func NewDeliveryMatchStrategy(policy platform.DeliveryPolicy) DeliveryMatchStrategy {
	if policy == platform.FairOccupationDelivery {
		return FairOccupationDelivery{}
	}
	return FastestDelivery{}
}

// FastestDelivery ranks couriers by distance to the restaurant, nearest first.
type FastestDelivery struct{}

func (FastestDelivery) Policy() platform.DeliveryPolicy {
	return platform.FastestDelivery
}

func (FastestDelivery) Rank(couriers []*courier.Courier, r *restaurant.Restaurant) ([]*courier.Courier, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	type ranked struct {
		c        *courier.Courier
		distance float64
	}
	pool := make([]ranked, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.IsOnDuty() {
			continue
		}
		d, err := c.Location().DistanceTo(r.Location())
		if err != nil {
			return nil, err
		}
		pool = append(pool, ranked{c: c, distance: d})
	}

	slices.SortFunc(pool, func(a, b ranked) int {
		return cmp.Or(cmp.Compare(a.distance, b.distance), a.c.ID().Compare(b.c.ID()))
	})

	out := make([]*courier.Courier, 0, len(pool))
	for _, p := range pool {
		out = append(out, p.c)
	}
	return out, nil
}

// FairOccupationDelivery ranks couriers by completed deliveries, least busy first.
type FairOccupationDelivery struct{}

func (FairOccupationDelivery) Policy() platform.DeliveryPolicy {
	return platform.FairOccupationDelivery
}

func (FairOccupationDelivery) Rank(couriers []*courier.Courier, r *restaurant.Restaurant) ([]*courier.Courier, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	out := make([]*courier.Courier, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.IsOnDuty() {
			out = append(out, c)
		}
	}

	slices.SortFunc(out, func(a, b *courier.Courier) int {
		return cmp.Or(cmp.Compare(a.DeliveredCount(), b.DeliveredCount()), a.ID().Compare(b.ID()))
	})
	return out, nil
}
