package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/platform"
	"marketplace/internal/pkg/guard"
)

var (
	ErrRankCouriersQueryIsNotConstructed = errors.New(
		"RankCouriersQuery must be created via NewRankCouriersQuery constructor",
	)
	ErrGetPendingOffersQueryIsNotConstructed = errors.New(
		"GetPendingOffersQuery must be created via NewGetPendingOffersQuery constructor",
	)
)

// RankCouriersQuery shows the candidate pool a dispatch from a restaurant would
// build right now. Without an explicit policy the platform's active one is used.
//
// Example:
//
//	fair := platform.FairOccupationDelivery
//	query, _ := NewRankCouriersQuery(restaurantID, &fair)
//	ranked, err := handler.Handle(ctx, query)
type RankCouriersQuery struct {
	restaurantID kernel.UUID
	policy       *platform.DeliveryPolicy

	guard guard.ConstructorGuard
}

func NewRankCouriersQuery(restaurantID kernel.UUID, policy *platform.DeliveryPolicy) (RankCouriersQuery, error) {
	var policyErr error
	if policy != nil {
		policyErr = policy.Validate()
	}
	if err := errors.Join(restaurantID.Validate(), policyErr); err != nil {
		return RankCouriersQuery{}, err
	}

	query := RankCouriersQuery{restaurantID: restaurantID, guard: guard.NewConstructorGuard()}
	if policy != nil {
		p := *policy
		query.policy = &p
	}
	return query, nil
}

func (q RankCouriersQuery) Validate() error {
	return q.guard.Validate(ErrRankCouriersQueryIsNotConstructed)
}

func (q RankCouriersQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// Policy returns the requested policy and whether one was given.
func (q RankCouriersQuery) Policy() (platform.DeliveryPolicy, bool) {
	if q.policy == nil {
		return platform.FastestDelivery, false
	}
	return *q.policy, true
}

// RankedCourier is one entry of a ranked pool, best first.
type RankedCourier struct {
	ID        kernel.UUID
	Name      string
	Distance  float64
	Delivered int
}

// RankCouriersQueryResponse carries the policy that produced the ranking.
type RankCouriersQueryResponse struct {
	Policy   platform.DeliveryPolicy
	Couriers []RankedCourier
}

// GetPendingOffersQuery lists the offers a courier has not answered yet.
type GetPendingOffersQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPendingOffersQuery(courierID kernel.UUID) (GetPendingOffersQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetPendingOffersQuery{}, err
	}
	return GetPendingOffersQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPendingOffersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOffersQueryIsNotConstructed)
}

func (q GetPendingOffersQuery) CourierID() kernel.UUID {
	return q.courierID
}

// PendingOffer describes an order offered to the courier.
type PendingOffer struct {
	OrderID      order.ID
	RestaurantID kernel.UUID
	Pickup       kernel.Location
	FinalPrice   kernel.Money
}
