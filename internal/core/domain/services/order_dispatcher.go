package services

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/restaurant"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrAvailableCourierNotFound is returned when no on-duty courier can be offered an order.
	// The order stays AwaitingCourier and may be dispatched again later.
	ErrAvailableCourierNotFound = errs.NewResourceExhaustedError("available courier")
	// ErrInvalidOfferState is returned when a courier answers an offer it does not hold.
	ErrInvalidOfferState = errs.NewInvalidStateError("offer", "not pending", "answer")
)

// Offer is an order offered to one courier.
type Offer struct {
	OrderID   order.ID
	CourierID kernel.UUID
}

// AcceptResult describes the effects of an acceptance on the other orders.
type AcceptResult struct {
	// Cascaded lists the orders the accepting courier had been offered and now refused.
	Cascaded []order.ID
	// Offers are the follow-up offers made for the cascaded orders.
	Offers []Offer
	// Exhausted lists cascaded orders with nobody left to offer them to.
	Exhausted []order.ID
}

// OrderDispatcher is a domain service that runs the sequential offer protocol.
//
// Protocol:
//   - Dispatch ranks the on-duty couriers into the order's candidate pool and
//     offers the order to the head of the pool
//   - Refuse pops the refusing courier and offers the order to the next candidate
//   - Accept assigns the order, takes the courier off duty, removes the courier
//     from every other order's pool and re-offers the orders it had been holding
//   - Complete closes the order and updates every delivery counter
//
// An order is offered to at most one courier at a time. Every method validates
// its inputs before mutating anything, so a rejected call changes nothing.
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	offer, err := dispatcher.Dispatch(o, couriers, r, services.FairOccupationDelivery{})
//	if errors.Is(err, services.ErrAvailableCourierNotFound) {
//	    // nobody on duty, try again later
//	}
type OrderDispatcher struct{}

// NewOrderDispatcher creates a new OrderDispatcher instance.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch builds the candidate pool of an AwaitingCourier order and makes the first offer.
//
// Parameters:
//   - o: an order awaiting a courier with no outstanding offer
//   - couriers: the couriers to consider; off-duty ones are ignored
//   - r: the restaurant the order is picked up from
//   - strategy: the ranking to use
//
// Returns:
//   - Offer: the courier now holding the offer
//   - error: ErrAvailableCourierNotFound when nobody can be offered the order
func (d OrderDispatcher) Dispatch(
	o *order.Order,
	couriers []*courier.Courier,
	r *restaurant.Restaurant,
	strategy DeliveryMatchStrategy,
) (Offer, error) {
	if err := o.Validate(); err != nil {
		return Offer{}, err
	}
	if o.Status() != order.AwaitingCourier {
		return Offer{}, errs.NewInvalidStateError("order", o.Status().String(), "dispatch")
	}
	if _, offered := o.OfferedCourier(); offered {
		return Offer{}, errs.NewInvalidStateError("order", "offered", "dispatch")
	}
	if !r.ID().IsEqual(o.RestaurantID()) {
		return Offer{}, errs.NewValueIsInvalidErrorWithCause("restaurant",
			fmt.Errorf("order %d is not from restaurant %s", o.ID(), r.ID()))
	}

	ranked, err := strategy.Rank(couriers, r)
	if err != nil {
		return Offer{}, err
	}
	if len(ranked) == 0 {
		return Offer{}, fmt.Errorf("%w: order %d", ErrAvailableCourierNotFound, o.ID())
	}

	pool := make([]kernel.UUID, 0, len(ranked))
	for _, c := range ranked {
		pool = append(pool, c.ID())
	}
	if err = o.SetCandidates(pool); err != nil {
		return Offer{}, err
	}

	offer, err := d.advance(o, index(ranked))
	if err != nil {
		return Offer{}, err
	}
	if offer == nil {
		return Offer{}, fmt.Errorf("%w: order %d", ErrAvailableCourierNotFound, o.ID())
	}
	return *offer, nil
}

// Accept assigns o to c, which must hold o's outstanding offer.
//
// awaiting must contain every order c currently holds an offer for; it may contain
// any other AwaitingCourier order too. couriers resolves the candidates of those
// orders for the follow-up offers.
//
// The accepting courier is first removed from every candidate pool. Only then is
// each order that had been offered to it advanced to its next candidate, so the
// cascade never returns an order to the courier that just accepted.
func (d OrderDispatcher) Accept(
	o *order.Order,
	c *courier.Courier,
	awaiting []*order.Order,
	couriers []*courier.Courier,
) (AcceptResult, error) {
	if err := errors.Join(o.Validate(), c.Validate()); err != nil {
		return AcceptResult{}, err
	}
	if err := checkOffer(o, c); err != nil {
		return AcceptResult{}, err
	}

	byID := map[order.ID]*order.Order{}
	for _, other := range awaiting {
		if other.ID() != o.ID() {
			byID[other.ID()] = other
		}
	}
	for _, id := range c.PendingOffers() {
		if id == o.ID() {
			continue
		}
		if other, ok := byID[id]; !ok || !other.HasOfferFor(c.ID()) {
			return AcceptResult{}, errs.NewObjectNotFoundError("offered order", id)
		}
	}

	if _, err := c.Accept(o.ID()); err != nil {
		return AcceptResult{}, err
	}
	if err := o.AssignTo(c.ID()); err != nil {
		return AcceptResult{}, err
	}

	var result AcceptResult
	for _, other := range awaiting {
		if other.ID() == o.ID() {
			continue
		}
		if other.DropCandidate(c.ID()) {
			result.Cascaded = append(result.Cascaded, other.ID())
		}
	}

	known := index(couriers)
	for _, id := range result.Cascaded {
		offer, err := d.advance(byID[id], known)
		if err != nil {
			return result, err
		}
		if offer == nil {
			result.Exhausted = append(result.Exhausted, id)
			continue
		}
		result.Offers = append(result.Offers, *offer)
	}

	return result, nil
}

// Refuse removes c from o's pool and offers o to the next candidate.
// A nil Offer with a nil error means the pool is exhausted and o waits for
// another Dispatch.
func (d OrderDispatcher) Refuse(o *order.Order, c *courier.Courier, couriers []*courier.Courier) (*Offer, error) {
	if err := errors.Join(o.Validate(), c.Validate()); err != nil {
		return nil, err
	}
	if err := checkOffer(o, c); err != nil {
		return nil, err
	}

	if err := c.DropOffer(o.ID()); err != nil {
		return nil, err
	}
	if err := o.Refuse(c.ID()); err != nil {
		return nil, err
	}

	return d.advance(o, index(couriers))
}

// Complete marks the delivery of o by c from r as done at the given time.
// The restaurant, the courier and every distinct dish or meal of the order
// record one more delivery, and the courier goes back on duty.
func (d OrderDispatcher) Complete(o *order.Order, c *courier.Courier, r *restaurant.Restaurant, at time.Time) error {
	if err := errors.Join(o.Validate(), c.Validate(), r.Validate()); err != nil {
		return err
	}
	if o.Status() != order.AcceptedAndDelivering {
		return errs.NewInvalidStateError("order", o.Status().String(), "complete")
	}
	if assigned := o.Courier(); assigned == nil || !assigned.IsEqual(c.ID()) {
		return errs.NewInvalidStateError("courier", "not assigned to the order", "complete a delivery of")
	}
	if current, ok := c.CurrentOrder(); !ok || current != o.ID() {
		return errs.NewInvalidStateError("courier", "not delivering the order", "complete a delivery of")
	}
	if !r.ID().IsEqual(o.RestaurantID()) {
		return errs.NewValueIsInvalidErrorWithCause("restaurant",
			fmt.Errorf("order %d is not from restaurant %s", o.ID(), r.ID()))
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("completed at")
	}

	if err := o.Complete(at); err != nil {
		return err
	}
	if err := c.CompleteDelivery(o.ID()); err != nil {
		return err
	}
	r.RecordDelivery()
	for _, item := range o.Items() {
		item.RecordDelivery()
	}
	return nil
}

// advance offers o to the first candidate able to receive it, dropping candidates
// that are unknown or no longer on duty. It returns nil when the pool runs out.
func (d OrderDispatcher) advance(o *order.Order, couriers map[kernel.UUID]*courier.Courier) (*Offer, error) {
	for {
		candidates := o.Candidates()
		if len(candidates) == 0 {
			return nil, nil
		}

		head := candidates[0]
		c, ok := couriers[head]
		if !ok || !c.IsOnDuty() {
			o.DropCandidate(head)
			continue
		}

		if err := c.ReceiveOffer(o.ID()); err != nil {
			return nil, err
		}
		if _, err := o.MarkOffered(); err != nil {
			return nil, err
		}
		return &Offer{OrderID: o.ID(), CourierID: head}, nil
	}
}

func checkOffer(o *order.Order, c *courier.Courier) error {
	if !o.HasOfferFor(c.ID()) || !c.HasOffer(o.ID()) {
		return fmt.Errorf("%w: order %d, courier %s", ErrInvalidOfferState, o.ID(), c.ID())
	}
	return nil
}

func index(couriers []*courier.Courier) map[kernel.UUID]*courier.Courier {
	out := make(map[kernel.UUID]*courier.Courier, len(couriers))
	for _, c := range couriers {
		out[c.ID()] = c
	}
	return out
}
