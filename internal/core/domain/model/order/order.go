package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder.
	ErrOrderIsNotConstructed = errs.NewValueIsRequiredError("order must be created via NewOrder constructor")
	// ErrItemNotInOrder is returned when removing an item the order does not contain.
	ErrItemNotInOrder = errs.NewObjectNotFoundError("item", "not in order")
	// ErrItemIsRequired is returned for a nil item.
	ErrItemIsRequired = errs.NewValueIsRequiredError("item")
	// ErrOrderIsEmpty is returned when finalizing an order without items.
	ErrOrderIsEmpty = errs.NewInvalidStateError("order", "empty", "finalize")
	// ErrNoCandidates is returned when offering from an empty candidate pool.
	ErrNoCandidates = errs.NewResourceExhaustedError("order candidate pool")
	// ErrNoPendingOffer is returned when a courier answers an offer the order did not make to it.
	ErrNoPendingOffer = errs.NewInvalidStateError("order", "without that pending offer", "answer an offer of")
)

// ID identifies an order. IDs are positive and assigned in increasing order.
type ID int64

// Order is the aggregate root of a purchase. It is created Open for one customer at one
// restaurant, collects line items, is finalized at a price, and is then dispatched.
//
// Dispatch state:
//   - candidates is the ranked list of couriers that may still be offered the order
//   - when offered is true, the head of candidates holds the one outstanding offer
//   - refusing removes the head; the dispatcher then offers to the new head
//
// Every method validates completely before mutating, so a failed call leaves the
// order unchanged.
//
// Example:
//
//	o, _ := order.NewOrder(7, customerID, restaurantID, time.Now())
//	_ = o.AddItem(soup)
//	_ = o.Finalize(card.FinalPrice(o))
type Order struct {
	id           ID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	lines        []LineItem
	// price is the running total of the line items
	price      kernel.Money
	finalPrice kernel.Money
	courierID  *kernel.UUID
	candidates []kernel.UUID
	offered    bool
	status     Status
	createdAt  time.Time
	// completedAt is zero until the order is completed
	completedAt time.Time
	guard       guard.ConstructorGuard
}

// NewOrder creates an Open order without items.
//
// Parameters:
//   - id: positive identifier, unique across the platform
//   - customerID: the customer placing the order
//   - restaurantID: the restaurant preparing the order
//   - createdAt: creation time, must not be zero
func NewOrder(id ID, customerID kernel.UUID, restaurantID kernel.UUID, createdAt time.Time) (*Order, error) {
	o := &Order{
		status: Open,
		guard:  guard.NewConstructorGuard(),
	}

	var idErr, createdErr error
	if id <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not greater than 0", id))
	}
	if createdAt.IsZero() {
		createdErr = errs.NewValueIsRequiredError("created at")
	}
	if err := errors.Join(idErr, customerID.Validate(), restaurantID.Validate(), createdErr); err != nil {
		return nil, err
	}

	o.id = id
	o.customerID = customerID
	o.restaurantID = restaurantID
	o.createdAt = createdAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() ID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// CompletedAt returns the completion time, zero for orders that are not completed.
func (o *Order) CompletedAt() time.Time {
	return o.completedAt
}

// Price is the running total of all line items before any fidelity reduction.
func (o *Order) Price() kernel.Money {
	return o.price
}

// FinalPrice is what the customer pays. It is set by Finalize.
func (o *Order) FinalPrice() kernel.Money {
	return o.finalPrice
}

// Lines returns a copy of the line items in the order they were first added.
func (o *Order) Lines() []LineItem {
	return slices.Clone(o.lines)
}

// Items returns each distinct item once, for delivery counters.
func (o *Order) Items() []Item {
	seen := map[string]struct{}{}
	var out []Item
	for _, l := range o.lines {
		if _, dup := seen[l.Name()]; dup {
			continue
		}
		seen[l.Name()] = struct{}{}
		out = append(out, l.item)
	}
	return out
}

// Courier returns the assigned courier's ID, nil until a courier accepts.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// AddItem adds one unit of item at its current price.
func (o *Order) AddItem(item Item) error {
	if item == nil {
		return ErrItemIsRequired
	}
	if o.status != Open {
		return errs.NewInvalidStateError("order", o.status.String(), "add items to")
	}

	unit := item.Price()
	if i := o.findLine(item.Name(), &unit); i >= 0 {
		o.lines[i].quantity++
	} else {
		o.lines = append(o.lines, LineItem{item: item, quantity: 1, unitPrice: unit})
	}
	o.price = o.price.Add(unit)
	return nil
}

// RemoveItem removes one unit of item, taking it from the most recently created
// line with that item. It fails with ErrItemNotInOrder when the item is absent.
func (o *Order) RemoveItem(item Item) error {
	if item == nil {
		return ErrItemIsRequired
	}
	if o.status != Open {
		return errs.NewInvalidStateError("order", o.status.String(), "remove items from")
	}

	i := o.findLine(item.Name(), nil)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotInOrder, item.Name())
	}

	o.price = o.price.Sub(o.lines[i].unitPrice)
	o.lines[i].quantity--
	if o.lines[i].quantity == 0 {
		o.lines = slices.Delete(o.lines, i, i+1)
	}
	return nil
}

// ValidateFinalize reports whether Finalize would succeed, without side effects.
// Callers check it before evaluating a fidelity card, which must run only once.
func (o *Order) ValidateFinalize() error {
	if _, err := o.status.Finalize(); err != nil {
		return err
	}
	if len(o.lines) == 0 {
		return ErrOrderIsEmpty
	}
	return nil
}

// Finalize closes the order for changes at the given final price and moves it to AwaitingCourier.
// The final price must lie within [0, Price()].
func (o *Order) Finalize(finalPrice kernel.Money) error {
	if err := o.ValidateFinalize(); err != nil {
		return err
	}
	if finalPrice.IsNegative() || finalPrice.Cmp(o.price) > 0 {
		return errs.NewValueIsOutOfRangeError("final price", finalPrice, kernel.Zero, o.price)
	}

	o.status = AwaitingCourier
	o.finalPrice = finalPrice
	return nil
}

// Cancel abandons an Open order.
func (o *Order) Cancel() error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Candidates returns a copy of the couriers that may still be offered the order, best first.
func (o *Order) Candidates() []kernel.UUID {
	return slices.Clone(o.candidates)
}

// SetCandidates replaces the candidate pool. It is allowed only while awaiting a
// courier and with no offer outstanding.
func (o *Order) SetCandidates(pool []kernel.UUID) error {
	if o.status != AwaitingCourier {
		return errs.NewInvalidStateError("order", o.status.String(), "dispatch")
	}
	if o.offered {
		return errs.NewInvalidStateError("order", "offered", "dispatch")
	}

	o.candidates = slices.Clone(pool)
	return nil
}

// OfferedCourier returns the courier holding the outstanding offer, if any.
func (o *Order) OfferedCourier() (kernel.UUID, bool) {
	if !o.offered || len(o.candidates) == 0 {
		return kernel.UUID{}, false
	}
	return o.candidates[0], true
}

// HasOfferFor reports whether courierID holds this order's outstanding offer.
func (o *Order) HasOfferFor(courierID kernel.UUID) bool {
	head, ok := o.OfferedCourier()
	return ok && head.IsEqual(courierID)
}

// IsExhausted reports an order that awaits a courier with nobody left to offer it to.
func (o *Order) IsExhausted() bool {
	return o.status == AwaitingCourier && len(o.candidates) == 0
}

// MarkOffered records that the head of the pool has been offered the order.
func (o *Order) MarkOffered() (kernel.UUID, error) {
	if o.status != AwaitingCourier {
		return kernel.UUID{}, errs.NewInvalidStateError("order", o.status.String(), "offer")
	}
	if len(o.candidates) == 0 {
		return kernel.UUID{}, ErrNoCandidates
	}

	o.offered = true
	return o.candidates[0], nil
}

// DropCandidate removes courierID from the pool. It reports whether the courier
// held the outstanding offer, in which case no offer is outstanding anymore.
func (o *Order) DropCandidate(courierID kernel.UUID) bool {
	i := slices.IndexFunc(o.candidates, courierID.IsEqual)
	if i < 0 {
		return false
	}

	wasOffered := o.offered && i == 0
	o.candidates = slices.Delete(o.candidates, i, i+1)
	if wasOffered {
		o.offered = false
	}
	return wasOffered
}

// Refuse removes courierID, which must hold the outstanding offer, from the pool.
func (o *Order) Refuse(courierID kernel.UUID) error {
	if !o.HasOfferFor(courierID) {
		return fmt.Errorf("%w: order %d, courier %s", ErrNoPendingOffer, o.id, courierID)
	}
	o.DropCandidate(courierID)
	return nil
}

// AssignTo hands the order to courierID, which must hold the outstanding offer.
// The candidate pool is cleared.
func (o *Order) AssignTo(courierID kernel.UUID) error {
	if !o.HasOfferFor(courierID) {
		return fmt.Errorf("%w: order %d, courier %s", ErrNoPendingOffer, o.id, courierID)
	}
	next, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = next
	o.courierID = &courierID
	o.candidates = nil
	o.offered = false
	return nil
}

// Complete marks a delivering order as delivered at the given time.
func (o *Order) Complete(at time.Time) error {
	next, err := o.status.Complete()
	if err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("completed at")
	}

	o.status = next
	o.completedAt = at
	return nil
}

// findLine returns the index of the last line for name, optionally with the given unit price.
func (o *Order) findLine(name string, unit *kernel.Money) int {
	for i := len(o.lines) - 1; i >= 0; i-- {
		if o.lines[i].Name() != name {
			continue
		}
		if unit == nil || o.lines[i].unitPrice.Equal(*unit) {
			return i
		}
	}
	return -1
}
