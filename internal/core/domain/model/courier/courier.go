package courier

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrUsernameIsRequired is returned when attempting to create a courier without a username.
	ErrUsernameIsRequired = errs.NewValueIsRequiredError("username")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errs.NewValueIsRequiredError("courier must be created via NewCourier constructor")
	// ErrCourierIsOffDuty is returned when an off-duty courier is offered an order.
	ErrCourierIsOffDuty = errs.NewInvalidStateError("courier", "off duty", "offer an order to")
	// ErrNoPendingOffer is returned when a courier answers an offer it does not hold.
	ErrNoPendingOffer = errs.NewInvalidStateError("courier", "without that pending offer", "answer an offer of")
	// ErrCourierIsDelivering is returned for operations that need the courier to be free.
	ErrCourierIsDelivering = errs.NewInvalidStateError("courier", "delivering", "change duty of")
	// ErrCourierHasPendingOffers is returned when a courier with pending offers goes off duty.
	ErrCourierHasPendingOffers = errs.NewInvalidStateError("courier", "with pending offers", "take off duty")
)

// Courier represents a delivery courier in the system.
//
// Key responsibilities:
//   - Tracking duty status and the number of completed deliveries
//   - Holding the list of orders currently offered to the courier
//   - Holding the single order the courier accepted
//
// Example usage:
//
//	c, err := courier.NewCourier(kernel.NewUUID(), "John Doe", "john", location)
//	if err != nil {
//	    // Handle construction error
//	}
//	_ = c.ReceiveOffer(orderID)
//	others, _ := c.Accept(orderID) // others were auto-refused
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name     string
	username string
	// location is where the courier currently is
	location kernel.Location
	onDuty   bool
	// deliveredCount is the number of completed deliveries
	deliveredCount int
	// pendingOffers holds offered orders in the order they were offered
	pendingOffers []order.ID
	currentOrder  *order.ID
	guard         guard.ConstructorGuard
}

// NewCourier creates an on-duty courier with no deliveries.
//
// Parameters:
//   - id: Unique identifier for the courier (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - username: Login name (must be non-empty)
//   - location: Current location of the courier
func NewCourier(id kernel.UUID, name string, username string, location kernel.Location) (*Courier, error) {
	c := &Courier{
		onDuty: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setUsername(username),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) Name() string {
	return c.name
}

func (c *Courier) Username() string {
	return c.username
}

func (c *Courier) Location() kernel.Location {
	return c.location
}

func (c *Courier) Role() account.Role {
	return account.CourierRole
}

func (c *Courier) IsOnDuty() bool {
	return c.onDuty
}

func (c *Courier) DeliveredCount() int {
	return c.deliveredCount
}

// PendingOffers returns a copy of the offered order IDs, oldest first.
func (c *Courier) PendingOffers() []order.ID {
	return slices.Clone(c.pendingOffers)
}

func (c *Courier) HasOffer(orderID order.ID) bool {
	return slices.Contains(c.pendingOffers, orderID)
}

// CurrentOrder returns the accepted order, if any.
func (c *Courier) CurrentOrder() (order.ID, bool) {
	if c.currentOrder == nil {
		return 0, false
	}
	return *c.currentOrder, true
}

func (c *Courier) IsDelivering() bool {
	return c.currentOrder != nil
}

// ReceiveOffer records a pending offer. Receiving the same offer twice is a no-op.
func (c *Courier) ReceiveOffer(orderID order.ID) error {
	if !c.onDuty {
		return fmt.Errorf("%w: order %d", ErrCourierIsOffDuty, orderID)
	}
	if !c.HasOffer(orderID) {
		c.pendingOffers = append(c.pendingOffers, orderID)
	}
	return nil
}

// DropOffer removes a pending offer, as when the courier refuses it.
func (c *Courier) DropOffer(orderID order.ID) error {
	i := slices.Index(c.pendingOffers, orderID)
	if i < 0 {
		return fmt.Errorf("%w: order %d", ErrNoPendingOffer, orderID)
	}
	c.pendingOffers = slices.Delete(c.pendingOffers, i, i+1)
	return nil
}

// Accept takes the offered order, goes off duty and clears every pending offer.
// It returns the other offers the courier held, which are now refused.
func (c *Courier) Accept(orderID order.ID) ([]order.ID, error) {
	if !c.HasOffer(orderID) {
		return nil, fmt.Errorf("%w: order %d", ErrNoPendingOffer, orderID)
	}

	others := make([]order.ID, 0, len(c.pendingOffers)-1)
	for _, id := range c.pendingOffers {
		if id != orderID {
			others = append(others, id)
		}
	}

	c.pendingOffers = nil
	c.currentOrder = &orderID
	c.onDuty = false
	return others, nil
}

// CompleteDelivery finishes the accepted order and puts the courier back on duty.
func (c *Courier) CompleteDelivery(orderID order.ID) error {
	if c.currentOrder == nil || *c.currentOrder != orderID {
		return errs.NewInvalidStateError("courier", "not delivering that order", "complete a delivery of")
	}

	c.currentOrder = nil
	c.deliveredCount++
	c.onDuty = true
	return nil
}

// GoOnDuty makes a free courier available for offers.
func (c *Courier) GoOnDuty() error {
	if c.IsDelivering() {
		return ErrCourierIsDelivering
	}
	c.onDuty = true
	return nil
}

// GoOffDuty stops offers. Pending offers must be answered first.
func (c *Courier) GoOffDuty() error {
	if len(c.pendingOffers) > 0 {
		return ErrCourierHasPendingOffers
	}
	c.onDuty = false
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameIsRequired
	}
	c.username = username
	return nil
}

func (c *Courier) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
