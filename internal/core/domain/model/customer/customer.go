// Package customer models the people who place orders.
package customer

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/fidelity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCustomerIsNotConstructed = errs.NewValueIsRequiredError("customer must be created via NewCustomer constructor")
	ErrNameIsRequired           = errs.NewValueIsRequiredError("name")
	ErrUsernameIsRequired       = errs.NewValueIsRequiredError("username")
	ErrCardIsRequired           = errs.NewValueIsRequiredError("fidelity card")
)

// Customer orders from restaurants. A new customer holds a basic fidelity card
// and has not consented to notifications.
//
// Customer keeps a textual log of the notifications it received until the log
// is cleared.
type Customer struct {
	id            kernel.UUID
	name          string
	username      string
	location      kernel.Location
	consent       bool
	notifications []string
	card          fidelity.Card
	guard         guard.ConstructorGuard
}

func NewCustomer(id kernel.UUID, name string, username string, location kernel.Location) (*Customer, error) {
	c := &Customer{
		card:  fidelity.NewBasicCard(),
		guard: guard.NewConstructorGuard(),
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

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) Username() string {
	return c.username
}

func (c *Customer) Location() kernel.Location {
	return c.location
}

func (c *Customer) Role() account.Role {
	return account.CustomerRole
}

// HasConsent reports whether the customer agreed to receive notifications.
func (c *Customer) HasConsent() bool {
	return c.consent
}

func (c *Customer) SetConsent(consent bool) {
	c.consent = consent
}

// Notify appends a message to the notification log.
func (c *Customer) Notify(message string) {
	c.notifications = append(c.notifications, message)
}

// Notifications returns a copy of the log, oldest first.
func (c *Customer) Notifications() []string {
	return append([]string(nil), c.notifications...)
}

func (c *Customer) ClearNotifications() {
	c.notifications = nil
}

func (c *Customer) Card() fidelity.Card {
	return c.card
}

// ReplaceCard installs a card. Callers pass a new card; state is never migrated.
func (c *Customer) ReplaceCard(card fidelity.Card) error {
	if card == nil {
		return ErrCardIsRequired
	}
	c.card = card
	return nil
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Customer) setUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameIsRequired
	}
	c.username = username
	return nil
}

func (c *Customer) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
