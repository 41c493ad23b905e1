package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrSetNotificationConsentCommandIsNotConstructed = errors.New(
	"SetNotificationConsentCommand must be created via NewSetNotificationConsentCommand constructor",
)

// SetNotificationConsentCommand records whether a customer wants meal-of-the-week announcements.
type SetNotificationConsentCommand struct {
	customerID kernel.UUID
	consent    bool

	guard guard.ConstructorGuard
}

func NewSetNotificationConsentCommand(customerID kernel.UUID, consent bool) (SetNotificationConsentCommand, error) {
	if err := customerID.Validate(); err != nil {
		return SetNotificationConsentCommand{}, err
	}
	return SetNotificationConsentCommand{customerID: customerID, consent: consent, guard: guard.NewConstructorGuard()}, nil
}

func (c SetNotificationConsentCommand) Validate() error {
	return c.guard.Validate(ErrSetNotificationConsentCommandIsNotConstructed)
}

func (c SetNotificationConsentCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c SetNotificationConsentCommand) Consent() bool {
	return c.consent
}
