package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/fidelity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrSetFidelityCardCommandIsNotConstructed = errors.New(
	"SetFidelityCardCommand must be created via NewSetFidelityCardCommand constructor",
)

// SetFidelityCardCommand gives a customer a fresh card of the chosen kind.
// The state of the previous card is dropped.
type SetFidelityCardCommand struct {
	customerID kernel.UUID
	kind       fidelity.Kind

	guard guard.ConstructorGuard
}

func NewSetFidelityCardCommand(customerID kernel.UUID, kind fidelity.Kind) (SetFidelityCardCommand, error) {
	var kindErr error
	if kind != fidelity.Basic && kind != fidelity.Point && kind != fidelity.Lottery {
		kindErr = errs.NewValueIsInvalidError("fidelity card kind")
	}
	if err := errors.Join(customerID.Validate(), kindErr); err != nil {
		return SetFidelityCardCommand{}, err
	}
	return SetFidelityCardCommand{customerID: customerID, kind: kind, guard: guard.NewConstructorGuard()}, nil
}

func (c SetFidelityCardCommand) Validate() error {
	return c.guard.Validate(ErrSetFidelityCardCommandIsNotConstructed)
}

func (c SetFidelityCardCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c SetFidelityCardCommand) Kind() fidelity.Kind {
	return c.kind
}
