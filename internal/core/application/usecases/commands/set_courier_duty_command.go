package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrSetCourierDutyCommandIsNotConstructed = errors.New(
	"SetCourierDutyCommand must be created via NewSetCourierDutyCommand constructor",
)

// SetCourierDutyCommand puts a courier on or off duty.
type SetCourierDutyCommand struct {
	courierID kernel.UUID
	onDuty    bool

	guard guard.ConstructorGuard
}

func NewSetCourierDutyCommand(courierID kernel.UUID, onDuty bool) (SetCourierDutyCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SetCourierDutyCommand{}, err
	}
	return SetCourierDutyCommand{courierID: courierID, onDuty: onDuty, guard: guard.NewConstructorGuard()}, nil
}

func (c SetCourierDutyCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierDutyCommandIsNotConstructed)
}

func (c SetCourierDutyCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c SetCourierDutyCommand) OnDuty() bool {
	return c.onDuty
}
