package commands

import (
	"context"
)

// SetCourierDutyCommandHandler switches a courier's availability. A courier
// holding offers cannot go off duty, and a delivering courier cannot come back
// on duty before completing the delivery.
type SetCourierDutyCommandHandler struct {
	uowFactory UoWFactory
}

func NewSetCourierDutyCommandHandler(uowFactory UoWFactory) SetCourierDutyCommandHandler {
	return SetCourierDutyCommandHandler{uowFactory: uowFactory}
}

func (h SetCourierDutyCommandHandler) Handle(ctx context.Context, cmd SetCourierDutyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	c, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if cmd.OnDuty() {
		err = c.GoOnDuty()
	} else {
		err = c.GoOffDuty()
	}
	if err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
