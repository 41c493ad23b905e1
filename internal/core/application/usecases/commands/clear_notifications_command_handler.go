package commands

import (
	"context"
)

type ClearNotificationsCommandHandler struct {
	uowFactory UoWFactory
}

func NewClearNotificationsCommandHandler(uowFactory UoWFactory) ClearNotificationsCommandHandler {
	return ClearNotificationsCommandHandler{uowFactory: uowFactory}
}

// Handle clears the log and returns how many notifications it held.
func (h ClearNotificationsCommandHandler) Handle(ctx context.Context, cmd ClearNotificationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerRepository()
	c, err := customerRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return 0, err
	}

	cleared := len(c.Notifications())
	c.ClearNotifications()
	if err = customerRepo.Update(ctx, c); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return cleared, nil
}
