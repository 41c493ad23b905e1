package commands

import (
	"context"

	"marketplace/internal/core/domain/services"
)

// SetNotificationConsentCommandHandler keeps the notification channel in step
// with customer consent: consenting subscribes, withdrawing unsubscribes.
type SetNotificationConsentCommandHandler struct {
	uowFactory UoWFactory
	channel    *services.NotificationChannel
}

func NewSetNotificationConsentCommandHandler(
	uowFactory UoWFactory,
	channel *services.NotificationChannel,
) SetNotificationConsentCommandHandler {
	return SetNotificationConsentCommandHandler{uowFactory: uowFactory, channel: channel}
}

func (h SetNotificationConsentCommandHandler) Handle(ctx context.Context, cmd SetNotificationConsentCommand) error {
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

	customerRepo := uow.CustomerRepository()
	c, err := customerRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	c.SetConsent(cmd.Consent())
	if err = customerRepo.Update(ctx, c); err != nil {
		return err
	}

	if cmd.Consent() {
		if err = h.channel.Subscribe(c); err != nil {
			return err
		}
	} else {
		h.channel.Unsubscribe(c.ID())
	}

	return uow.Commit(ctx)
}
