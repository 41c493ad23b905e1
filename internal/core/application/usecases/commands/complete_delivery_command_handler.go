package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler runs COMPLETE: the delivery counters move,
// the courier returns on duty and the order is appended to the history log.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
	clock      Clock
	logger     *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates the handler. A nil clock uses time.Now.
func NewCompleteDeliveryCommandHandler(uowFactory UoWFactory, clock Clock, logger *slog.Logger) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
		clock:      clock,
		logger:     logger.With("component", "complete_delivery_handler"),
	}
}

func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()
	restaurantRepo := uow.RestaurantRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	assigned := o.Courier()
	if assigned == nil {
		return errs.NewInvalidStateError("order", o.Status().String(), "complete")
	}
	c, err := courierRepo.Get(ctx, *assigned)
	if err != nil {
		return err
	}
	r, err := restaurantRepo.Get(ctx, o.RestaurantID())
	if err != nil {
		return err
	}

	if err = h.dispatcher.Complete(o, c, r, h.clock.now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}
	if err = restaurantRepo.Update(ctx, r); err != nil {
		return err
	}
	if err = uow.HistoryRepository().Append(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "delivery completed",
		"order_id", int64(o.ID()), "courier_id", c.ID().String(), "restaurant_id", r.ID().String())
	return nil
}
