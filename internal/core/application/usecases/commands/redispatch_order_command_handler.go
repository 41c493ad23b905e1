package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/services"
)

// RedispatchOrderCommandHandler retries the dispatch of an AwaitingCourier order
// without an outstanding offer. Nothing changes when no courier is available.
type RedispatchOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
	logger     *slog.Logger
}

func NewRedispatchOrderCommandHandler(uowFactory UoWFactory, logger *slog.Logger) RedispatchOrderCommandHandler {
	return RedispatchOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
		logger:     logger.With("component", "redispatch_order_handler"),
	}
}

func (h RedispatchOrderCommandHandler) Handle(ctx context.Context, cmd RedispatchOrderCommand) (services.Offer, error) {
	if err := cmd.Validate(); err != nil {
		return services.Offer{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Offer{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return services.Offer{}, err
	}

	d, err := loadDispatchContext(ctx, uow, o)
	if err != nil {
		return services.Offer{}, err
	}

	offer, err := h.dispatcher.Dispatch(o, d.onDuty, d.restaurant, d.strategy)
	if err != nil {
		return services.Offer{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return services.Offer{}, err
	}
	if err = updateOffered(ctx, uow.CourierRepository(), offer); err != nil {
		return services.Offer{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.Offer{}, err
	}

	h.logger.InfoContext(ctx, "order redispatched",
		"order_id", int64(o.ID()), "courier_id", offer.CourierID.String())
	return offer, nil
}
