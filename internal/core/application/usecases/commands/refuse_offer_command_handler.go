package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/services"
)

// RefuseOfferCommandHandler runs REFUSE. The order moves on to its next
// candidate; when none is left it stays AwaitingCourier without an offer and
// the handler returns a nil offer.
type RefuseOfferCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
	logger     *slog.Logger
}

func NewRefuseOfferCommandHandler(uowFactory UoWFactory, logger *slog.Logger) RefuseOfferCommandHandler {
	return RefuseOfferCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
		logger:     logger.With("component", "refuse_offer_handler"),
	}
}

func (h RefuseOfferCommandHandler) Handle(ctx context.Context, cmd RefuseOfferCommand) (*services.Offer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	c, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}
	couriers, err := courierRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	next, err := h.dispatcher.Refuse(o, c, couriers)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = courierRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	if next != nil {
		if err = updateOffered(ctx, courierRepo, *next); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if next == nil {
		h.logger.WarnContext(ctx, "candidate pool exhausted", "order_id", int64(o.ID()))
	} else {
		h.logger.InfoContext(ctx, "offer refused",
			"order_id", int64(o.ID()), "courier_id", c.ID().String(), "next_courier_id", next.CourierID.String())
	}
	return next, nil
}
