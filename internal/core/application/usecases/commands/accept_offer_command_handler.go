package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/services"
)

// AcceptOfferCommandHandler runs ACCEPT and its cascading refusal as one unit of work.
//
// Every AwaitingCourier order is loaded so the dispatcher can remove the
// accepting courier from all candidate pools before advancing the orders the
// courier was holding. Accepting an offer the courier does not hold fails with
// services.ErrInvalidOfferState and changes nothing.
type AcceptOfferCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
	logger     *slog.Logger
}

func NewAcceptOfferCommandHandler(uowFactory UoWFactory, logger *slog.Logger) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
		logger:     logger.With("component", "accept_offer_handler"),
	}
}

func (h AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) (services.AcceptResult, error) {
	if err := cmd.Validate(); err != nil {
		return services.AcceptResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.AcceptResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return services.AcceptResult{}, err
	}
	c, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return services.AcceptResult{}, err
	}
	awaiting, err := orderRepo.GetAllAwaitingCourier(ctx)
	if err != nil {
		return services.AcceptResult{}, err
	}
	couriers, err := courierRepo.GetAll(ctx)
	if err != nil {
		return services.AcceptResult{}, err
	}

	result, err := h.dispatcher.Accept(o, c, awaiting, couriers)
	if err != nil {
		return services.AcceptResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return services.AcceptResult{}, err
	}
	if err = courierRepo.Update(ctx, c); err != nil {
		return services.AcceptResult{}, err
	}
	// The courier left every candidate pool, not only those it was offered.
	for _, other := range awaiting {
		if other.ID() == o.ID() {
			continue
		}
		if err = orderRepo.Update(ctx, other); err != nil {
			return services.AcceptResult{}, err
		}
	}
	if err = updateOffered(ctx, courierRepo, result.Offers...); err != nil {
		return services.AcceptResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.AcceptResult{}, err
	}

	h.logger.InfoContext(ctx, "offer accepted",
		"order_id", int64(o.ID()), "courier_id", c.ID().String())
	for _, offer := range result.Offers {
		h.logger.DebugContext(ctx, "cascaded offer",
			"order_id", int64(offer.OrderID), "courier_id", offer.CourierID.String())
	}
	for _, id := range result.Exhausted {
		h.logger.WarnContext(ctx, "candidate pool exhausted by cascade", "order_id", int64(id))
	}
	return result, nil
}
