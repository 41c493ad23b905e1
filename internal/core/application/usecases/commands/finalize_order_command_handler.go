package commands

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/restaurant"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// FinalizeOrderCommandHandler runs FINALIZE and the first OFFER of the dispatch protocol.
//
// The customer's card is evaluated exactly once, after every check has passed.
// When no courier can be offered the order, the finalization is still committed:
// the order stays AwaitingCourier and the handler returns
// services.ErrAvailableCourierNotFound so the caller can redispatch later.
// Any other dispatch failure rolls the finalization back.
//
// Example:
//
//	offer, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrAvailableCourierNotFound):
//	    log.Println("order is waiting for a courier")
//	case err != nil:
//	    return err
//	default:
//	    log.Printf("order %d offered to %s", offer.OrderID, offer.CourierID)
//	}
type FinalizeOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
	logger     *slog.Logger
}

func NewFinalizeOrderCommandHandler(uowFactory UoWFactory, logger *slog.Logger) FinalizeOrderCommandHandler {
	return FinalizeOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
		logger:     logger.With("component", "finalize_order_handler"),
	}
}

func (h FinalizeOrderCommandHandler) Handle(ctx context.Context, cmd FinalizeOrderCommand) (services.Offer, error) {
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
	customerRepo := uow.CustomerRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return services.Offer{}, err
	}
	if err = o.ValidateFinalize(); err != nil {
		return services.Offer{}, err
	}

	c, err := customerRepo.Get(ctx, o.CustomerID())
	if err != nil {
		return services.Offer{}, err
	}

	d, err := loadDispatchContext(ctx, uow, o)
	if err != nil {
		return services.Offer{}, err
	}

	if err = o.Finalize(c.Card().FinalPrice(o)); err != nil {
		return services.Offer{}, err
	}
	if err = customerRepo.Update(ctx, c); err != nil {
		return services.Offer{}, err
	}

	offer, dispatchErr := h.dispatcher.Dispatch(o, d.onDuty, d.restaurant, d.strategy)
	if dispatchErr != nil && !errors.Is(dispatchErr, services.ErrAvailableCourierNotFound) {
		return services.Offer{}, dispatchErr
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return services.Offer{}, err
	}

	if dispatchErr != nil {
		// The settlement stands: the order is AwaitingCourier and can be redispatched.
		if err = uow.Commit(ctx); err != nil {
			return services.Offer{}, err
		}
		h.logger.WarnContext(ctx, "order finalized without courier",
			"order_id", int64(o.ID()), "final_price", o.FinalPrice().String(), "error", dispatchErr)
		return services.Offer{}, dispatchErr
	}

	if err = updateOffered(ctx, uow.CourierRepository(), offer); err != nil {
		return services.Offer{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.Offer{}, err
	}

	h.logger.InfoContext(ctx, "order finalized",
		"order_id", int64(o.ID()),
		"price", o.Price().String(),
		"final_price", o.FinalPrice().String(),
		"courier_id", offer.CourierID.String(),
		"candidates", len(o.Candidates()))
	return offer, nil
}

type dispatchContext struct {
	restaurant *restaurant.Restaurant
	onDuty     []*courier.Courier
	strategy   services.DeliveryMatchStrategy
}

// loadDispatchContext reads everything Dispatch needs for o.
func loadDispatchContext(ctx context.Context, uow UoW, o *order.Order) (dispatchContext, error) {
	r, err := uow.RestaurantRepository().Get(ctx, o.RestaurantID())
	if err != nil {
		return dispatchContext{}, err
	}

	settings, err := uow.SettingsRepository().Get(ctx)
	if err != nil {
		return dispatchContext{}, err
	}

	onDuty, err := uow.CourierRepository().GetAllOnDuty(ctx)
	if err != nil {
		return dispatchContext{}, err
	}

	return dispatchContext{
		restaurant: r,
		onDuty:     onDuty,
		strategy:   services.NewDeliveryMatchStrategy(settings.DeliveryPolicy()),
	}, nil
}

// updateOffered persists the couriers that just received offers.
func updateOffered(ctx context.Context, courierRepo ports.CourierRepository, offers ...services.Offer) error {
	for _, offer := range offers {
		c, err := courierRepo.Get(ctx, offer.CourierID)
		if err != nil {
			return err
		}
		if err = courierRepo.Update(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
