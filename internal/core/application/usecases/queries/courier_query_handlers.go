package queries

import (
	"context"

	"marketplace/internal/core/domain/services"
)

type RankCouriersQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewRankCouriersQueryHandler(uowFactory ReadUoWFactory) RankCouriersQueryHandler {
	return RankCouriersQueryHandler{uowFactory: uowFactory}
}

func (h RankCouriersQueryHandler) Handle(ctx context.Context, query RankCouriersQuery) (RankCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return RankCouriersQueryResponse{}, err
	}

	var response RankCouriersQueryResponse
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		r, err := uow.RestaurantRepository().Get(ctx, query.RestaurantID())
		if err != nil {
			return err
		}

		policy, ok := query.Policy()
		if !ok {
			settings, settingsErr := uow.SettingsRepository().Get(ctx)
			if settingsErr != nil {
				return settingsErr
			}
			policy = settings.DeliveryPolicy()
		}

		couriers, err := uow.CourierRepository().GetAllOnDuty(ctx)
		if err != nil {
			return err
		}
		ranked, err := services.NewDeliveryMatchStrategy(policy).Rank(couriers, r)
		if err != nil {
			return err
		}

		response = RankCouriersQueryResponse{Policy: policy, Couriers: make([]RankedCourier, 0, len(ranked))}
		for _, c := range ranked {
			d, distErr := c.Location().DistanceTo(r.Location())
			if distErr != nil {
				return distErr
			}
			response.Couriers = append(response.Couriers, RankedCourier{
				ID:        c.ID(),
				Name:      c.Name(),
				Distance:  d,
				Delivered: c.DeliveredCount(),
			})
		}
		return nil
	})
	return response, err
}

// GetPendingOffersQueryHandler resolves each pending offer to its order.
type GetPendingOffersQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetPendingOffersQueryHandler(uowFactory ReadUoWFactory) GetPendingOffersQueryHandler {
	return GetPendingOffersQueryHandler{uowFactory: uowFactory}
}

func (h GetPendingOffersQueryHandler) Handle(ctx context.Context, query GetPendingOffersQuery) ([]PendingOffer, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	offers := make([]PendingOffer, 0)
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		c, err := uow.CourierRepository().Get(ctx, query.CourierID())
		if err != nil {
			return err
		}

		for _, id := range c.PendingOffers() {
			o, getErr := uow.OrderRepository().Get(ctx, id)
			if getErr != nil {
				return getErr
			}
			r, getErr := uow.RestaurantRepository().Get(ctx, o.RestaurantID())
			if getErr != nil {
				return getErr
			}
			offers = append(offers, PendingOffer{
				OrderID:      o.ID(),
				RestaurantID: r.ID(),
				Pickup:       r.Location(),
				FinalPrice:   o.FinalPrice(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return offers, nil
}
