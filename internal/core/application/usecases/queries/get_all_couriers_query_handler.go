package queries

import (
	"cmp"
	"context"
	"slices"
)

// GetAllCouriersQueryHandler lists couriers sorted by name.
type GetAllCouriersQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetAllCouriersQueryHandler(uowFactory ReadUoWFactory) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{uowFactory: uowFactory}
}

func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetAllCouriersQueryResponse, 0)
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		all, err := uow.CourierRepository().GetAll(ctx)
		if err != nil {
			return err
		}

		for _, c := range all {
			response := GetAllCouriersQueryResponse{
				ID:            c.ID(),
				Name:          c.Name(),
				Location:      c.Location(),
				OnDuty:        c.IsOnDuty(),
				Delivered:     c.DeliveredCount(),
				PendingOffers: c.PendingOffers(),
			}
			if current, ok := c.CurrentOrder(); ok {
				response.Delivering = &current
			}
			couriers = append(couriers, response)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(couriers, func(a, b GetAllCouriersQueryResponse) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), a.ID.Compare(b.ID))
	})
	return couriers, nil
}
