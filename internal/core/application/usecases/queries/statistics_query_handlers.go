package queries

import (
	"cmp"
	"context"
	"slices"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type GetPlatformStatisticsQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetPlatformStatisticsQueryHandler(uowFactory ReadUoWFactory) GetPlatformStatisticsQueryHandler {
	return GetPlatformStatisticsQueryHandler{uowFactory: uowFactory}
}

// Handle returns zero totals for a window without completed orders.
func (h GetPlatformStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetPlatformStatisticsQuery,
) (PlatformStatistics, error) {
	if err := query.Validate(); err != nil {
		return PlatformStatistics{}, err
	}

	stats := PlatformStatistics{From: query.From(), To: query.To()}
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		settings, err := uow.SettingsRepository().Get(ctx)
		if err != nil {
			return err
		}
		completed, err := uow.HistoryRepository().GetCompletedBetween(ctx, query.From(), query.To())
		if err != nil {
			return err
		}

		data := settings.ProfitData()
		customers := map[kernel.UUID]struct{}{}
		for _, o := range completed {
			stats.TotalIncome = stats.TotalIncome.Add(o.FinalPrice())
			stats.TotalProfit = stats.TotalProfit.Add(data.ProfitFor(o.Price()))
			customers[o.CustomerID()] = struct{}{}
		}
		stats.Orders = len(completed)
		stats.Customers = len(customers)
		return nil
	})
	if err != nil {
		return PlatformStatistics{}, err
	}

	if stats.Customers > 0 {
		stats.AverageIncomePerCustomer = stats.TotalIncome.Div(decimal.NewFromInt(int64(stats.Customers)))
	}
	return stats, nil
}

type GetActivityRankingQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetActivityRankingQueryHandler(uowFactory ReadUoWFactory) GetActivityRankingQueryHandler {
	return GetActivityRankingQueryHandler{uowFactory: uowFactory}
}

func (h GetActivityRankingQueryHandler) Handle(ctx context.Context, query GetActivityRankingQuery) (ActivityRanking, error) {
	if err := query.Validate(); err != nil {
		return ActivityRanking{}, err
	}

	ranking := ActivityRanking{Couriers: []Activity{}, Restaurants: []Activity{}}
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		couriers, err := uow.CourierRepository().GetAll(ctx)
		if err != nil {
			return err
		}
		for _, c := range couriers {
			ranking.Couriers = append(ranking.Couriers, Activity{ID: c.ID(), Name: c.Name(), Delivered: c.DeliveredCount()})
		}

		restaurants, err := uow.RestaurantRepository().GetAll(ctx)
		if err != nil {
			return err
		}
		for _, r := range restaurants {
			ranking.Restaurants = append(ranking.Restaurants,
				Activity{ID: r.ID(), Name: r.Name(), Delivered: r.DeliveredCount()})
		}
		return nil
	})
	if err != nil {
		return ActivityRanking{}, err
	}

	slices.SortFunc(ranking.Couriers, byActivity)
	slices.SortFunc(ranking.Restaurants, byActivity)
	return ranking, nil
}

func byActivity(a, b Activity) int {
	return cmp.Or(cmp.Compare(b.Delivered, a.Delivered), cmp.Compare(a.Name, b.Name), a.ID.Compare(b.ID))
}

type GetMenuPopularityQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetMenuPopularityQueryHandler(uowFactory ReadUoWFactory) GetMenuPopularityQueryHandler {
	return GetMenuPopularityQueryHandler{uowFactory: uowFactory}
}

// Handle lists the most delivered items first; ties keep menu order, dishes before meals.
func (h GetMenuPopularityQueryHandler) Handle(ctx context.Context, query GetMenuPopularityQuery) ([]MenuItemPopularity, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	items := make([]MenuItemPopularity, 0)
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		r, err := uow.RestaurantRepository().Get(ctx, query.RestaurantID())
		if err != nil {
			return err
		}
		for _, d := range r.Menu().Dishes() {
			items = append(items, MenuItemPopularity{Name: d.Name(), Price: d.Price(), Frequency: d.DeliveryFrequency()})
		}
		for _, m := range r.Menu().Meals() {
			items = append(items, MenuItemPopularity{
				Name:      m.Name(),
				IsMeal:    true,
				Price:     m.Price(),
				Frequency: m.DeliveryFrequency(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(items, func(a, b MenuItemPopularity) int {
		return cmp.Compare(b.Frequency, a.Frequency)
	})
	return items, nil
}
