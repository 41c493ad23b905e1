package queries

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetPlatformStatisticsQueryIsNotConstructed = errors.New(
		"GetPlatformStatisticsQuery must be created via NewGetPlatformStatisticsQuery constructor",
	)
	ErrGetActivityRankingQueryIsNotConstructed = errors.New(
		"GetActivityRankingQuery must be created via NewGetActivityRankingQuery constructor",
	)
	ErrGetMenuPopularityQueryIsNotConstructed = errors.New(
		"GetMenuPopularityQuery must be created via NewGetMenuPopularityQuery constructor",
	)
)

// GetPlatformStatisticsQuery aggregates the orders completed in [from, to).
type GetPlatformStatisticsQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

func NewGetPlatformStatisticsQuery(from time.Time, to time.Time) (GetPlatformStatisticsQuery, error) {
	if !from.Before(to) {
		return GetPlatformStatisticsQuery{}, errs.NewValueIsInvalidErrorWithCause("statistics window",
			fmt.Errorf("%s is not before %s", from, to))
	}
	return GetPlatformStatisticsQuery{from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPlatformStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetPlatformStatisticsQueryIsNotConstructed)
}

func (q GetPlatformStatisticsQuery) From() time.Time {
	return q.from
}

func (q GetPlatformStatisticsQuery) To() time.Time {
	return q.to
}

// PlatformStatistics summarizes a window of completed orders. Income is what
// customers paid; profit applies the current profit data to each order's price.
type PlatformStatistics struct {
	From                     time.Time
	To                       time.Time
	Orders                   int
	Customers                int
	TotalIncome              kernel.Money
	TotalProfit              kernel.Money
	AverageIncomePerCustomer kernel.Money
}

// GetActivityRankingQuery ranks couriers and restaurants by completed deliveries.
type GetActivityRankingQuery struct {
	guard guard.ConstructorGuard
}

func NewGetActivityRankingQuery() GetActivityRankingQuery {
	return GetActivityRankingQuery{guard: guard.NewConstructorGuard()}
}

func (q GetActivityRankingQuery) Validate() error {
	return q.guard.Validate(ErrGetActivityRankingQueryIsNotConstructed)
}

// Activity is one ranked user.
type Activity struct {
	ID        kernel.UUID
	Name      string
	Delivered int
}

// ActivityRanking lists the most active users first; ties go by name, then ID.
type ActivityRanking struct {
	Couriers    []Activity
	Restaurants []Activity
}

// GetMenuPopularityQuery ranks a restaurant's dishes and meals by delivery frequency.
type GetMenuPopularityQuery struct {
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetMenuPopularityQuery(restaurantID kernel.UUID) (GetMenuPopularityQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetMenuPopularityQuery{}, err
	}
	return GetMenuPopularityQuery{restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMenuPopularityQuery) Validate() error {
	return q.guard.Validate(ErrGetMenuPopularityQueryIsNotConstructed)
}

func (q GetMenuPopularityQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// MenuItemPopularity is one dish or meal with its current price.
type MenuItemPopularity struct {
	Name      string
	IsMeal    bool
	Price     kernel.Money
	Frequency int
}
