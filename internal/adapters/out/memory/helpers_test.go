package memory_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/require"
)

// completedOrders returns n orders of r completed one hour apart starting at base.
func completedOrders(t *testing.T, r *restaurant.Restaurant, base time.Time, n int) []*order.Order {
	t.Helper()
	soup, err := menu.NewDish("Soup", kernel.MoneyFromInt(10), menu.Starter, true, true)
	require.NoError(t, err)

	out := make([]*order.Order, 0, n)
	for i := 0; i < n; i++ {
		o, err := order.NewOrder(order.ID(100+i), kernel.NewUUID(), r.ID(), base)
		require.NoError(t, err)
		require.NoError(t, o.AddItem(soup))
		require.NoError(t, o.Finalize(o.Price()))

		courierID := kernel.NewUUID()
		require.NoError(t, o.SetCandidates([]kernel.UUID{courierID}))
		_, err = o.MarkOffered()
		require.NoError(t, err)
		require.NoError(t, o.AssignTo(courierID))
		require.NoError(t, o.Complete(base.Add(time.Duration(i)*time.Hour)))
		out = append(out, o)
	}
	return out
}
