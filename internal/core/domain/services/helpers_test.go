package services_test

import (
	"fmt"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)

// fixedID returns a UUID whose byte order follows n.
func fixedID(n int) kernel.UUID {
	return kernel.MustUUIDFromString(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

func newRestaurant(t *testing.T, x, y float64) *restaurant.Restaurant {
	t.Helper()
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), "Chez Paul", "paul", kernel.MustNewLocation(x, y), nil)
	require.NoError(t, err)
	soup, err := menu.NewDish("Soup", kernel.MoneyFromInt(10), menu.Starter, true, true)
	require.NoError(t, err)
	require.NoError(t, r.Menu().AddDish(soup))
	return r
}

func newCourier(t *testing.T, id kernel.UUID, name string, x, y float64) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(id, name, name, kernel.MustNewLocation(x, y))
	require.NoError(t, err)
	return c
}

// withDeliveries drives c through n complete deliveries of throwaway orders.
func withDeliveries(t *testing.T, c *courier.Courier, n int) *courier.Courier {
	t.Helper()
	for i := 0; i < n; i++ {
		id := order.ID(1_000_000 + i)
		require.NoError(t, c.ReceiveOffer(id))
		_, err := c.Accept(id)
		require.NoError(t, err)
		require.NoError(t, c.CompleteDelivery(id))
	}
	return c
}

func newAwaitingOrder(t *testing.T, id order.ID, r *restaurant.Restaurant) *order.Order {
	t.Helper()
	o, err := order.NewOrder(id, kernel.NewUUID(), r.ID(), now)
	require.NoError(t, err)
	soup, err := r.Menu().Dish("Soup")
	require.NoError(t, err)
	require.NoError(t, o.AddItem(soup))
	require.NoError(t, o.Finalize(o.Price()))
	return o
}

func ids(couriers []*courier.Courier) []string {
	out := make([]string, 0, len(couriers))
	for _, c := range couriers {
		out = append(out, c.Name())
	}
	return out
}
