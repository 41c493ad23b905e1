package services_test

import (
	"fmt"
	"testing"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// holders returns the couriers that currently hold an offer for o, on both sides of the protocol.
func holders(o *order.Order, couriers []*courier.Courier) []string {
	var out []string
	for _, c := range couriers {
		if c.HasOffer(o.ID()) || o.HasOfferFor(c.ID()) {
			out = append(out, c.Name())
		}
	}
	return out
}

func TestOrderDispatcher_FairOccupationScenario(t *testing.T) {
	r := newRestaurant(t, 0, 0)
	a := withDeliveries(t, newCourier(t, fixedID(1), "A", 1, 1), 3)
	b := withDeliveries(t, newCourier(t, fixedID(2), "B", 2, 2), 1)
	couriers := []*courier.Courier{a, b}
	o := newAwaitingOrder(t, 1, r)
	dispatcher := services.NewOrderDispatcher()

	offer, err := dispatcher.Dispatch(o, couriers, r, services.FairOccupationDelivery{})
	require.NoError(t, err)
	assert.True(t, offer.CourierID.IsEqual(b.ID()), "B has fewer deliveries")
	assert.Equal(t, []kernel.UUID{b.ID(), a.ID()}, o.Candidates())
	assert.Equal(t, []string{"B"}, holders(o, couriers))

	next, err := dispatcher.Refuse(o, b, couriers)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.True(t, next.CourierID.IsEqual(a.ID()))
	assert.Equal(t, []string{"A"}, holders(o, couriers))

	result, err := dispatcher.Accept(o, a, nil, couriers)
	require.NoError(t, err)
	assert.Empty(t, result.Cascaded)

	assert.Equal(t, order.AcceptedAndDelivering, o.Status())
	require.NotNil(t, o.Courier())
	assert.True(t, o.Courier().IsEqual(a.ID()))
	assert.True(t, b.IsOnDuty())
	assert.False(t, a.IsOnDuty())
	assert.Empty(t, o.Candidates())
	assert.Empty(t, b.PendingOffers())
}

func TestOrderDispatcher_SequentialExclusivity(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("%d couriers", n), func(t *testing.T) {
			r := newRestaurant(t, 0, 0)
			var couriers []*courier.Courier
			for i := 0; i < n; i++ {
				couriers = append(couriers, newCourier(t, fixedID(i+1), fmt.Sprintf("c%d", i), float64(i+1), 0))
			}
			o := newAwaitingOrder(t, 1, r)
			dispatcher := services.NewOrderDispatcher()

			offer, err := dispatcher.Dispatch(o, couriers, r, services.FastestDelivery{})
			require.NoError(t, err)

			var offered []string
			current := &offer
			for current != nil {
				assert.Len(t, holders(o, couriers), 1, "exactly one outstanding offer")
				holder := index(couriers)[current.CourierID]
				offered = append(offered, holder.Name())

				current, err = dispatcher.Refuse(o, holder, couriers)
				require.NoError(t, err)
			}

			want := make([]string, 0, n)
			for i := 0; i < n; i++ {
				want = append(want, fmt.Sprintf("c%d", i))
			}
			assert.Equal(t, want, offered, "every courier offered exactly once, in rank order")
			assert.Empty(t, holders(o, couriers))
			assert.True(t, o.IsExhausted())
			assert.Equal(t, order.AwaitingCourier, o.Status())

			again, err := dispatcher.Dispatch(o, couriers, r, services.FastestDelivery{})
			require.NoError(t, err, "an exhausted order can be dispatched again")
			assert.True(t, again.CourierID.IsEqual(couriers[0].ID()))
		})
	}
}

func TestOrderDispatcher_Cascade(t *testing.T) {
	t.Run("other offers move to the next candidate", func(t *testing.T) {
		r := newRestaurant(t, 0, 0)
		c := newCourier(t, fixedID(1), "C", 1, 0)
		d := newCourier(t, fixedID(2), "D", 2, 0)
		e := newCourier(t, fixedID(3), "E", 3, 0)
		couriers := []*courier.Courier{c, d, e}
		o1 := newAwaitingOrder(t, 1, r)
		o2 := newAwaitingOrder(t, 2, r)
		o3 := newAwaitingOrder(t, 3, r)
		dispatcher := services.NewOrderDispatcher()

		for _, o := range []*order.Order{o1, o2} {
			offer, err := dispatcher.Dispatch(o, couriers, r, services.FastestDelivery{})
			require.NoError(t, err)
			require.True(t, offer.CourierID.IsEqual(c.ID()))
		}
		// o3 moves on to D once C refuses it
		_, err := dispatcher.Dispatch(o3, couriers, r, services.FastestDelivery{})
		require.NoError(t, err)
		_, err = dispatcher.Refuse(o3, c, couriers)
		require.NoError(t, err)
		require.Equal(t, []order.ID{1, 2}, c.PendingOffers())

		result, err := dispatcher.Accept(o1, c, []*order.Order{o1, o2, o3}, couriers)

		require.NoError(t, err)
		assert.Equal(t, []order.ID{2}, result.Cascaded)
		require.Len(t, result.Offers, 1)
		assert.Equal(t, services.Offer{OrderID: 2, CourierID: d.ID()}, result.Offers[0])
		assert.Empty(t, result.Exhausted)

		assert.Empty(t, c.PendingOffers())
		assert.NotContains(t, o2.Candidates(), c.ID())
		assert.Equal(t, []string{"D"}, holders(o2, couriers))
		assert.Equal(t, []string{"D"}, holders(o3, couriers))
		assert.Equal(t, []order.ID{3, 2}, d.PendingOffers())
	})

	t.Run("cascade exhausts an order with no other candidate", func(t *testing.T) {
		r := newRestaurant(t, 0, 0)
		c := newCourier(t, fixedID(1), "C", 1, 0)
		couriers := []*courier.Courier{c}
		o1 := newAwaitingOrder(t, 1, r)
		o2 := newAwaitingOrder(t, 2, r)
		dispatcher := services.NewOrderDispatcher()
		for _, o := range []*order.Order{o1, o2} {
			_, err := dispatcher.Dispatch(o, couriers, r, services.FastestDelivery{})
			require.NoError(t, err)
		}

		result, err := dispatcher.Accept(o2, c, []*order.Order{o1, o2}, couriers)

		require.NoError(t, err)
		assert.Equal(t, []order.ID{1}, result.Cascaded)
		assert.Equal(t, []order.ID{1}, result.Exhausted)
		assert.True(t, o1.IsExhausted())
		assert.Equal(t, order.AwaitingCourier, o1.Status())

		_, err = dispatcher.Dispatch(o1, couriers, r, services.FastestDelivery{})
		require.ErrorIs(t, err, services.ErrAvailableCourierNotFound, "C is off duty while delivering")
	})

	t.Run("two couriers crossing offers terminate", func(t *testing.T) {
		r := newRestaurant(t, 0, 0)
		c := newCourier(t, fixedID(1), "C", 1, 0)
		d := newCourier(t, fixedID(2), "D", 2, 0)
		couriers := []*courier.Courier{c, d}
		o1 := newAwaitingOrder(t, 1, r)
		o2 := newAwaitingOrder(t, 2, r)
		dispatcher := services.NewOrderDispatcher()
		_, err := dispatcher.Dispatch(o1, couriers, r, services.FastestDelivery{})
		require.NoError(t, err)
		_, err = dispatcher.Dispatch(o2, couriers, r, services.FairOccupationDelivery{})
		require.NoError(t, err)
		// both offered to C; D is second in both pools

		result, err := dispatcher.Accept(o1, c, []*order.Order{o1, o2}, couriers)
		require.NoError(t, err)
		require.Len(t, result.Offers, 1)

		_, err = dispatcher.Accept(o2, d, []*order.Order{o2}, couriers)
		require.NoError(t, err)
		assert.Equal(t, order.AcceptedAndDelivering, o1.Status())
		assert.Equal(t, order.AcceptedAndDelivering, o2.Status())
	})
}

func TestOrderDispatcher_InvalidOfferState(t *testing.T) {
	r := newRestaurant(t, 0, 0)
	a := newCourier(t, fixedID(1), "A", 1, 0)
	b := newCourier(t, fixedID(2), "B", 2, 0)
	couriers := []*courier.Courier{a, b}
	o := newAwaitingOrder(t, 1, r)
	dispatcher := services.NewOrderDispatcher()
	_, err := dispatcher.Dispatch(o, couriers, r, services.FastestDelivery{})
	require.NoError(t, err)

	t.Run("accept by a courier without the offer", func(t *testing.T) {
		_, err := dispatcher.Accept(o, b, []*order.Order{o}, couriers)

		require.ErrorIs(t, err, services.ErrInvalidOfferState)
		assert.Equal(t, errs.KindState, errs.KindOf(err))
		assert.True(t, o.HasOfferFor(a.ID()))
		assert.True(t, b.IsOnDuty())
		assert.Equal(t, order.AwaitingCourier, o.Status())
	})

	t.Run("refuse by a courier without the offer", func(t *testing.T) {
		_, err := dispatcher.Refuse(o, b, couriers)

		require.ErrorIs(t, err, services.ErrInvalidOfferState)
		assert.Equal(t, []kernel.UUID{a.ID(), b.ID()}, o.Candidates())
	})

	t.Run("accept without every offered order is rejected before any change", func(t *testing.T) {
		other := newAwaitingOrder(t, 2, r)
		_, err := dispatcher.Dispatch(other, couriers, r, services.FastestDelivery{})
		require.NoError(t, err)

		_, err = dispatcher.Accept(o, a, []*order.Order{o}, couriers)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.True(t, a.IsOnDuty())
		assert.Equal(t, []order.ID{1, 2}, a.PendingOffers())
		assert.Equal(t, order.AwaitingCourier, o.Status())
	})

}

func TestOrderDispatcher_AcceptTwice(t *testing.T) {
	r := newRestaurant(t, 0, 0)
	a := newCourier(t, fixedID(1), "A", 1, 0)
	couriers := []*courier.Courier{a}
	o := newAwaitingOrder(t, 1, r)
	dispatcher := services.NewOrderDispatcher()
	_, err := dispatcher.Dispatch(o, couriers, r, services.FastestDelivery{})
	require.NoError(t, err)
	_, err = dispatcher.Accept(o, a, []*order.Order{o}, couriers)
	require.NoError(t, err)

	_, err = dispatcher.Accept(o, a, []*order.Order{o}, couriers)

	require.ErrorIs(t, err, services.ErrInvalidOfferState)
}

func TestOrderDispatcher_Dispatch(t *testing.T) {
	t.Run("no courier on duty", func(t *testing.T) {
		r := newRestaurant(t, 0, 0)
		off := newCourier(t, fixedID(1), "off", 1, 0)
		require.NoError(t, off.GoOffDuty())
		o := newAwaitingOrder(t, 1, r)

		_, err := services.NewOrderDispatcher().Dispatch(o, []*courier.Courier{off}, r, services.FastestDelivery{})

		require.ErrorIs(t, err, services.ErrAvailableCourierNotFound)
		assert.Equal(t, errs.KindResourceExhausted, errs.KindOf(err))
		assert.Equal(t, order.AwaitingCourier, o.Status())
		assert.Empty(t, o.Candidates())
	})

	t.Run("open order", func(t *testing.T) {
		r := newRestaurant(t, 0, 0)
		o, err := order.NewOrder(1, kernel.NewUUID(), r.ID(), now)
		require.NoError(t, err)

		_, err = services.NewOrderDispatcher().Dispatch(o, nil, r, services.FastestDelivery{})

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("order with an outstanding offer", func(t *testing.T) {
		r := newRestaurant(t, 0, 0)
		couriers := []*courier.Courier{newCourier(t, fixedID(1), "A", 1, 0)}
		o := newAwaitingOrder(t, 1, r)
		dispatcher := services.NewOrderDispatcher()
		_, err := dispatcher.Dispatch(o, couriers, r, services.FastestDelivery{})
		require.NoError(t, err)

		_, err = dispatcher.Dispatch(o, couriers, r, services.FastestDelivery{})

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("wrong restaurant", func(t *testing.T) {
		o := newAwaitingOrder(t, 1, newRestaurant(t, 0, 0))

		_, err := services.NewOrderDispatcher().Dispatch(o, nil, newRestaurant(t, 1, 1), services.FastestDelivery{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("ranked courier gone off duty is skipped when advancing", func(t *testing.T) {
		r := newRestaurant(t, 0, 0)
		a := newCourier(t, fixedID(1), "A", 1, 0)
		b := newCourier(t, fixedID(2), "B", 2, 0)
		c := newCourier(t, fixedID(3), "C", 3, 0)
		couriers := []*courier.Courier{a, b, c}
		o := newAwaitingOrder(t, 1, r)
		dispatcher := services.NewOrderDispatcher()
		_, err := dispatcher.Dispatch(o, couriers, r, services.FastestDelivery{})
		require.NoError(t, err)
		require.NoError(t, b.GoOffDuty())

		next, err := dispatcher.Refuse(o, a, couriers)

		require.NoError(t, err)
		require.NotNil(t, next)
		assert.True(t, next.CourierID.IsEqual(c.ID()))
		assert.Equal(t, []kernel.UUID{c.ID()}, o.Candidates())
	})
}

func TestOrderDispatcher_Complete(t *testing.T) {
	r := newRestaurant(t, 0, 0)
	a := newCourier(t, fixedID(1), "A", 1, 0)
	b := newCourier(t, fixedID(2), "B", 2, 0)
	couriers := []*courier.Courier{a, b}
	o := newAwaitingOrder(t, 1, r)
	soup, err := r.Menu().Dish("Soup")
	require.NoError(t, err)
	dispatcher := services.NewOrderDispatcher()

	require.ErrorIs(t, dispatcher.Complete(o, a, r, now), errs.ErrInvalidState, "not accepted yet")

	_, err = dispatcher.Dispatch(o, couriers, r, services.FastestDelivery{})
	require.NoError(t, err)
	_, err = dispatcher.Accept(o, a, []*order.Order{o}, couriers)
	require.NoError(t, err)

	require.ErrorIs(t, dispatcher.Complete(o, b, r, now), errs.ErrInvalidState, "wrong courier")
	assert.Zero(t, r.DeliveredCount())

	require.NoError(t, dispatcher.Complete(o, a, r, now))

	assert.Equal(t, order.Completed, o.Status())
	assert.Equal(t, now, o.CompletedAt())
	assert.Equal(t, 1, a.DeliveredCount())
	assert.True(t, a.IsOnDuty())
	assert.Equal(t, 1, r.DeliveredCount())
	assert.Equal(t, 1, soup.DeliveryFrequency())

	require.ErrorIs(t, dispatcher.Complete(o, a, r, now), errs.ErrInvalidState, "already completed")
	assert.Equal(t, 1, r.DeliveredCount())
}

func index(couriers []*courier.Courier) map[kernel.UUID]*courier.Courier {
	out := map[kernel.UUID]*courier.Courier{}
	for _, c := range couriers {
		out[c.ID()] = c
	}
	return out
}
