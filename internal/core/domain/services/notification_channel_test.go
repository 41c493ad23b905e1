package services_test

import (
	"sync"
	"testing"

	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomer(t *testing.T, name string, consent bool) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(kernel.NewUUID(), name, name, kernel.MustNewLocation(0, 0))
	require.NoError(t, err)
	c.SetConsent(consent)
	return c
}

func newMeal(t *testing.T) *menu.Meal {
	t.Helper()
	rates := menu.DefaultDiscountRates()
	soup, err := menu.NewDish("Soup", kernel.MoneyFromInt(10), menu.Starter, true, true)
	require.NoError(t, err)
	steak, err := menu.NewDish("Steak", kernel.MoneyFromInt(30), menu.Main, false, true)
	require.NoError(t, err)
	meal, err := menu.NewHalfMeal("Lunch", soup, steak, menu.NewMealOfTheWeekDiscount(rates))
	require.NoError(t, err)
	return meal
}

func TestNotificationChannel_Subscribe(t *testing.T) {
	t.Run("only consenting customers", func(t *testing.T) {
		ch := services.NewNotificationChannel()
		refusing := newCustomer(t, "bob", false)

		err := ch.Subscribe(refusing)

		require.ErrorIs(t, err, services.ErrConsentRequired)
		assert.Equal(t, errs.KindState, errs.KindOf(err))
		assert.False(t, ch.IsSubscribed(refusing.ID()))
	})

	t.Run("subscribing twice keeps one entry", func(t *testing.T) {
		ch := services.NewNotificationChannel()
		ann := newCustomer(t, "ann", true)

		require.NoError(t, ch.Subscribe(ann))
		require.NoError(t, ch.Subscribe(ann))

		assert.Equal(t, []kernel.UUID{ann.ID()}, ch.Subscribers())
	})

	t.Run("unsubscribe", func(t *testing.T) {
		ch := services.NewNotificationChannel()
		ann := newCustomer(t, "ann", true)
		require.NoError(t, ch.Subscribe(ann))

		assert.True(t, ch.Unsubscribe(ann.ID()))
		assert.False(t, ch.Unsubscribe(ann.ID()))
		assert.Empty(t, ch.Subscribers())
	})
}

func TestNotificationChannel_Broadcast(t *testing.T) {
	ch := services.NewNotificationChannel()
	ann := newCustomer(t, "ann", true)
	cid := newCustomer(t, "cid", true)
	bob := newCustomer(t, "bob", false)
	require.NoError(t, ch.Subscribe(cid))
	require.NoError(t, ch.Subscribe(ann))
	require.Error(t, ch.Subscribe(bob))
	meal := newMeal(t)

	notified := ch.Broadcast("Chez Paul", meal)

	assert.Equal(t, 2, notified)
	want := "Meal of the week at Chez Paul: Lunch for 4.00"
	assert.Equal(t, []string{want}, ann.Notifications())
	assert.Equal(t, []string{want}, cid.Notifications())
	assert.Empty(t, bob.Notifications())
	assert.Equal(t, []kernel.UUID{cid.ID(), ann.ID()}, ch.Subscribers(), "subscription order")

	ann.SetConsent(false)
	assert.Equal(t, 1, ch.Broadcast("Chez Paul", meal), "withdrawn consent is honoured")
	assert.Len(t, ann.Notifications(), 1)
	assert.Len(t, cid.Notifications(), 2)
}

type orderedSubscriber struct {
	id  kernel.UUID
	log *[]kernel.UUID
}

func (s orderedSubscriber) ID() kernel.UUID  { return s.id }
func (s orderedSubscriber) HasConsent() bool { return true }
func (s orderedSubscriber) Notify(string)    { *s.log = append(*s.log, s.id) }

func TestNotificationChannel_BroadcastOrder(t *testing.T) {
	ch := services.NewNotificationChannel()
	var log []kernel.UUID
	var want []kernel.UUID
	for i := 0; i < 10; i++ {
		s := orderedSubscriber{id: kernel.NewUUID(), log: &log}
		want = append(want, s.id)
		require.NoError(t, ch.Subscribe(s))
	}

	ch.Broadcast("R", newMeal(t))

	assert.Equal(t, want, log)
}

func TestNotificationChannel_ConcurrentSubscriptions(t *testing.T) {
	ch := services.NewNotificationChannel()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var log []kernel.UUID
			s := orderedSubscriber{id: kernel.NewUUID(), log: &log}
			_ = ch.Subscribe(s)
			ch.Unsubscribe(s.id)
		}()
	}
	wg.Wait()

	assert.Empty(t, ch.Subscribers())
}
