package services

import (
	"fmt"
	"slices"
	"sync"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/pkg/errs"
)

// ErrConsentRequired is returned when subscribing a customer who has not opted in.
var ErrConsentRequired = errs.NewInvalidStateError("customer", "without notification consent", "subscribe")

// Subscriber receives announcements. *customer.Customer implements it.
type Subscriber interface {
	ID() kernel.UUID
	HasConsent() bool
	Notify(message string)
}

// NotificationChannel announces meals entering meal-of-the-week pricing to the
// customers who agreed to be notified.
//
// Broadcast is synchronous: when it returns every subscriber has been notified,
// in subscription order. The channel itself is safe for concurrent use; the
// subscribers it notifies are not, so callers broadcast from inside a unit of work.
type NotificationChannel struct {
	mu          sync.Mutex
	subscribers []Subscriber
}

func NewNotificationChannel() *NotificationChannel {
	return &NotificationChannel{}
}

// Subscribe adds s at the end of the delivery order. Subscribing twice is a no-op.
func (n *NotificationChannel) Subscribe(s Subscriber) error {
	if !s.HasConsent() {
		return fmt.Errorf("%w: %s", ErrConsentRequired, s.ID())
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.indexOf(s.ID()) < 0 {
		n.subscribers = append(n.subscribers, s)
	}
	return nil
}

// Unsubscribe removes the subscriber with id and reports whether it was subscribed.
func (n *NotificationChannel) Unsubscribe(id kernel.UUID) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	i := n.indexOf(id)
	if i < 0 {
		return false
	}
	n.subscribers = slices.Delete(n.subscribers, i, i+1)
	return true
}

// IsSubscribed reports whether id is subscribed.
func (n *NotificationChannel) IsSubscribed(id kernel.UUID) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.indexOf(id) >= 0
}

// Subscribers returns the subscribed IDs in delivery order.
func (n *NotificationChannel) Subscribers() []kernel.UUID {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]kernel.UUID, 0, len(n.subscribers))
	for _, s := range n.subscribers {
		out = append(out, s.ID())
	}
	return out
}

// Broadcast announces meal, sold by restaurantName, to every subscriber and
// returns how many were notified.
func (n *NotificationChannel) Broadcast(restaurantName string, meal *menu.Meal) int {
	message := MealOfTheWeekMessage(restaurantName, meal)

	n.mu.Lock()
	defer n.mu.Unlock()

	notified := 0
	for _, s := range n.subscribers {
		if !s.HasConsent() {
			continue
		}
		s.Notify(message)
		notified++
	}
	return notified
}

// MealOfTheWeekMessage is the text of a meal-of-the-week announcement.
func MealOfTheWeekMessage(restaurantName string, meal *menu.Meal) string {
	return fmt.Sprintf("Meal of the week at %s: %s for %s", restaurantName, meal.Name(), meal.Price())
}

func (n *NotificationChannel) indexOf(id kernel.UUID) int {
	return slices.IndexFunc(n.subscribers, func(s Subscriber) bool { return s.ID().IsEqual(id) })
}
