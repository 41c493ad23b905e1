// Package services provides domain services that orchestrate business operations
// across multiple domain entities of the marketplace.
//
// The package includes:
//   - DeliveryMatchStrategy: ranks on-duty couriers for a restaurant
//   - OrderDispatcher: runs the sequential offer protocol between orders and couriers
//   - NotificationChannel: delivers meal-of-the-week announcements to consenting customers
//
// OrderDispatcher mutates the entities it is given and is not safe for concurrent
// use. Callers run each dispatch step inside one unit of work.
package services
