// Package order provides the Order aggregate: what a customer buys from one
// restaurant and where it stands in the dispatch protocol.
//
// The package includes:
//   - Order: line items, running price, final price, candidate pool and courier
//   - Status: a state machine that enforces valid order status transitions
//   - LineItem: an ordered menu item with quantity and the unit price at the time it was added
//
// Key business rules:
//   - Items can be added and removed only while the order is Open
//   - The running price is maintained incrementally on every add and remove
//   - An order is offered to at most one courier at a time: the head of its candidate pool
//   - Status follows Open -> AwaitingCourier -> AcceptedAndDelivering -> Completed,
//     and an Open order may be Cancelled
//
// Order never refers to courier or customer entities directly, only to their IDs.
package order
