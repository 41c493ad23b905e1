// Package courier provides the Courier aggregate: a delivery person who is
// either on duty and receiving offers, or off duty.
//
// Key business rules:
//   - Couriers must have a valid unique identifier, name and username
//   - Only on-duty couriers receive offers
//   - A courier holds at most one accepted order; accepting one takes the
//     courier off duty and drops every other pending offer
//   - Completing the accepted order returns the courier to duty
//
// Courier does not talk to orders. Coordinating offers between orders and
// couriers is the job of the order dispatcher domain service.
package courier
