// Package kernel provides the value objects shared by every part of the marketplace.
//
// The package includes:
//   - UUID: identity of customers, restaurants, couriers and managers
//   - Location: a point on the plane with Euclidean distance
//   - Money: an exact decimal amount backed by github.com/shopspring/decimal
//
// Constructed values are immutable and safe for concurrent use.
package kernel
