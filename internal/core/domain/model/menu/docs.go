// Package menu models what a restaurant sells: dishes, meals built from them,
// and the pricing strategies that turn a meal's dishes into a price.
//
// Discount rates are held by a shared DiscountRates value owned by the Menu.
// Pricing strategies keep a reference to it and read the current rate every
// time a total is computed, so changing a rate never requires replacing the
// strategy of each meal.
//
// Types in this package are not safe for concurrent use; callers serialize
// access through a unit of work.
package menu
