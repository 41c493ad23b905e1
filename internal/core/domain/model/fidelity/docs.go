// Package fidelity implements the per-customer discount cards applied once when an
// order is settled.
//
// Cards are stateful. PointCard accumulates spend and LotteryCard draws a random
// number, so OrderReduction and FinalPrice must be evaluated exactly once per order.
package fidelity
