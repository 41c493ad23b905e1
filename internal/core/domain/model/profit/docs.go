// Package profit models the platform's economics and the policies that retune them.
//
// Every order earns the platform
//
//	price * markupPercentage + serviceFee - deliveryCost
//
// A Policy solves that equation, averaged over a window of past orders, for one of
// the three parameters so that the window would have produced the target profit:
//
//	targetProfit / n = averagePrice * markupPercentage + serviceFee - deliveryCost
package profit
