package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Open ──> AwaitingCourier ──> AcceptedAndDelivering ──> Completed
//	 │
//	 └──> Cancelled
//
// AwaitingCourier is left only by a courier accepting an offer. An order whose
// candidate pool is exhausted stays there until it is dispatched again.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota
	// Open orders accept new items.
	Open
	// AwaitingCourier orders are finalized and being offered to couriers.
	AwaitingCourier
	// AcceptedAndDelivering orders have a courier.
	AcceptedAndDelivering
	// Completed is final.
	Completed
	// Cancelled is final.
	Cancelled
)

var statusNames = map[Status]string{
	Open:                  "Open",
	AwaitingCourier:       "AwaitingCourier",
	AcceptedAndDelivering: "AcceptedAndDelivering",
	Completed:             "Completed",
	Cancelled:             "Cancelled",
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown".
func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	return s == Completed || s == Cancelled
}

// Finalize transitions Open to AwaitingCourier.
func (s Status) Finalize() (Status, error) {
	if s != Open {
		return s, s.transitionError("finalize")
	}
	return AwaitingCourier, nil
}

// Accept transitions AwaitingCourier to AcceptedAndDelivering.
func (s Status) Accept() (Status, error) {
	if s != AwaitingCourier {
		return s, s.transitionError("accept")
	}
	return AcceptedAndDelivering, nil
}

// Complete transitions AcceptedAndDelivering to Completed.
func (s Status) Complete() (Status, error) {
	if s != AcceptedAndDelivering {
		return s, s.transitionError("complete")
	}
	return Completed, nil
}

// Cancel transitions Open to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Open {
		return s, s.transitionError("cancel")
	}
	return Cancelled, nil
}

func (s Status) transitionError(operation string) error {
	return errs.NewInvalidStateError("order", s.String(), operation)
}
