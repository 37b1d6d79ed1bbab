package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a strict forward-only state machine:
//
//	placed ──> accepted ──> assigned_to_delivery ──> picked_up ──> delivered
//
// Each state has exactly one successor, delivered is terminal, and any
// transition not in this chain fails with an InvalidTransitionError that
// names the attempted from/to pair. No backward moves, no skips, no no-ops.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status when a customer creates an order.
	Placed

	// Accepted indicates the restaurant has accepted the order.
	Accepted

	// AssignedToDelivery indicates the order is ready for delivery.
	// While no delivery agent is attached, any agent may claim it.
	AssignedToDelivery

	// PickedUp indicates a delivery agent has collected the order.
	PickedUp

	// Delivered indicates the order reached the customer.
	// This is a terminal state with no further transitions.
	Delivered
)

// getStatusStrings returns a map of Status values to their wire representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "unknown",
		Placed:             "placed",
		Accepted:           "accepted",
		AssignedToDelivery: "assigned_to_delivery",
		PickedUp:           "picked_up",
		Delivered:          "delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:             "placed",
		Accepted:           "accepted",
		AssignedToDelivery: "assigned_to_delivery",
		PickedUp:           "picked_up",
		Delivered:          "delivered",
	}
}

// ParseStatus converts a wire representation into a Status.
// Returns an error if the string does not name a valid status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Next returns the single status reachable from s,
// or Unknown if s is terminal or invalid.
func (s Status) Next() Status {
	//nolint:exhaustive // Delivered and Unknown have no successor
	next := map[Status]Status{
		Placed:             Accepted,
		Accepted:           AssignedToDelivery,
		AssignedToDelivery: PickedUp,
		PickedUp:           Delivered,
	}
	return next[s]
}

// IsTerminal reports whether no transitions leave this status.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// ValidateTransition checks whether the move from s to target exists in the
// transition graph, without performing it.
//
// Returns:
//   - nil if target is the direct successor of s
//   - InvalidTransitionError naming the from/to pair otherwise
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if s.Next() != target {
		return errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return nil
}

// TransitionTo performs the transition from s to target.
//
// Returns:
//   - (target, nil) when the transition exists in the graph
//   - (Unknown, InvalidTransitionError) otherwise
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.ValidateTransition(target); err != nil {
		return Unknown, err
	}
	return target, nil
}
