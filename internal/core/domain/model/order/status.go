package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It is part of a state machine with defined transitions that ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	Taken ──> Ready ──┬──> InTransit ──> Arrived ──> Delivered   (delivery orders)
//	                  └──> Delivered                             (on-premise checkout)
//
// Cancelled is reachable from every non-terminal state. Delivered and
// Cancelled are terminal: no outgoing transitions exist, and cancelling an
// already-terminal order is rejected rather than treated as a no-op.
//
// Which roles may drive which transition is defined by the permission table
// in transition.go; Status itself only names the states.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Taken is the initial status when an order is entered at the counter.
	// Detail lines may still be appended while in this status.
	Taken

	// Ready indicates kitchen preparation is complete. Ready orders form
	// the dispatch queue, awaiting cashier checkout or an agent claim.
	Ready

	// InTransit indicates a delivery agent has claimed the order and is
	// carrying it to the customer.
	InTransit

	// Arrived indicates the delivery agent has reached the destination.
	Arrived

	// Delivered indicates the order was handed over and settled.
	// This is a terminal state.
	Delivered

	// Cancelled indicates the order was abandoned before completion.
	// This is a terminal state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Taken:         "Taken",
		Ready:         "Ready",
		InTransit:     "InTransit",
		Arrived:       "Arrived",
		Delivered:     "Delivered",
		Cancelled:     "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Taken:     "Taken",
		Ready:     "Ready",
		InTransit: "InTransit",
		Arrived:   "Arrived",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// StatusFromString parses a status name as produced by String.
// Returns an error for unknown names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined states.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateCanHaveAgent validates the consistency between order status and
// delivery agent assignment for the given order type.
//
// Business rules:
//   - On-premise orders never have a delivery agent
//   - Delivery orders in InTransit, Arrived, or Delivered must have an agent
//   - Delivery orders in Taken, Ready, or Cancelled must not have an agent
func (s Status) ValidateCanHaveAgent(hasAgent bool, orderType OrderType) error {
	if hasAgent && orderType != TypeDelivery {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryAgent",
			fmt.Errorf("%s orders cannot have a delivery agent", orderType))
	}

	agentRequired := s == InTransit || s == Arrived || (s == Delivered && orderType == TypeDelivery)

	if agentRequired && !hasAgent {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryAgent",
			fmt.Errorf("%s is not a valid status to have no delivery agent", s))
	}

	if hasAgent && !agentRequired {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryAgent",
			fmt.Errorf("%s is not a valid status to have a delivery agent", s))
	}

	return nil
}
