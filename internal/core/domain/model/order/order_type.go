package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// OrderType distinguishes on-premise orders from delivery orders.
// The type is fixed at creation and gates which lifecycle transitions are
// legal: only delivery orders pass through InTransit and Arrived, and only
// on-premise orders may be checked out directly from Ready to Delivered.
type OrderType int

const (
	// TypeUnknown represents an invalid or undefined order type.
	TypeUnknown OrderType = iota

	// TypeOnPremise is an order consumed at the restaurant; a cashier
	// checks it out directly once it is ready.
	TypeOnPremise

	// TypeDelivery is an order carried to the customer by a delivery
	// agent claimed from the ready queue.
	TypeDelivery
)

func getOrderTypeStrings() map[OrderType]string {
	return map[OrderType]string{
		TypeUnknown:   "Unknown",
		TypeOnPremise: "OnPremise",
		TypeDelivery:  "Delivery",
	}
}

func getValidOrderTypeStrings() map[OrderType]string {
	//nolint:exhaustive // TypeUnknown is intentionally excluded as it's invalid
	return map[OrderType]string{
		TypeOnPremise: "OnPremise",
		TypeDelivery:  "Delivery",
	}
}

// OrderTypeFromString parses an order type name as produced by String.
// Returns an error for unknown names.
func OrderTypeFromString(s string) (OrderType, error) {
	for orderType, name := range getValidOrderTypeStrings() {
		if name == s {
			return orderType, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"orderType", fmt.Errorf("%q is not a valid order type", s))
}

// Validate checks if the OrderType value is one of the defined types.
func (t OrderType) Validate() error {
	if _, ok := getValidOrderTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderType", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String returns the human-readable name of the order type.
// Implements fmt.Stringer and is safe to call on any OrderType value.
func (t OrderType) String() string {
	if str, ok := getOrderTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}
