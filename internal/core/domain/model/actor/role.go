// Package actor defines the closed set of staff roles and the actor identity
// carried with every order operation. Roles are a fixed enumeration: each
// transition in the order lifecycle is authorized against this set, never
// against free-form role strings.
package actor

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Role identifies the kind of staff member performing an operation.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// Owner is counter staff: creates orders and may cancel orders that
	// have not yet left the kitchen.
	Owner

	// Admin may perform any transition, including cancelling orders at
	// any non-terminal stage.
	Admin

	// Kitchen marks orders ready once preparation is complete.
	Kitchen

	// Cashier checks out ready on-premise orders directly to delivered.
	Cashier

	// DeliveryAgent claims ready delivery orders and carries them through
	// transit, arrival, and delivery confirmation.
	DeliveryAgent
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:   "Unknown",
		Owner:         "Owner",
		Admin:         "Admin",
		Kitchen:       "Kitchen",
		Cashier:       "Cashier",
		DeliveryAgent: "DeliveryAgent",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		Owner:         "Owner",
		Admin:         "Admin",
		Kitchen:       "Kitchen",
		Cashier:       "Cashier",
		DeliveryAgent: "DeliveryAgent",
	}
}

// RoleFromString parses a role name as produced by String.
// Returns an error for unknown names.
func RoleFromString(s string) (Role, error) {
	for role, name := range getValidRoleStrings() {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is one of the defined roles.
// RoleUnknown (0) and any other values are invalid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// Implements fmt.Stringer and is safe to call on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}
