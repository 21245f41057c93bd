package kernel

import (
	"fmt"
	"math"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly
// initialized Money. Money must be created via NewMoney to ensure validity.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// Money represents a monetary amount in minor currency units (e.g. cents).
// Money is an immutable value object; amounts are never negative. The zero
// value of Money is invalid and will fail validation - use NewMoney.
//
// Example:
//
//	total, err := kernel.NewMoney(12000)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(total) // Output: 12000
type Money struct { //nolint:recvcheck //using for validation
	amount int64
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money value from an amount in minor currency units.
// The amount must not be negative.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%d is negative", amount))
	}

	return Money{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Money was properly constructed via NewMoney.
// The zero value fails this validation.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the amount in minor currency units.
func (m Money) Amount() int64 {
	return m.amount
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}
	if m.amount > math.MaxInt64-other.amount {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("sum of %d and %d overflows", m.amount, other.amount))
	}

	return NewMoney(m.amount + other.amount)
}

// MultiplyBy returns the amount multiplied by a non-negative quantity.
func (m Money) MultiplyBy(quantity int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if quantity < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is negative", quantity))
	}
	if quantity > 0 && m.amount > math.MaxInt64/int64(quantity) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%d times %d overflows", m.amount, quantity))
	}

	return NewMoney(m.amount * int64(quantity))
}

// IsEqual reports whether two Money values represent the same amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String returns the amount formatted as a plain integer of minor units.
func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}
