package settlement

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	// ErrPaymentIsNotConstructed is returned when a Payment was not created
	// through the NewPayment constructor.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

	// ErrAlreadySettled is returned when recording a payment against an
	// order that already has one. Payments are append-only: a retry after
	// an unknown outcome must surface as "already paid", not a duplicate
	// charge.
	ErrAlreadySettled = errors.New("order is already settled")
)

// Method identifies how a payment was made.
type Method int

const (
	// MethodUnknown represents an invalid or undefined payment method.
	MethodUnknown Method = iota

	// Cash is payment in physical currency at the counter or door.
	Cash

	// Card is payment by debit or credit card.
	Card

	// Mobile is payment through a mobile wallet application.
	Mobile
)

func getMethodStrings() map[Method]string {
	return map[Method]string{
		MethodUnknown: "Unknown",
		Cash:          "Cash",
		Card:          "Card",
		Mobile:        "Mobile",
	}
}

func getValidMethodStrings() map[Method]string {
	//nolint:exhaustive // MethodUnknown is intentionally excluded as it's invalid
	return map[Method]string{
		Cash:   "Cash",
		Card:   "Card",
		Mobile: "Mobile",
	}
}

// MethodFromString parses a payment method name as produced by String.
func MethodFromString(s string) (Method, error) {
	for method, name := range getValidMethodStrings() {
		if name == s {
			return method, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"method", fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks if the Method value is one of the defined methods.
func (m Method) Validate() error {
	if _, ok := getValidMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"method", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the human-readable name of the payment method.
func (m Method) String() string {
	if str, ok := getMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// Payment records the settlement of a single order. An order accrues at
// most one Payment; the amount must be strictly positive.
type Payment struct { //nolint:recvcheck //using for validation
	id         kernel.UUID
	orderID    kernel.UUID
	amount     kernel.Money
	method     Method
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewPayment creates a validated payment record for an order.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	method Method,
	recordedAt time.Time,
) (Payment, error) {
	p := Payment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setAmount(amount),
		p.setMethod(method),
		p.setRecordedAt(recordedAt),
	); err != nil {
		return Payment{}, err
	}

	return p, nil
}

// Validate ensures the Payment was created through NewPayment.
func (p Payment) Validate() error {
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// ID returns the payment's unique identifier.
func (p Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the settled order's identifier.
func (p Payment) OrderID() kernel.UUID {
	return p.orderID
}

// Amount returns the paid amount.
func (p Payment) Amount() kernel.Money {
	return p.amount
}

// PaymentMethod returns how the payment was made.
func (p Payment) PaymentMethod() Method {
	return p.method
}

// RecordedAt returns when the payment was recorded.
func (p Payment) RecordedAt() time.Time {
	return p.recordedAt
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	p.amount = amount
	return nil
}

func (p *Payment) setMethod(method Method) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.method = method
	return nil
}

func (p *Payment) setRecordedAt(recordedAt time.Time) error {
	if recordedAt.IsZero() {
		return errs.NewValueIsRequiredError("recordedAt")
	}
	p.recordedAt = recordedAt
	return nil
}
