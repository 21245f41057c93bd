package settlement

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// ErrTipIsNotConstructed is returned when a Tip was not created through the
// NewTip constructor.
var ErrTipIsNotConstructed = errors.New("Tip must be created via NewTip constructor")

// percentageToleranceMinorUnits is the rounding slack allowed when checking
// a declared tip percentage against the actual tip amount: one minor
// currency unit.
const percentageToleranceMinorUnits = 1

// Tip records a gratuity attached to a payment. A payment accrues at most
// one Tip. If a percentage is declared, the tip amount must reconcile with
// the payment amount within one minor currency unit.
type Tip struct { //nolint:recvcheck //using for validation
	id         kernel.UUID
	paymentID  kernel.UUID
	amount     kernel.Money
	percentage *int
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewTip creates a validated tip against the given payment. The tip amount
// must be strictly positive. When percentage is non-nil it must lie in
// [1, 100] and reconcile with paymentAmount within the rounding tolerance.
func NewTip(
	id kernel.UUID,
	paymentID kernel.UUID,
	amount kernel.Money,
	percentage *int,
	paymentAmount kernel.Money,
	recordedAt time.Time,
) (Tip, error) {
	t := Tip{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setPaymentID(paymentID),
		t.setAmount(amount),
		t.setRecordedAt(recordedAt),
	); err != nil {
		return Tip{}, err
	}

	if percentage != nil {
		if err := validatePercentage(*percentage, amount, paymentAmount); err != nil {
			return Tip{}, err
		}
		pct := *percentage
		t.percentage = &pct
	}

	return t, nil
}

// Validate ensures the Tip was created through NewTip.
func (t Tip) Validate() error {
	return t.guard.Validate(ErrTipIsNotConstructed)
}

// ID returns the tip's unique identifier.
func (t Tip) ID() kernel.UUID {
	return t.id
}

// PaymentID returns the identifier of the payment the tip belongs to.
func (t Tip) PaymentID() kernel.UUID {
	return t.paymentID
}

// Amount returns the tip amount.
func (t Tip) Amount() kernel.Money {
	return t.amount
}

// Percentage returns the declared tip percentage, or nil if the tip was
// given as a flat amount.
func (t Tip) Percentage() *int {
	return t.percentage
}

// RecordedAt returns when the tip was recorded.
func (t Tip) RecordedAt() time.Time {
	return t.recordedAt
}

func (t *Tip) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Tip) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}
	t.paymentID = paymentID
	return nil
}

func (t *Tip) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"tipAmount", fmt.Errorf("%s is not greater than 0", amount))
	}
	t.amount = amount
	return nil
}

func (t *Tip) setRecordedAt(recordedAt time.Time) error {
	if recordedAt.IsZero() {
		return errs.NewValueIsRequiredError("recordedAt")
	}
	t.recordedAt = recordedAt
	return nil
}

// validatePercentage checks that percentage * paymentAmount equals the tip
// amount within one minor currency unit. The comparison is done on values
// scaled by 100 so no precision is lost to integer division.
func validatePercentage(percentage int, amount, paymentAmount kernel.Money) error {
	if percentage < 1 || percentage > 100 {
		return errs.NewValueIsOutOfRangeError("percentage", percentage, 1, 100)
	}
	if err := paymentAmount.Validate(); err != nil {
		return err
	}

	diff := amount.Amount()*100 - paymentAmount.Amount()*int64(percentage)
	if diff < 0 {
		diff = -diff
	}
	if diff > percentageToleranceMinorUnits*100 {
		return errs.NewValueIsInvalidErrorWithCause(
			"tipAmount",
			fmt.Errorf("%s is not %d%% of %s", amount, percentage, paymentAmount))
	}

	return nil
}
