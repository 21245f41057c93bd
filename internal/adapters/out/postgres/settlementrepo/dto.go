// Package settlementrepo persists payment and tip records. Rows here are
// append-only; the unique index on order_id is what makes double settlement
// impossible at the storage level, independent of any handler check.
package settlementrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/settlement"

	"github.com/google/uuid"
)

// PaymentDTO represents the database structure for payment records.
type PaymentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Amount     int64
	Method     int
	RecordedAt time.Time
}

// TableName specifies the database table name for payment records.
func (PaymentDTO) TableName() string {
	return "payments"
}

// TipDTO represents the database structure for tip records.
type TipDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PaymentID  uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Amount     int64
	Percentage *int
	RecordedAt time.Time
}

// TableName specifies the database table name for tip records.
func (TipDTO) TableName() string {
	return "tips"
}

func paymentFromDomain(p settlement.Payment) PaymentDTO {
	return PaymentDTO{
		ID:         p.ID().Bytes(),
		OrderID:    p.OrderID().Bytes(),
		Amount:     p.Amount().Amount(),
		Method:     int(p.PaymentMethod()),
		RecordedAt: p.RecordedAt(),
	}
}

func paymentToDomain(dto PaymentDTO) (settlement.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return settlement.Payment{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return settlement.Payment{}, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return settlement.Payment{}, err
	}

	return settlement.NewPayment(id, orderID, amount, settlement.Method(dto.Method), dto.RecordedAt)
}

func tipFromDomain(t settlement.Tip) TipDTO {
	var percentage *int
	if p := t.Percentage(); p != nil {
		v := *p
		percentage = &v
	}

	return TipDTO{
		ID:         t.ID().Bytes(),
		PaymentID:  t.PaymentID().Bytes(),
		Amount:     t.Amount().Amount(),
		Percentage: percentage,
		RecordedAt: t.RecordedAt(),
	}
}
