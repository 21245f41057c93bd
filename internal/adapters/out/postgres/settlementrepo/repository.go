package settlementrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/settlement"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSettlementRepository implements SettlementRepository using GORM.
// Requires the connection to be opened with TranslateError enabled so that
// unique constraint violations surface as gorm.ErrDuplicatedKey.
type GormSettlementRepository struct {
	db *gorm.DB
}

// NewGormSettlementRepository creates a new GORM settlement repository.
func NewGormSettlementRepository(db *gorm.DB) *GormSettlementRepository {
	return &GormSettlementRepository{db: db}
}

// AddPayment saves a payment record. Returns settlement.ErrAlreadySettled
// if the order already has one; the unique index on order_id catches races
// that slipped past the handler's read.
func (r *GormSettlementRepository) AddPayment(ctx context.Context, payment settlement.Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	dto := paymentFromDomain(payment)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return settlement.ErrAlreadySettled
		}
		return err
	}

	return nil
}

// AddTip saves a tip record against an existing payment.
func (r *GormSettlementRepository) AddTip(ctx context.Context, tip settlement.Tip) error {
	if err := tip.Validate(); err != nil {
		return err
	}

	dto := tipFromDomain(tip)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetPaymentByOrderID retrieves the payment recorded for an order.
func (r *GormSettlementRepository) GetPaymentByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (settlement.Payment, error) {
	if err := orderID.Validate(); err != nil {
		return settlement.Payment{}, err
	}

	var dto PaymentDTO
	err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settlement.Payment{}, errs.NewObjectNotFoundError("payment for order", orderID.String())
		}
		return settlement.Payment{}, err
	}

	return paymentToDomain(dto)
}
