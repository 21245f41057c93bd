// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and created_at carry indexes because the dispatch queue is derived
// from them: a filtered, sorted read over this table.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SellerID        uuid.UUID  `gorm:"type:uuid;index"`
	DeliveryAgentID *uuid.UUID `gorm:"type:uuid;index"`
	OrderType       int
	Status          int       `gorm:"index:idx_orders_queue,priority:1"`
	Total           int64
	CreatedAt       time.Time `gorm:"index:idx_orders_queue,priority:2"`

	Details []DetailDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// DetailDTO represents one detail line of an order.
type DetailDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	UnitPrice int64
	Quantity  int
	Subtotal  int64

	Personalizations []PersonalizationDTO `gorm:"foreignKey:DetailID;references:ID"`
}

// TableName specifies the database table name for detail lines.
func (DetailDTO) TableName() string {
	return "order_details"
}

// PersonalizationDTO represents an ingredient adjustment on a detail line.
// Personalizations have no domain identity; the surrogate key exists only
// for the relational model.
type PersonalizationDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	DetailID   uuid.UUID `gorm:"type:uuid;index"`
	Ingredient string
	Excluded   bool
	Mandatory  bool
}

// TableName specifies the database table name for personalizations.
func (PersonalizationDTO) TableName() string {
	return "order_detail_personalizations"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := aggregate.DeliveryAgent(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	details := make([]DetailDTO, 0, len(aggregate.Details()))
	for _, d := range aggregate.Details() {
		details = append(details, detailFromDomain(aggregate.ID(), d))
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		SellerID:        aggregate.SellerID().Bytes(),
		DeliveryAgentID: agentID,
		OrderType:       int(aggregate.Type()),
		Status:          int(aggregate.Status()),
		Total:           aggregate.Total().Amount(),
		CreatedAt:       aggregate.CreatedAt(),
		Details:         details,
	}
}

func detailFromDomain(orderID kernel.UUID, d order.Detail) DetailDTO {
	personalizations := make([]PersonalizationDTO, 0, len(d.Personalizations()))
	for _, p := range d.Personalizations() {
		personalizations = append(personalizations, PersonalizationDTO{
			DetailID:   d.ID().Bytes(),
			Ingredient: p.Ingredient(),
			Excluded:   p.Excluded(),
			Mandatory:  p.Mandatory(),
		})
	}

	return DetailDTO{
		ID:               d.ID().Bytes(),
		OrderID:          orderID.Bytes(),
		ProductID:        d.ProductID().Bytes(),
		UnitPrice:        d.UnitPrice().Amount(),
		Quantity:         d.Quantity(),
		Subtotal:         d.Subtotal().Amount(),
		Personalizations: personalizations,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including detail lines using RestoreOrder,
// which re-validates status consistency and the stored total.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.DeliveryAgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.DeliveryAgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}

		agentID = &aID
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	details := make([]order.Detail, 0, len(dto.Details))
	for _, d := range dto.Details {
		detail, detailErr := detailToDomain(d)
		if detailErr != nil {
			return nil, detailErr
		}
		details = append(details, detail)
	}

	return order.RestoreOrder(
		id, sellerID, order.OrderType(dto.OrderType), order.Status(dto.Status),
		dto.CreatedAt, agentID, total, details,
	)
}

func detailToDomain(dto DetailDTO) (order.Detail, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Detail{}, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Detail{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Detail{}, err
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return order.Detail{}, err
	}

	personalizations := make([]order.Personalization, 0, len(dto.Personalizations))
	for _, p := range dto.Personalizations {
		personalization, pErr := order.NewPersonalization(p.Ingredient, p.Excluded, p.Mandatory)
		if pErr != nil {
			return order.Detail{}, pErr
		}
		personalizations = append(personalizations, personalization)
	}

	return order.RestoreDetail(id, productID, unitPrice, dto.Quantity, subtotal, personalizations)
}
