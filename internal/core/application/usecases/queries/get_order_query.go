package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its detail lines, for status
// screens and receipts.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the given order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponseDetail is one detail line of the order view.
type GetOrderQueryResponseDetail struct {
	ID        kernel.UUID
	ProductID kernel.UUID
	UnitPrice int64
	Quantity  int
	Subtotal  int64
}

// GetOrderQueryResponse is the full order view. Status and order type are
// rendered as their string names.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	SellerID        kernel.UUID
	OrderType       string
	Status          string
	DeliveryAgentID *kernel.UUID
	Total           int64
	CreatedAt       time.Time
	Details         []GetOrderQueryResponseDetail
}
