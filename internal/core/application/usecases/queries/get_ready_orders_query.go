// Package queries contains read-only operations for retrieving system state.
// Implements the Query side of CQRS: handlers read the database directly and
// return presentation-shaped responses, bypassing the domain aggregates.
package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrGetReadyOrdersQueryIsNotConstructed = errors.New(
	"GetReadyOrdersQuery must be created via NewGetReadyOrdersQuery constructor",
)

// GetReadyOrdersQuery retrieves the dispatch queue: all Ready orders of one
// type, oldest first. Delivery agents poll it to find claimable orders;
// cashiers use the on-premise variant for checkout.
//
// The queue is a view, not a stored structure. An order enters it by
// reaching Ready and leaves it by being claimed, checked out, or cancelled;
// there is nothing to keep in sync.
type GetReadyOrdersQuery struct {
	orderType order.OrderType

	guard guard.ConstructorGuard
}

// NewGetReadyOrdersQuery creates a query for the ready queue of the given
// order type.
func NewGetReadyOrdersQuery(orderType order.OrderType) (GetReadyOrdersQuery, error) {
	if err := orderType.Validate(); err != nil {
		return GetReadyOrdersQuery{}, err
	}

	return GetReadyOrdersQuery{
		orderType: orderType,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetReadyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetReadyOrdersQueryIsNotConstructed)
}

// OrderType returns the order type whose queue is requested.
func (q GetReadyOrdersQuery) OrderType() order.OrderType {
	return q.orderType
}

// GetReadyOrdersQueryResponse is one entry of the dispatch queue.
type GetReadyOrdersQueryResponse struct {
	ID        kernel.UUID
	SellerID  kernel.UUID
	Total     int64
	CreatedAt time.Time
}
