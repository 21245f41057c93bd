package queries

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetReadyOrdersQueryHandler reads the dispatch queue from the database.
type GetReadyOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetReadyOrdersQueryHandler creates a handler for dispatch queue reads.
// Requires a GORM database connection for query execution.
func NewGetReadyOrdersQueryHandler(db *gorm.DB) GetReadyOrdersQueryHandler {
	return GetReadyOrdersQueryHandler{db: db}
}

// Handle executes the query, returning Ready orders of the requested type
// ordered by creation time ascending. Ties on creation time are broken by
// ID so that repeated polls see a stable order.
func (h GetReadyOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetReadyOrdersQuery,
) ([]GetReadyOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetReadyOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			seller_id,
			total,
			created_at
		FROM orders
		WHERE status = ? AND order_type = ?
		ORDER BY created_at, id
	`, order.Ready, query.OrderType()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetReadyOrdersQueryResponse
		var id, sellerID uuid.UUID

		err = rows.Scan(
			&id,
			&sellerID,
			&resp.Total,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		seller, idErr := kernel.UUIDFromBytes(sellerID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.SellerID = seller

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
