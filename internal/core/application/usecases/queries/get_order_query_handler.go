package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order with its detail lines.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an error unwrapping to
// errs.ErrObjectNotFound if no such order exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.readOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	details, err := h.readDetails(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Details = details

	return resp, nil
}

func (h GetOrderQueryHandler) readOrder(
	ctx context.Context, orderID kernel.UUID,
) (GetOrderQueryResponse, error) {
	var resp GetOrderQueryResponse
	var id, sellerID uuid.UUID
	var agentID uuid.NullUUID
	var status order.Status
	var orderType order.OrderType

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			seller_id,
			order_type,
			status,
			delivery_agent_id,
			total,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(
		&id,
		&sellerID,
		&orderType,
		&status,
		&agentID,
		&resp.Total,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", orderID)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if agentID.Valid {
		agent, idErr := kernel.UUIDFromBytes(agentID.UUID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		resp.DeliveryAgentID = &agent
	}
	resp.OrderType = orderType.String()
	resp.Status = status.String()

	return resp, nil
}

func (h GetOrderQueryHandler) readDetails(
	ctx context.Context, orderID kernel.UUID,
) ([]GetOrderQueryResponseDetail, error) {
	details := make([]GetOrderQueryResponseDetail, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			unit_price,
			quantity,
			subtotal
		FROM order_details
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var detail GetOrderQueryResponseDetail
		var id, productID uuid.UUID

		err = rows.Scan(
			&id,
			&productID,
			&detail.UnitPrice,
			&detail.Quantity,
			&detail.Subtotal,
		)
		if err != nil {
			return nil, err
		}

		if detail.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if detail.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}

		details = append(details, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}
