// Package ports defines the persistence contracts between the domain layer
// and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// ErrConcurrencyConflict is returned by conditional writes whose guard did
// not match: the order's stored state changed between the caller's read and
// its write. The conflict is always recoverable by re-reading the order and
// retrying with the fresh state; no automatic retry is performed here.
var ErrConcurrencyConflict = errors.New("order was modified concurrently")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its detail lines.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate without a
	// state guard. Used for detail mutations while the order is Taken.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateWhereStatus persists the aggregate's current state only if the
	// stored status still equals expected, in a single conditional write.
	// This is the optimistic-concurrency primitive the lifecycle rests on:
	// concurrent writers race on the guard, at most one wins, and the rest
	// receive ErrConcurrencyConflict without side effects.
	UpdateWhereStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier, including
	// detail lines and personalizations. Returns an error unwrapping to
	// errs.ErrObjectNotFound if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllReady retrieves all orders of the given type in Ready status,
	// ordered by creation time ascending (oldest first).
	GetAllReady(ctx context.Context, orderType order.OrderType) ([]*order.Order, error)
}
