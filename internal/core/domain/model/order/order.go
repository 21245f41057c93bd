package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders
	// are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrDetailsAreSealed is returned when appending a detail line to an
	// order that has already left the Taken status.
	ErrDetailsAreSealed = errors.New("details can only be appended while the order is Taken")
)

// Order represents a food order. It is the aggregate root that manages the
// order lifecycle from counter entry through kitchen readiness, dispatch,
// and final delivery or cancellation.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier and seller
//   - Must have at least one detail line
//   - The total always equals the sum of detail subtotals
//   - Status changes follow the lifecycle graph in transition.go
//   - The delivery agent is set exactly once, by a successful claim,
//     and never reassigned
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation; all mutation goes
// through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// sellerID is the counter staff member who entered the order
	sellerID kernel.UUID

	// orderType is fixed at creation and gates legal transitions
	orderType OrderType

	// status is the current state in the order lifecycle
	status Status

	// createdAt defines the FIFO position in the ready queue
	createdAt time.Time

	// deliveryAgentID is the claiming agent's ID (nil until claimed)
	deliveryAgentID *kernel.UUID

	// total is the sum of all detail subtotals
	total kernel.Money

	// details are the order's line items, append-only while Taken
	details []Detail

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Taken status. This is the only way to
// create a valid order from scratch; all business invariants are checked.
//
// The detail list must be non-empty and every detail must be constructed;
// the order total is computed as the sum of detail subtotals.
func NewOrder(
	id kernel.UUID,
	sellerID kernel.UUID,
	orderType OrderType,
	createdAt time.Time,
	details []Detail,
) (*Order, error) {
	o := &Order{
		status:        Taken,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setSellerID(sellerID),
		o.setOrderType(orderType),
		o.setCreatedAt(createdAt),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence with its full state.
// It validates the stored status, the agent assignment consistency, and
// that the stored total matches the detail subtotals.
func RestoreOrder(
	id kernel.UUID,
	sellerID kernel.UUID,
	orderType OrderType,
	status Status,
	createdAt time.Time,
	deliveryAgentID *kernel.UUID,
	total kernel.Money,
	details []Detail,
) (*Order, error) {
	o, err := NewOrder(id, sellerID, orderType, createdAt, details)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if err = status.ValidateCanHaveAgent(deliveryAgentID != nil, orderType); err != nil {
		return nil, err
	}
	if deliveryAgentID != nil {
		if err = deliveryAgentID.Validate(); err != nil {
			return nil, err
		}
	}
	if err = total.Validate(); err != nil {
		return nil, err
	}
	if !o.total.IsEqual(total) {
		return nil, errs.NewValueIsInvalidError("total")
	}

	o.status = status
	o.deliveryAgentID = deliveryAgentID
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise. Called when reconstructing
// orders from persistence to ensure data integrity.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// SellerID returns the ID of the counter staff member who entered the order.
func (o *Order) SellerID() kernel.UUID {
	return o.sellerID
}

// Type returns whether the order is on-premise or delivery.
func (o *Order) Type() OrderType {
	return o.orderType
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp, the FIFO sort key of the
// ready queue.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveryAgent returns the assigned delivery agent's ID.
// Returns nil if the order has not been claimed.
func (o *Order) DeliveryAgent() *kernel.UUID {
	return o.deliveryAgentID
}

// Total returns the order total, the sum of detail subtotals.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Details returns the order's line items.
func (o *Order) Details() []Detail {
	return o.details
}

// Transition moves the order along one edge of the lifecycle graph on
// behalf of the given actor. It is the single authority for state changes:
//
//  1. The edge must exist in the graph for this order's type,
//     otherwise ErrInvalidTransition.
//  2. The actor's role must be authorized for the edge,
//     otherwise ErrForbidden.
//  3. Agent-scoped edges (InTransit -> Arrived, Arrived -> Delivered) must
//     be performed by the assigned agent, otherwise ErrForbidden.
//
// A successful Ready -> InTransit transition records the actor as the
// order's delivery agent; no other edge touches the assignment.
//
// The optimistic-concurrency guard (expected current state) is enforced by
// the callers at the persistence boundary; Transition only validates the
// in-memory state it sees.
func (o *Order) Transition(act actor.Actor, target Status) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := act.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	rule, ok := ruleFor(o.status, target, o.orderType)
	if !ok {
		return newInvalidTransitionError(o.status, target, o.orderType)
	}

	if !act.Is(rule.roles...) {
		return newForbiddenRoleError(act.Role(), o.status, target)
	}

	if rule.agentScoped {
		if o.deliveryAgentID == nil || !act.UserID().IsEqual(*o.deliveryAgentID) {
			return newForbiddenAgentError(o.status, target)
		}
	}

	if o.status == Ready && target == InTransit {
		agentID := act.UserID()
		o.deliveryAgentID = &agentID
	}

	o.status = target
	return nil
}

// MarkReady moves the order from Taken to Ready (kitchen or admin).
func (o *Order) MarkReady(act actor.Actor) error {
	return o.Transition(act, Ready)
}

// Claim moves a delivery order from Ready to InTransit and assigns the
// acting delivery agent. Racing claims are arbitrated by the conditional
// write at the persistence boundary, not here.
func (o *Order) Claim(act actor.Actor) error {
	return o.Transition(act, InTransit)
}

// MarkArrived moves the order from InTransit to Arrived (assigned agent).
func (o *Order) MarkArrived(act actor.Actor) error {
	return o.Transition(act, Arrived)
}

// Deliver moves the order into the terminal Delivered status, either from
// Arrived (delivery orders, assigned agent) or directly from Ready
// (on-premise checkout by a cashier or admin).
func (o *Order) Deliver(act actor.Actor) error {
	return o.Transition(act, Delivered)
}

// Cancel moves the order into the terminal Cancelled status from any
// non-terminal state, subject to role authorization per edge.
func (o *Order) Cancel(act actor.Actor) error {
	return o.Transition(act, Cancelled)
}

// AppendDetail adds a line item to an order that is still Taken and
// recomputes the total. Once the order leaves Taken, the detail list is
// sealed and ErrDetailsAreSealed is returned.
func (o *Order) AppendDetail(d Detail) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status != Taken {
		return ErrDetailsAreSealed
	}
	if err := d.Validate(); err != nil {
		return err
	}

	newTotal, err := o.total.Add(d.Subtotal())
	if err != nil {
		return err
	}

	o.details = append(o.details, d)
	o.total = newTotal
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	o.sellerID = sellerID
	return nil
}

func (o *Order) setOrderType(orderType OrderType) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setDetails(details []Detail) error {
	if len(details) == 0 {
		return errs.NewValueIsRequiredError("details")
	}

	total, err := kernel.NewMoney(0)
	if err != nil {
		return err
	}

	for _, d := range details {
		if err = d.Validate(); err != nil {
			return err
		}
		total, err = total.Add(d.Subtotal())
		if err != nil {
			return err
		}
	}

	o.details = details
	o.total = total
	return nil
}
