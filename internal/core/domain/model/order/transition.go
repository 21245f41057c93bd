package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/actor"
)

var (
	// ErrInvalidTransition is returned when the requested edge does not
	// exist in the lifecycle graph for the order's current state and type.
	// Cancelling an already-terminal order is an invalid transition, not a
	// silent no-op: cancellation has financial implications and callers
	// must treat it as an error.
	ErrInvalidTransition = errors.New("invalid order state transition")

	// ErrForbidden is returned when the acting role is not authorized for
	// the requested edge, or when an agent-scoped edge is attempted by
	// someone other than the assigned delivery agent.
	ErrForbidden = errors.New("actor is not authorized for this transition")
)

// edge is a directed transition in the lifecycle graph.
type edge struct {
	from Status
	to   Status
}

// transitionRule describes one legal edge: which roles may drive it, which
// order types it applies to, and whether it is restricted to the assigned
// delivery agent.
type transitionRule struct {
	roles       []actor.Role
	onPremise   bool
	delivery    bool
	agentScoped bool
}

// transitionTable is the single authority on lifecycle legality. Every
// `(state, role)` pair not present here is rejected. The table is static:
// adding a transition means adding a row, never an ad hoc check elsewhere.
var transitionTable = map[edge]transitionRule{
	{Taken, Ready}: {
		roles:     []actor.Role{actor.Kitchen, actor.Admin},
		onPremise: true,
		delivery:  true,
	},
	{Taken, Cancelled}: {
		roles:     []actor.Role{actor.Owner, actor.Admin},
		onPremise: true,
		delivery:  true,
	},
	{Ready, InTransit}: {
		roles:       []actor.Role{actor.DeliveryAgent},
		delivery:    true,
		agentScoped: false, // the claim itself assigns the agent
	},
	{Ready, Delivered}: {
		roles:     []actor.Role{actor.Cashier, actor.Admin},
		onPremise: true,
	},
	{Ready, Cancelled}: {
		roles:     []actor.Role{actor.Admin},
		onPremise: true,
		delivery:  true,
	},
	{InTransit, Arrived}: {
		roles:       []actor.Role{actor.DeliveryAgent},
		delivery:    true,
		agentScoped: true,
	},
	{InTransit, Cancelled}: {
		roles:    []actor.Role{actor.Admin},
		delivery: true,
	},
	{Arrived, Delivered}: {
		roles:       []actor.Role{actor.DeliveryAgent},
		delivery:    true,
		agentScoped: true,
	},
	{Arrived, Cancelled}: {
		roles:    []actor.Role{actor.Admin},
		delivery: true,
	},
}

// ruleFor returns the transition rule for an edge if the edge exists in the
// graph for the given order type.
func ruleFor(from, to Status, orderType OrderType) (transitionRule, bool) {
	rule, ok := transitionTable[edge{from: from, to: to}]
	if !ok {
		return transitionRule{}, false
	}

	switch orderType {
	case TypeOnPremise:
		if !rule.onPremise {
			return transitionRule{}, false
		}
	case TypeDelivery:
		if !rule.delivery {
			return transitionRule{}, false
		}
	default:
		return transitionRule{}, false
	}

	return rule, true
}

func newInvalidTransitionError(from, to Status, orderType OrderType) error {
	return fmt.Errorf("%w: %s -> %s is not allowed for %s orders",
		ErrInvalidTransition, from, to, orderType)
}

func newForbiddenRoleError(role actor.Role, from, to Status) error {
	return fmt.Errorf("%w: role %s may not move an order from %s to %s",
		ErrForbidden, role, from, to)
}

func newForbiddenAgentError(from, to Status) error {
	return fmt.Errorf("%w: only the assigned delivery agent may move an order from %s to %s",
		ErrForbidden, from, to)
}
