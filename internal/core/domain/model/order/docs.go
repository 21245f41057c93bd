// Package order implements the order aggregate and its lifecycle state
// machine. An order moves from Taken through kitchen readiness to either a
// direct cashier checkout (on-premise) or a claim/transit/arrival/delivery
// sequence (delivery), with Cancelled as the universal escape from any
// non-terminal state.
//
// Every state change goes through Order.Transition, which enforces three
// things in one place:
//   - the edge exists in the lifecycle graph for the order's type
//   - the acting role is authorized for that edge (static permission table)
//   - agent-scoped edges are performed by the assigned delivery agent
//
// The aggregate contains the order's detail lines and maintains the
// invariant that the order total equals the sum of detail subtotals.
package order
