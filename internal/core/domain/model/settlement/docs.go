// Package settlement implements the financial records tied to order
// completion: at most one Payment per order and at most one Tip per payment.
// Settlement records are append-only; corrections are a manual process
// outside this system, so a duplicate settlement attempt is an error, never
// an overwrite.
package settlement
