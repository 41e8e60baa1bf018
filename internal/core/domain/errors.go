package domain

import "errors"

// Domain-level outcomes of statement operations. Callers are expected to
// branch on these with errors.Is; they are never collapsed into a generic
// failure.
var (
	// ErrUserNotFound is returned when the acting user or, for transfers,
	// the receiver cannot be resolved.
	ErrUserNotFound = errors.New("user not found")

	// ErrStatementNotFound is returned when a statement lookup misses for an
	// otherwise valid user.
	ErrStatementNotFound = errors.New("statement operation not found")

	// ErrInsufficientFunds is returned when a withdrawal or outgoing transfer
	// amount exceeds the user's current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSelfTransfer is returned when the sender and receiver of a transfer
	// are the same user.
	ErrSelfTransfer = errors.New("transference from a user to itself is not allowed")
)
