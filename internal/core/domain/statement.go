package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType identifies the kind of monetary operation a statement records.
type OperationType string

const (
	Deposit  OperationType = "deposit"
	Withdraw OperationType = "withdraw"
	Transfer OperationType = "transfer"
)

// EntrySide indicates whether a statement debits or credits the account it
// belongs to. Deposits are always credits and withdrawals always debits; for
// a transfer the sender's row is the debit and the receiver's row the credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// Statement is one immutable ledger entry against a user's account.
// Amount is always a positive magnitude; the direction of the movement comes
// from Type and Side, never from a sign embedded in Amount.
type Statement struct {
	StatementID    string          `json:"statementID"`
	UserID         string          `json:"userID"`
	Type           OperationType   `json:"type"`
	Side           EntrySide       `json:"-"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	CounterpartyID *string         `json:"counterpartyID,omitempty"` // other side of a transfer, nil otherwise
	CreatedAt      time.Time       `json:"createdAt"`
}

// IsTransfer reports whether the statement is one side of a transfer pair.
func (s Statement) IsTransfer() bool {
	return s.Type == Transfer
}
