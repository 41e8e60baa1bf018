package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is the database representation of a statement row.
// ReceiverID holds the other side of a transfer and is NULL for deposits and
// withdrawals; deleting the referenced user nullifies it rather than
// cascading (ON DELETE SET NULL).
type Statement struct {
	StatementID string          `db:"statement_id"`
	UserID      string          `db:"user_id"`
	Type        string          `db:"type"`
	EntrySide   string          `db:"entry_side"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	ReceiverID  *string         `db:"receiver_id"`
	CreatedAt   time.Time       `db:"created_at"`
}
