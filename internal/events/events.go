package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopicStatementRecorded is the topic statement events are published to.
const TopicStatementRecorded = "statement_recorded"

// Publisher is the outbound boundary for domain events. Publishing is
// best-effort: the ledger write is the source of truth and a failed publish
// never fails the operation that produced it.
type Publisher interface {
	Publish(topic string, event any) error
}

// StatementRecorded is emitted after a statement (or transfer pair) has been
// durably written. For transfers it describes the debit side.
type StatementRecorded struct {
	StatementID    string          `json:"statement_id"`
	UserID         string          `json:"user_id"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	CounterpartyID *string         `json:"counterparty_id,omitempty"`
	OccurredAt     time.Time       `json:"occurred_at"`
}
