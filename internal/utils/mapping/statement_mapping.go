package mapping

import (
	"github.com/finvault/fin_statements_app/internal/core/domain"
	"github.com/finvault/fin_statements_app/internal/models"
)

// ToModelStatement converts a domain.Statement to its database model.
func ToModelStatement(d domain.Statement) models.Statement {
	return models.Statement{
		StatementID: d.StatementID,
		UserID:      d.UserID,
		Type:        string(d.Type),
		EntrySide:   string(d.Side),
		Amount:      d.Amount,
		Description: d.Description,
		ReceiverID:  d.CounterpartyID,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainStatement converts a models.Statement to its domain representation.
func ToDomainStatement(m models.Statement) domain.Statement {
	return domain.Statement{
		StatementID:    m.StatementID,
		UserID:         m.UserID,
		Type:           domain.OperationType(m.Type),
		Side:           domain.EntrySide(m.EntrySide),
		Amount:         m.Amount,
		Description:    m.Description,
		CounterpartyID: m.ReceiverID,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainStatementSlice converts a slice of models.Statement to domain statements.
func ToDomainStatementSlice(ms []models.Statement) []domain.Statement {
	ds := make([]domain.Statement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStatement(m)
	}
	return ds
}
