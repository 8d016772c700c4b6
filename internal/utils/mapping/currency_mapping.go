package mapping

import (
	"github.com/finledger/posting_engine/internal/core/domain"
	"github.com/finledger/posting_engine/internal/models"
)

// ToDomainCurrency converts a currency row to a domain Currency.
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode: m.CurrencyCode,
		Symbol:       m.Symbol,
		Name:         m.Name,
		Precision:    m.Precision,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
