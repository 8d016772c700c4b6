package mapping

import (
	"github.com/finledger/posting_engine/internal/core/domain"
	"github.com/finledger/posting_engine/internal/models"
)

// ToModelFiscalPeriod converts a domain FiscalPeriod to its table row.
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:      d.PeriodID,
		TenantID:      d.TenantID,
		LegalEntityID: d.LegalEntityID,
		Year:          d.Year,
		Month:         d.Month,
		IsLocked:      d.IsLocked,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a period row to a domain FiscalPeriod.
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:      m.PeriodID,
		TenantID:      m.TenantID,
		LegalEntityID: m.LegalEntityID,
		Year:          m.Year,
		Month:         m.Month,
		IsLocked:      m.IsLocked,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
