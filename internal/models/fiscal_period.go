package models

// FiscalPeriod is the fiscal_periods table row.
type FiscalPeriod struct {
	PeriodID      string `db:"period_id"`
	TenantID      string `db:"tenant_id"`
	LegalEntityID string `db:"legal_entity_id"`
	Year          int    `db:"year"`
	Month         int    `db:"month"`
	IsLocked      bool   `db:"is_locked"`
	AuditFields
}
