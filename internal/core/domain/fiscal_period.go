package domain

// FiscalPeriod is one accounting month for a tenant's legal entity.
// Periods are opt-in locks: a missing record means the month is open.
// Locking is done by an external period-close operation; this engine
// only ever reads the flag.
type FiscalPeriod struct {
	PeriodID      string `json:"periodID"`
	TenantID      string `json:"tenantID"`
	LegalEntityID string `json:"legalEntityID"`
	Year          int    `json:"year"`
	Month         int    `json:"month"` // 1..12
	IsLocked      bool   `json:"isLocked"`
	AuditFields
}
