package repositories

import (
	"context"

	"github.com/finledger/posting_engine/internal/core/domain"
)

// AuditRepositoryFacade defines the audit sink and its read side.
type AuditRepositoryFacade interface {
	// SaveAuditRecord appends one audit row. Callers treat failures as
	// best effort: log and continue.
	SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error

	// ListAuditRecords retrieves a token-paginated audit trail for a tenant.
	ListAuditRecords(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.AuditRecord, *string, error)
}
