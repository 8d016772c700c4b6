package services

import (
	"context"

	"github.com/finledger/posting_engine/internal/core/domain"
	"github.com/finledger/posting_engine/internal/dto"
)

// EntrySvcFacade reads journal entries and the audit trail.
type EntrySvcFacade interface {
	GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	ListAuditTrail(ctx context.Context, tenantID string, params dto.ListAuditParams) (*dto.ListAuditResponse, error)
}
