package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/finledger/posting_engine/internal/apperrors"
	"github.com/finledger/posting_engine/internal/core/domain"
	portsrepo "github.com/finledger/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/finledger/posting_engine/internal/core/ports/services"
	"github.com/finledger/posting_engine/internal/dto"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type entryService struct {
	journalRepo portsrepo.JournalEntryRepositoryFacade
	auditRepo   portsrepo.AuditRepositoryFacade
}

// NewEntryService creates the journal-entry read service.
func NewEntryService(journalRepo portsrepo.JournalEntryRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade) portssvc.EntrySvcFacade {
	return &entryService{journalRepo: journalRepo, auditRepo: auditRepo}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// GetEntryByID implements portssvc.EntrySvcFacade. The entry is
// returned with its lines loaded.
func (s *entryService) GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries implements portssvc.EntrySvcFacade.
func (s *entryService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := clampLimit(params.Limit)

	entries, nextToken, err := s.journalRepo.ListEntriesByTenant(ctx, tenantID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for tenant %s: %w", tenantID, err)
	}

	resp := dto.ListEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, 0, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, dto.ToJournalEntryResponse(&entries[i]))
	}
	return &resp, nil
}

// ListAuditTrail implements portssvc.EntrySvcFacade.
func (s *entryService) ListAuditTrail(ctx context.Context, tenantID string, params dto.ListAuditParams) (*dto.ListAuditResponse, error) {
	limit := clampLimit(params.Limit)

	records, nextToken, err := s.auditRepo.ListAuditRecords(ctx, tenantID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records for tenant %s: %w", tenantID, err)
	}

	resp := dto.ListAuditResponse{
		Records:   make([]dto.AuditRecordResponse, 0, len(records)),
		NextToken: nextToken,
	}
	for _, r := range records {
		resp.Records = append(resp.Records, dto.ToAuditRecordResponse(r))
	}
	return &resp, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}
