package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/posting_engine/internal/apperrors"
	"github.com/finledger/posting_engine/internal/core/domain"
	portsrepo "github.com/finledger/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/finledger/posting_engine/internal/core/ports/services"
	"github.com/finledger/posting_engine/internal/dto"
	"github.com/finledger/posting_engine/internal/middleware"
	"github.com/finledger/posting_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// postingService is the orchestration layer of the posting pipeline:
// fiscal period guard, rule resolution with fallback, atomic
// persistence, best-effort audit.
type postingService struct {
	ruleRepo     portsrepo.PostingRuleRepositoryFacade
	journalRepo  portsrepo.JournalEntryRepositoryFacade
	periodRepo   portsrepo.FiscalPeriodReader
	auditRepo    portsrepo.AuditRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// NewPostingService creates the posting orchestration service.
func NewPostingService(
	ruleRepo portsrepo.PostingRuleRepositoryFacade,
	journalRepo portsrepo.JournalEntryRepositoryFacade,
	periodRepo portsrepo.FiscalPeriodReader,
	auditRepo portsrepo.AuditRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
) portssvc.PostingSvcFacade {
	return &postingService{
		ruleRepo:     ruleRepo,
		journalRepo:  journalRepo,
		periodRepo:   periodRepo,
		auditRepo:    auditRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// Post implements portssvc.PostingSvcFacade.
//
// The period guard runs first and a locked period is fatal. Rule lookup
// and expansion failures are not: they degrade to the caller-supplied
// fallback lines so a misconfigured rule never blocks a legitimate
// business transaction. Persistence failures propagate. Audit failures
// are logged and swallowed: the entry is already durably committed and
// is worth more than the audit row.
func (s *postingService) Post(ctx context.Context, tenantID, actorID string, req dto.PostRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("tenant_id", tenantID),
		slog.String("model_code", req.ModelCode),
		slog.String("source_event_id", req.SourceEventID),
	)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: posting amount must be positive", apperrors.ErrValidation)
	}

	// 1. Guard: a locked fiscal period aborts the business operation.
	if err := s.checkFiscalPeriodOpen(ctx, tenantID, req.LegalEntityID, req.EntryDate); err != nil {
		return nil, err
	}

	precision := s.resolvePrecision(ctx, req.CurrencyCode)

	// 2. Resolve: best-matching rule, expanded against the context.
	lines, ruleID := s.resolveLines(ctx, logger, tenantID, req, precision)

	usedFallback := ruleID == nil
	if usedFallback {
		var err error
		lines, err = buildFallbackLines(req.FallbackLines)
		if err != nil {
			return nil, err
		}
	}

	// The writer re-verifies; checking here keeps a bad caller-supplied
	// fallback from reaching storage at all.
	if err := accounting.ValidateLines(lines); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	for i := range lines {
		lines[i].EntryID = entryID
	}
	debits, credits := accounting.SumLines(lines)

	entry := domain.JournalEntry{
		EntryID:       entryID,
		TenantID:      tenantID,
		LegalEntityID: req.LegalEntityID,
		EntryDate:     req.EntryDate,
		Description:   req.Description,
		Reference:     req.Reference,
		ModelCode:     req.ModelCode,
		SourceEventID: req.SourceEventID,
		CurrencyCode:  req.CurrencyCode,
		Status:        domain.Posted,
		RuleID:        ruleID,
		TotalDebit:    debits,
		TotalCredit:   credits,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	// 3. Persist: header and lines in one storage transaction.
	if err := s.journalRepo.CreateEntry(ctx, entry, lines); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Same source event already posted: answer idempotently
			// with the existing entry instead of double-posting.
			existing, findErr := s.journalRepo.FindEntryBySourceEventID(ctx, tenantID, req.SourceEventID)
			if findErr != nil {
				logger.Error("Duplicate source event but existing entry lookup failed", slog.String("error", findErr.Error()))
				return nil, fmt.Errorf("failed to load entry for duplicate source event %s: %w", req.SourceEventID, findErr)
			}
			logger.Info("Duplicate posting attempt answered with existing entry", slog.String("entry_id", existing.EntryID))
			return existing, nil
		}
		logger.Error("Failed to persist journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to persist journal entry: %w", err)
	}
	entry.Lines = lines

	logger.Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.Bool("used_fallback", usedFallback),
		slog.Int("line_count", len(lines)),
	)

	// 4. Audit: best effort, after the durable write, never before it.
	s.writeAudit(ctx, logger, domain.AuditRecord{
		AuditID:    uuid.NewString(),
		TenantID:   tenantID,
		ActorID:    actorID,
		Action:     domain.AuditActionGLPost,
		EntityType: req.ModelCode,
		EntityID:   entry.EntryID,
		Details: domain.AuditDetails{
			Description: req.Description,
			Reference:   req.Reference,
			Amount:      req.Amount,
			LineCount:   len(lines),
		},
		CreatedAt: now,
	})

	return &entry, nil
}

// checkFiscalPeriodOpen fails with apperrors.ErrPeriodLocked when the
// entry date falls into a locked period. A missing period record means
// open: periods are opt-in locks, not default-closed.
//
// The guard read and the later entry write are deliberately not one
// lock: a period closing in between is an accepted race, since periods
// close rarely and under operator control.
func (s *postingService) checkFiscalPeriodOpen(ctx context.Context, tenantID, legalEntityID string, entryDate time.Time) error {
	period, err := s.periodRepo.FindPeriodFor(ctx, tenantID, legalEntityID, entryDate)
	if err != nil {
		return fmt.Errorf("failed to look up fiscal period: %w", err)
	}
	if period != nil && period.IsLocked {
		return fmt.Errorf("%w: %04d-%02d is closed for tenant %s", apperrors.ErrPeriodLocked, period.Year, period.Month, tenantID)
	}
	return nil
}

// resolvePrecision returns the currency's minor-unit digits, defaulting
// when the currency is not registered. A registry miss must not block a
// posting.
func (s *postingService) resolvePrecision(ctx context.Context, currencyCode string) int32 {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Warn("Currency lookup failed, using default precision",
				slog.String("currency_code", currencyCode), slog.String("error", err.Error()))
		}
		return domain.DefaultCurrencyPrecision
	}
	return currency.Precision
}

// resolveLines attempts the rule path and returns (lines, ruleID). A
// nil ruleID signals the fallback path. Rule failures are non-fatal by
// design; an unbalanced expansion is logged at error level because the
// rule will keep failing for every future event of its type until fixed.
func (s *postingService) resolveLines(ctx context.Context, logger *slog.Logger, tenantID string, req dto.PostRequest, precision int32) ([]domain.JournalLine, *string) {
	scope := domain.RuleScope{
		BankAccountID: req.BankAccountID,
		CurrencyCode:  &req.CurrencyCode,
		PartnerType:   req.PartnerType,
	}

	rule, err := s.ruleRepo.FindPostingRule(ctx, tenantID, req.ModelCode, scope)
	if err != nil {
		logger.Warn("Posting rule lookup failed, using fallback lines", slog.String("error", err.Error()))
		return nil, nil
	}
	if rule == nil {
		logger.Warn("No posting rule for event type, using fallback lines")
		return nil, nil
	}

	lines, err := ExpandRuleLines(rule.Lines, req.Amount, req.Context.ToDomain(), precision)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnbalancedEntry) {
			logger.Error("Posting rule expands to an unbalanced entry, using fallback lines",
				slog.String("rule_id", rule.RuleID), slog.String("error", err.Error()))
		} else {
			logger.Warn("Posting rule expansion failed, using fallback lines",
				slog.String("rule_id", rule.RuleID), slog.String("error", err.Error()))
		}
		return nil, nil
	}

	return lines, &rule.RuleID
}

// buildFallbackLines converts the caller-supplied hardcoded lines,
// preserving their amounts exactly as given.
func buildFallbackLines(reqLines []dto.FallbackLineRequest) ([]domain.JournalLine, error) {
	if len(reqLines) < 2 {
		return nil, fmt.Errorf("%w: at least two fallback lines are required", apperrors.ErrValidation)
	}
	lines := make([]domain.JournalLine, len(reqLines))
	for i, rl := range reqLines {
		if rl.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: fallback line %d amount must be positive", apperrors.ErrValidation, i)
		}
		line := domain.JournalLine{
			LineID:      uuid.NewString(),
			AccountID:   rl.AccountID,
			Description: rl.Description,
			IsTaxLine:   rl.IsTaxLine,
			SortOrder:   i,
		}
		switch rl.Side {
		case domain.Debit:
			line.Debit = rl.Amount
			line.Credit = decimal.Zero
		case domain.Credit:
			line.Credit = rl.Amount
			line.Debit = decimal.Zero
		default:
			return nil, fmt.Errorf("%w: fallback line %d has invalid side %q", apperrors.ErrValidation, i, rl.Side)
		}
		lines[i] = line
	}
	return lines, nil
}

// writeAudit appends an audit row, logging and swallowing failures.
func (s *postingService) writeAudit(ctx context.Context, logger *slog.Logger, record domain.AuditRecord) {
	if err := s.auditRepo.SaveAuditRecord(ctx, record); err != nil {
		logger.Error("Failed to write audit record",
			slog.String("entry_id", record.EntityID),
			slog.String("action", string(record.Action)),
			slog.String("error", err.Error()),
		)
	}
}

// ReverseEntry implements portssvc.PostingSvcFacade. The correcting
// entry mirrors every line of the original; the original flips to
// REVERSED and both entries stay linked.
func (s *postingService) ReverseEntry(ctx context.Context, tenantID, entryID, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("tenant_id", tenantID),
		slog.String("entry_id", entryID),
	)

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch entry for reversal", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if original.TenantID != tenantID {
		// Obscure existence across tenants.
		return nil, apperrors.ErrNotFound
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: entry status is %s, expected POSTED", apperrors.ErrConflict, original.Status)
	}
	if original.OriginalEntryID != nil {
		return nil, fmt.Errorf("%w: cannot reverse an entry that is already a reversal", apperrors.ErrConflict)
	}

	if err := s.checkFiscalPeriodOpen(ctx, tenantID, original.LegalEntityID, original.EntryDate); err != nil {
		return nil, err
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for reversal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}

	now := time.Now().UTC()
	reversingID := uuid.NewString()

	reversingLines := make([]domain.JournalLine, len(originalLines))
	for i, line := range originalLines {
		reversingLines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     reversingID,
			AccountID:   line.AccountID,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Description: line.Description,
			IsTaxLine:   line.IsTaxLine,
			SortOrder:   line.SortOrder,
		}
	}

	reversing := domain.JournalEntry{
		EntryID:         reversingID,
		TenantID:        tenantID,
		LegalEntityID:   original.LegalEntityID,
		EntryDate:       original.EntryDate,
		Description:     fmt.Sprintf("Reversal of entry %d: %s", original.EntryNumber, original.Description),
		Reference:       original.Reference,
		ModelCode:       original.ModelCode,
		SourceEventID:   original.EntryID + ":reversal",
		CurrencyCode:    original.CurrencyCode,
		Status:          domain.Posted,
		TotalDebit:      original.TotalCredit,
		TotalCredit:     original.TotalDebit,
		OriginalEntryID: &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.journalRepo.CreateReversalEntry(ctx, reversing, reversingLines, original.EntryID); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: entry %s is already reversed", apperrors.ErrConflict, entryID)
		}
		logger.Error("Failed to persist reversing entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to persist reversing entry: %w", err)
	}
	reversing.Lines = reversingLines

	logger.Info("Journal entry reversed", slog.String("reversing_entry_id", reversingID))

	s.writeAudit(ctx, logger, domain.AuditRecord{
		AuditID:    uuid.NewString(),
		TenantID:   tenantID,
		ActorID:    actorID,
		Action:     domain.AuditActionGLReverse,
		EntityType: original.ModelCode,
		EntityID:   reversingID,
		Details: domain.AuditDetails{
			Description: reversing.Description,
			Reference:   reversing.Reference,
			Amount:      reversing.TotalDebit,
			LineCount:   len(reversingLines),
		},
		CreatedAt: now,
	})

	return &reversing, nil
}
