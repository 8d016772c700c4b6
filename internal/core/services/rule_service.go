package services

import (
	"context"
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
	"github.com/shopspring/decimal"
)

type ruleService struct {
	ruleRepo portsrepo.PostingRuleRepositoryFacade
}

// NewRuleService creates the posting-rule management service.
func NewRuleService(ruleRepo portsrepo.PostingRuleRepositoryFacade) portssvc.RuleSvcFacade {
	return &ruleService{ruleRepo: ruleRepo}
}

var _ portssvc.RuleSvcFacade = (*ruleService)(nil)

// CreateRule implements portssvc.RuleSvcFacade.
func (s *ruleService) CreateRule(ctx context.Context, tenantID string, req dto.CreateRuleRequest, creatorUserID string) (*domain.PostingRule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	ruleID := uuid.NewString()

	rule := domain.PostingRule{
		RuleID:        ruleID,
		TenantID:      tenantID,
		ModelCode:     req.ModelCode,
		BankAccountID: req.BankAccountID,
		CurrencyCode:  req.CurrencyCode,
		PartnerType:   req.PartnerType,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	rule.Lines = make([]domain.PostingLineTemplate, len(req.Lines))
	for i, rl := range req.Lines {
		factor := decimal.NewFromInt(1)
		if rl.AmountFactor != nil {
			factor = *rl.AmountFactor
		}
		rule.Lines[i] = domain.PostingLineTemplate{
			LineID:            uuid.NewString(),
			RuleID:            ruleID,
			Side:              rl.Side,
			AccountSource:     rl.AccountSource,
			AccountID:         rl.AccountID,
			DynamicAccountKey: rl.DynamicAccountKey,
			AmountSource:      rl.AmountSource,
			AmountKey:         rl.AmountKey,
			AmountFactor:      factor,
			IsTaxLine:         rl.IsTaxLine,
			SortOrder:         rl.SortOrder,
			Description:       rl.Description,
		}
	}

	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.ruleRepo.SavePostingRule(ctx, rule); err != nil {
		logger.Error("Failed to save posting rule",
			slog.String("tenant_id", tenantID),
			slog.String("model_code", req.ModelCode),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to save posting rule: %w", err)
	}

	logger.Info("Posting rule created",
		slog.String("tenant_id", tenantID),
		slog.String("rule_id", ruleID),
		slog.String("model_code", req.ModelCode),
	)
	return &rule, nil
}

// GetRuleByID implements portssvc.RuleSvcFacade.
func (s *ruleService) GetRuleByID(ctx context.Context, tenantID, ruleID string) (*domain.PostingRule, error) {
	rule, err := s.ruleRepo.FindRuleByID(ctx, tenantID, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find rule %s: %w", ruleID, err)
	}
	return rule, nil
}

// ListRules implements portssvc.RuleSvcFacade.
func (s *ruleService) ListRules(ctx context.Context, tenantID string, modelCode *string) ([]domain.PostingRule, error) {
	rules, err := s.ruleRepo.ListRulesByTenant(ctx, tenantID, modelCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules for tenant %s: %w", tenantID, err)
	}
	return rules, nil
}

// DeactivateRule implements portssvc.RuleSvcFacade. Deactivation is a
// soft delete: historical entries keep referencing the rule.
func (s *ruleService) DeactivateRule(ctx context.Context, tenantID, ruleID, actorID string) error {
	if err := s.ruleRepo.DeactivateRule(ctx, tenantID, ruleID, actorID); err != nil {
		return fmt.Errorf("failed to deactivate rule %s: %w", ruleID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Posting rule deactivated",
		slog.String("tenant_id", tenantID),
		slog.String("rule_id", ruleID),
	)
	return nil
}
