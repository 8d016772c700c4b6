package services

import (
	"context"

	"github.com/finledger/posting_engine/internal/core/domain"
	"github.com/finledger/posting_engine/internal/dto"
)

// RuleSvcFacade manages tenant posting rules.
type RuleSvcFacade interface {
	CreateRule(ctx context.Context, tenantID string, req dto.CreateRuleRequest, creatorUserID string) (*domain.PostingRule, error)
	GetRuleByID(ctx context.Context, tenantID, ruleID string) (*domain.PostingRule, error)
	ListRules(ctx context.Context, tenantID string, modelCode *string) ([]domain.PostingRule, error)
	DeactivateRule(ctx context.Context, tenantID, ruleID, actorID string) error
}
