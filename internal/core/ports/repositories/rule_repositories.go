package repositories

import (
	"context"

	"github.com/finledger/posting_engine/internal/core/domain"
)

// PostingRuleReader defines read operations for posting rules.
type PostingRuleReader interface {
	// FindPostingRule returns the best-matching active rule for the
	// tenant's event type, honouring the optional scope attributes.
	// A missing rule is an expected outcome and returns (nil, nil),
	// not an error: the caller falls back to its hardcoded lines.
	FindPostingRule(ctx context.Context, tenantID, modelCode string, scope domain.RuleScope) (*domain.PostingRule, error)

	// FindRuleByID retrieves a rule with its line templates.
	FindRuleByID(ctx context.Context, tenantID, ruleID string) (*domain.PostingRule, error)

	// ListRulesByTenant retrieves the tenant's rules, optionally narrowed to one model code.
	ListRulesByTenant(ctx context.Context, tenantID string, modelCode *string) ([]domain.PostingRule, error)
}

// PostingRuleWriter defines write operations for posting rules.
type PostingRuleWriter interface {
	// SavePostingRule persists a rule and its line templates atomically.
	SavePostingRule(ctx context.Context, rule domain.PostingRule) error

	// DeactivateRule soft-deletes a rule so it stops matching new events.
	DeactivateRule(ctx context.Context, tenantID, ruleID string, updatedBy string) error
}

// PostingRuleRepositoryFacade combines all posting-rule repository interfaces.
type PostingRuleRepositoryFacade interface {
	PostingRuleReader
	PostingRuleWriter
}
