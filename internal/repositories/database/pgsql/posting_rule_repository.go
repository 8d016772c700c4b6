package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finledger/posting_engine/internal/apperrors"
	"github.com/finledger/posting_engine/internal/core/domain"
	portsrepo "github.com/finledger/posting_engine/internal/core/ports/repositories"
	"github.com/finledger/posting_engine/internal/models"
	"github.com/finledger/posting_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPostingRuleRepository struct {
	BaseRepository
}

// newPgxPostingRuleRepository creates a new repository for posting-rule data.
func newPgxPostingRuleRepository(pool *pgxpool.Pool) portsrepo.PostingRuleRepositoryFacade {
	return &PgxPostingRuleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PostingRuleRepositoryFacade = (*PgxPostingRuleRepository)(nil)

// FindPostingRule fetches the tenant's active rules for the model code
// and picks the most specific scope match in memory. Candidate sets are
// small (a handful of rules per event type), so specificity scoring in
// Go keeps the SQL trivial. Returns (nil, nil) when nothing matches.
func (r *PgxPostingRuleRepository) FindPostingRule(ctx context.Context, tenantID, modelCode string, scope domain.RuleScope) (*domain.PostingRule, error) {
	query := `
		SELECT rule_id, tenant_id, model_code, bank_account_id, currency_code, partner_type, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM posting_rules
		WHERE tenant_id = $1 AND model_code = $2 AND is_active = TRUE;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, modelCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query posting rules for model code %s: %w", modelCode, err)
	}
	defer rows.Close()

	candidates := []domain.PostingRule{}
	for rows.Next() {
		var m models.PostingRule
		if err := rows.Scan(
			&m.RuleID,
			&m.TenantID,
			&m.ModelCode,
			&m.BankAccountID,
			&m.CurrencyCode,
			&m.PartnerType,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan posting rule row: %w", err)
		}
		candidates = append(candidates, mapping.ToDomainPostingRule(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posting rule rows: %w", err)
	}

	best := domain.BestMatchingRule(candidates, scope)
	if best == nil {
		return nil, nil
	}

	lines, err := r.findRuleLines(ctx, best.RuleID)
	if err != nil {
		return nil, err
	}
	best.Lines = lines
	return best, nil
}

// FindRuleByID retrieves a rule with its line templates.
func (r *PgxPostingRuleRepository) FindRuleByID(ctx context.Context, tenantID, ruleID string) (*domain.PostingRule, error) {
	query := `
		SELECT rule_id, tenant_id, model_code, bank_account_id, currency_code, partner_type, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM posting_rules
		WHERE tenant_id = $1 AND rule_id = $2;
	`
	var m models.PostingRule
	err := r.Pool.QueryRow(ctx, query, tenantID, ruleID).Scan(
		&m.RuleID,
		&m.TenantID,
		&m.ModelCode,
		&m.BankAccountID,
		&m.CurrencyCode,
		&m.PartnerType,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rule by ID %s: %w", ruleID, err)
	}

	rule := mapping.ToDomainPostingRule(m)
	lines, err := r.findRuleLines(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	rule.Lines = lines
	return &rule, nil
}

// ListRulesByTenant retrieves the tenant's rules without line templates,
// optionally narrowed to one model code.
func (r *PgxPostingRuleRepository) ListRulesByTenant(ctx context.Context, tenantID string, modelCode *string) ([]domain.PostingRule, error) {
	query := `
		SELECT rule_id, tenant_id, model_code, bank_account_id, currency_code, partner_type, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM posting_rules
		WHERE tenant_id = $1
	`
	args := []interface{}{tenantID}
	if modelCode != nil && *modelCode != "" {
		query += ` AND model_code = $2`
		args = append(args, *modelCode)
	}
	query += ` ORDER BY model_code, rule_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	modelRules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PostingRule, error) {
		var m models.PostingRule
		err := row.Scan(
			&m.RuleID,
			&m.TenantID,
			&m.ModelCode,
			&m.BankAccountID,
			&m.CurrencyCode,
			&m.PartnerType,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan rule rows for tenant %s: %w", tenantID, err)
	}

	rules := make([]domain.PostingRule, len(modelRules))
	for i, m := range modelRules {
		rules[i] = mapping.ToDomainPostingRule(m)
	}
	return rules, nil
}

// SavePostingRule persists a rule and its line templates in one database transaction.
func (r *PgxPostingRuleRepository) SavePostingRule(ctx context.Context, rule domain.PostingRule) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelRule := mapping.ToModelPostingRule(rule)
	ruleQuery := `
		INSERT INTO posting_rules (
			rule_id, tenant_id, model_code, bank_account_id, currency_code, partner_type, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, ruleQuery,
		modelRule.RuleID,
		modelRule.TenantID,
		modelRule.ModelCode,
		modelRule.BankAccountID,
		modelRule.CurrencyCode,
		modelRule.PartnerType,
		modelRule.IsActive,
		modelRule.CreatedAt,
		modelRule.CreatedBy,
		modelRule.LastUpdatedAt,
		modelRule.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: rule with ID %s already exists", apperrors.ErrDuplicate, modelRule.RuleID)
		}
		return apperrors.NewAppError(500, "failed to insert posting rule "+modelRule.RuleID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO posting_rule_lines (
			line_id, rule_id, side, account_source, account_id, dynamic_account_key,
			amount_source, amount_key, amount_factor, is_tax_line, sort_order, description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, line := range rule.Lines {
		modelLine := mapping.ToModelPostingRuleLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.RuleID,
			modelLine.Side,
			modelLine.AccountSource,
			modelLine.AccountID,
			modelLine.DynamicAccountKey,
			modelLine.AmountSource,
			modelLine.AmountKey,
			modelLine.AmountFactor,
			modelLine.IsTaxLine,
			modelLine.SortOrder,
			modelLine.Description,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert line templates for rule "+modelRule.RuleID, err)
	}

	return r.Commit(ctx, tx)
}

// DeactivateRule soft-deletes a rule so it stops matching new events.
func (r *PgxPostingRuleRepository) DeactivateRule(ctx context.Context, tenantID, ruleID string, updatedBy string) error {
	query := `
		UPDATE posting_rules
		SET is_active = FALSE,
		    last_updated_at = NOW(),
		    last_updated_by = $3
		WHERE tenant_id = $1 AND rule_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, tenantID, ruleID, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate rule "+ruleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("rule " + ruleID + " not found")
	}
	return nil
}

func (r *PgxPostingRuleRepository) findRuleLines(ctx context.Context, ruleID string) ([]domain.PostingLineTemplate, error) {
	query := `
		SELECT line_id, rule_id, side, account_source, account_id, dynamic_account_key,
		       amount_source, amount_key, amount_factor, is_tax_line, sort_order, description
		FROM posting_rule_lines
		WHERE rule_id = $1
		ORDER BY sort_order;
	`
	rows, err := r.Pool.Query(ctx, query, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line templates for rule %s: %w", ruleID, err)
	}
	defer rows.Close()

	modelLines := []models.PostingRuleLine{}
	for rows.Next() {
		var m models.PostingRuleLine
		if err := rows.Scan(
			&m.LineID,
			&m.RuleID,
			&m.Side,
			&m.AccountSource,
			&m.AccountID,
			&m.DynamicAccountKey,
			&m.AmountSource,
			&m.AmountKey,
			&m.AmountFactor,
			&m.IsTaxLine,
			&m.SortOrder,
			&m.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line template row for rule %s: %w", ruleID, err)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line template rows for rule %s: %w", ruleID, err)
	}

	return mapping.ToDomainPostingRuleLineSlice(modelLines), nil
}
