package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/finledger/posting_engine/internal/apperrors"
	"github.com/finledger/posting_engine/internal/core/domain"
	portsrepo "github.com/finledger/posting_engine/internal/core/ports/repositories"
	"github.com/finledger/posting_engine/internal/models"
	"github.com/finledger/posting_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for audit trail data.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// SaveAuditRecord appends one audit row with the details as JSONB.
func (r *PgxAuditRepository) SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	details, err := json.Marshal(record.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details for %s: %w", record.AuditID, err)
	}

	query := `
		INSERT INTO audit_log (audit_id, tenant_id, actor_id, action, entity_type, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.Pool.Exec(ctx, query,
		record.AuditID,
		record.TenantID,
		record.ActorID,
		string(record.Action),
		record.EntityType,
		record.EntityID,
		details,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit record %s: %w", record.AuditID, err)
	}
	return nil
}

// ListAuditRecords retrieves a token-paginated audit trail for a
// tenant, newest first. The cursor is created_at alone; audit rows are
// append-only so the timestamp is a stable sort key.
func (r *PgxAuditRepository) ListAuditRecords(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.AuditRecord, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `
		SELECT audit_id, tenant_id, actor_id, action, entity_type, entity_id, details, created_at
		FROM audit_log
		WHERE tenant_id = $1
	`
	args := []interface{}{tenantID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND created_at < $2`
		args = append(args, lastCreatedAt)
	}

	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit records for tenant "+tenantID, err)
	}
	defer rows.Close()

	modelRecords := make([]models.AuditRecord, 0, fetchLimit)
	for rows.Next() {
		var m models.AuditRecord
		if err := rows.Scan(
			&m.AuditID,
			&m.TenantID,
			&m.ActorID,
			&m.Action,
			&m.EntityType,
			&m.EntityID,
			&m.Details,
			&m.CreatedAt,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan audit row for tenant "+tenantID, err)
		}
		modelRecords = append(modelRecords, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating audit rows for tenant "+tenantID, err)
	}

	var nextTokenVal *string
	results := modelRecords
	if len(modelRecords) > limit {
		token := pagination.EncodeDateBasedToken(modelRecords[limit-1].CreatedAt)
		nextTokenVal = &token
		results = modelRecords[:limit]
	}

	records := make([]domain.AuditRecord, len(results))
	for i, m := range results {
		var details domain.AuditDetails
		if len(m.Details) > 0 {
			if err := json.Unmarshal(m.Details, &details); err != nil {
				return nil, nil, fmt.Errorf("failed to unmarshal details for audit record %s: %w", m.AuditID, err)
			}
		}
		records[i] = domain.AuditRecord{
			AuditID:    m.AuditID,
			TenantID:   m.TenantID,
			ActorID:    m.ActorID,
			Action:     domain.AuditAction(m.Action),
			EntityType: m.EntityType,
			EntityID:   m.EntityID,
			Details:    details,
			CreatedAt:  m.CreatedAt,
		}
	}
	return records, nextTokenVal, nil
}
