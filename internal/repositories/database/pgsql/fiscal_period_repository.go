package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finledger/posting_engine/internal/core/domain"
	portsrepo "github.com/finledger/posting_engine/internal/core/ports/repositories"
	"github.com/finledger/posting_engine/internal/models"
	"github.com/finledger/posting_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFiscalPeriodRepository struct {
	BaseRepository
}

// newPgxFiscalPeriodRepository creates a new repository for fiscal period data.
func newPgxFiscalPeriodRepository(pool *pgxpool.Pool) portsrepo.FiscalPeriodReader {
	return &PgxFiscalPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FiscalPeriodReader = (*PgxFiscalPeriodRepository)(nil)

// FindPeriodFor returns the fiscal period covering the given date. A
// missing row returns (nil, nil): an unconfigured period is open.
func (r *PgxFiscalPeriodRepository) FindPeriodFor(ctx context.Context, tenantID, legalEntityID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT period_id, tenant_id, legal_entity_id, year, month, is_locked,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM fiscal_periods
		WHERE tenant_id = $1 AND legal_entity_id = $2 AND year = $3 AND month = $4;
	`
	var m models.FiscalPeriod
	err := r.Pool.QueryRow(ctx, query, tenantID, legalEntityID, date.Year(), int(date.Month())).Scan(
		&m.PeriodID,
		&m.TenantID,
		&m.LegalEntityID,
		&m.Year,
		&m.Month,
		&m.IsLocked,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find fiscal period %04d-%02d for tenant %s: %w", date.Year(), int(date.Month()), tenantID, err)
	}

	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}
