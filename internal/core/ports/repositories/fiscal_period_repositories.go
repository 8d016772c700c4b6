package repositories

import (
	"context"
	"time"

	"github.com/finledger/posting_engine/internal/core/domain"
)

// FiscalPeriodReader defines read operations for fiscal periods. The
// posting engine never writes periods; closing them belongs to an
// external period-close operation.
type FiscalPeriodReader interface {
	// FindPeriodFor returns the fiscal period covering the given date
	// for the tenant's legal entity, or (nil, nil) when no period
	// record exists (periods are opt-in locks).
	FindPeriodFor(ctx context.Context, tenantID, legalEntityID string, date time.Time) (*domain.FiscalPeriod, error)
}
