package repositories

import (
	"context"

	"github.com/finledger/posting_engine/internal/core/domain"
)

// CurrencyReader defines read operations for currencies. The engine
// needs only the minor-unit precision for rounding.
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a currency, or an error matching
	// apperrors.ErrNotFound when it is not registered.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
}
