package domain

import (
	"fmt"

	"github.com/finledger/posting_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DynamicContext supplies the named values a posting rule line can
// reference at expansion time: amounts (tax, net, fee, custom splits)
// and dynamic account lookups. It is built by the business-event
// handler for a single posting attempt and never persisted.
type DynamicContext struct {
	amounts  map[string]decimal.Decimal
	accounts map[string]string
}

// NewDynamicContext returns an empty context.
func NewDynamicContext() DynamicContext {
	return DynamicContext{
		amounts:  make(map[string]decimal.Decimal),
		accounts: make(map[string]string),
	}
}

// WithAmount registers a named amount and returns the context for chaining.
func (c DynamicContext) WithAmount(key string, value decimal.Decimal) DynamicContext {
	c.amounts[key] = value
	return c
}

// WithAccount registers a named account id and returns the context for chaining.
func (c DynamicContext) WithAccount(key string, accountID string) DynamicContext {
	c.accounts[key] = accountID
	return c
}

// ResolveAmount returns the amount registered under key. A missing key
// is a hard error, never a silent zero: posting a wrong amount is a
// correctness violation.
func (c DynamicContext) ResolveAmount(key string) (decimal.Decimal, error) {
	v, ok := c.amounts[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: amount %q", apperrors.ErrUnknownContextKey, key)
	}
	return v, nil
}

// ResolveAccount returns the account id registered under key, failing
// on a missing key for the same reason as ResolveAmount.
func (c DynamicContext) ResolveAccount(key string) (string, error) {
	v, ok := c.accounts[key]
	if !ok {
		return "", fmt.Errorf("%w: account %q", apperrors.ErrUnknownContextKey, key)
	}
	return v, nil
}
