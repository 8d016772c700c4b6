package domain_test

import (
	"testing"

	"github.com/finledger/posting_engine/internal/apperrors"
	"github.com/finledger/posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamicContext_ResolveAmount(t *testing.T) {
	ctx := domain.NewDynamicContext().
		WithAmount(domain.ContextKeyTaxAmount, decimal.NewFromInt(10)).
		WithAmount("commission", decimal.RequireFromString("2.50"))

	amount, err := ctx.ResolveAmount(domain.ContextKeyTaxAmount)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(10)))

	amount, err = ctx.ResolveAmount("commission")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("2.50")))
}

func TestDynamicContext_MissingAmountIsHardError(t *testing.T) {
	ctx := domain.NewDynamicContext()

	_, err := ctx.ResolveAmount(domain.ContextKeyFeeAmount)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownContextKey)
}

func TestDynamicContext_ResolveAccount(t *testing.T) {
	ctx := domain.NewDynamicContext().WithAccount("partner_account", "acct-99")

	accountID, err := ctx.ResolveAccount("partner_account")
	require.NoError(t, err)
	assert.Equal(t, "acct-99", accountID)

	_, err = ctx.ResolveAccount("unknown")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownContextKey)
}
