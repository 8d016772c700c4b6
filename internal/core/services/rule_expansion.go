package services

import (
	"fmt"
	"sort"

	"github.com/finledger/posting_engine/internal/apperrors"
	"github.com/finledger/posting_engine/internal/core/domain"
	"github.com/finledger/posting_engine/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpandRuleLines expands a rule's line templates into concrete journal
// lines for the given transaction amount and posting context.
//
// Per template, in ascending sort order: resolve the account (fixed or
// dynamic), resolve the base amount (full amount or a named context
// value), apply the amount factor, then round to the currency's
// minor-unit precision with banker's rounding. Rounding residuals are
// carried cumulatively across lines that split the same base amount on
// the same side, so a 1/3 + 1/3 + 1/3 split totals exactly what a
// single full line would. A negative result flips the line to the
// opposite side; a zero result drops the line. After expansion the
// lines must balance (total debits equal total credits); a mismatch
// fails with apperrors.ErrUnbalancedEntry rather than being silently
// adjusted.
func ExpandRuleLines(templates []domain.PostingLineTemplate, amount decimal.Decimal, dynCtx domain.DynamicContext, precision int32) ([]domain.JournalLine, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w: rule has no line templates", apperrors.ErrResolution)
	}

	ordered := make([]domain.PostingLineTemplate, len(templates))
	copy(ordered, templates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortOrder < ordered[j].SortOrder
	})

	lines := make([]domain.JournalLine, 0, len(ordered))
	residuals := make(map[string]*roundingGroup)
	for _, tmpl := range ordered {
		accountID, err := resolveAccount(tmpl, dynCtx)
		if err != nil {
			return nil, err
		}

		baseAmount, err := resolveBaseAmount(tmpl, amount, dynCtx)
		if err != nil {
			return nil, err
		}

		factor := tmpl.AmountFactor
		if factor.IsZero() {
			factor = decimal.NewFromInt(1)
		}

		// Cumulative rounding per (amount source, side): each line gets
		// the rounded running total minus what the group already
		// received, so split factors summing to 1 reproduce the whole.
		group := residuals[roundingGroupKey(tmpl)]
		if group == nil {
			group = &roundingGroup{}
			residuals[roundingGroupKey(tmpl)] = group
		}
		group.exact = group.exact.Add(baseAmount.Mul(factor))
		rounded := accounting.RoundMinorUnits(group.exact, precision)
		lineAmount := rounded.Sub(group.allocated)
		group.allocated = rounded

		side := tmpl.Side
		if lineAmount.IsNegative() {
			// A negative debit is a credit and vice versa.
			lineAmount = lineAmount.Neg()
			if side == domain.Debit {
				side = domain.Credit
			} else {
				side = domain.Debit
			}
		}
		if lineAmount.IsZero() {
			continue
		}

		line := domain.JournalLine{
			LineID:      uuid.NewString(),
			AccountID:   accountID,
			Description: tmpl.Description,
			IsTaxLine:   tmpl.IsTaxLine,
			SortOrder:   tmpl.SortOrder,
		}
		if side == domain.Debit {
			line.Debit = lineAmount
			line.Credit = decimal.Zero
		} else {
			line.Credit = lineAmount
			line.Debit = decimal.Zero
		}
		lines = append(lines, line)
	}

	debits, credits := accounting.SumLines(lines)
	if !debits.Equal(credits) {
		return nil, fmt.Errorf("%w: expanded rule debits %s != credits %s",
			apperrors.ErrUnbalancedEntry, debits.String(), credits.String())
	}

	return lines, nil
}

// roundingGroup tracks the exact running sum and the rounded amounts
// already handed out for one (amount source, side) bucket.
type roundingGroup struct {
	exact     decimal.Decimal
	allocated decimal.Decimal
}

func roundingGroupKey(tmpl domain.PostingLineTemplate) string {
	key := string(tmpl.AmountSource)
	if tmpl.AmountSource == domain.AmountCustom && tmpl.AmountKey != nil {
		key += ":" + *tmpl.AmountKey
	}
	return key + "|" + string(tmpl.Side)
}

func resolveAccount(tmpl domain.PostingLineTemplate, dynCtx domain.DynamicContext) (string, error) {
	switch tmpl.AccountSource {
	case domain.AccountFixed:
		if tmpl.AccountID == nil || *tmpl.AccountID == "" {
			return "", fmt.Errorf("%w: line %d has no fixed account id", apperrors.ErrResolution, tmpl.SortOrder)
		}
		return *tmpl.AccountID, nil
	case domain.AccountDynamic:
		if tmpl.DynamicAccountKey == nil || *tmpl.DynamicAccountKey == "" {
			return "", fmt.Errorf("%w: line %d has no dynamic account key", apperrors.ErrResolution, tmpl.SortOrder)
		}
		accountID, err := dynCtx.ResolveAccount(*tmpl.DynamicAccountKey)
		if err != nil {
			return "", fmt.Errorf("%w: line %d: %w", apperrors.ErrResolution, tmpl.SortOrder, err)
		}
		return accountID, nil
	default:
		return "", fmt.Errorf("%w: line %d has unknown account source %q", apperrors.ErrResolution, tmpl.SortOrder, tmpl.AccountSource)
	}
}

func resolveBaseAmount(tmpl domain.PostingLineTemplate, amount decimal.Decimal, dynCtx domain.DynamicContext) (decimal.Decimal, error) {
	var (
		base decimal.Decimal
		err  error
	)
	switch tmpl.AmountSource {
	case domain.AmountFull:
		base = amount
	case domain.AmountTax:
		base, err = dynCtx.ResolveAmount(domain.ContextKeyTaxAmount)
	case domain.AmountNet:
		base, err = dynCtx.ResolveAmount(domain.ContextKeyNetAmount)
	case domain.AmountFee:
		base, err = dynCtx.ResolveAmount(domain.ContextKeyFeeAmount)
	case domain.AmountCustom:
		if tmpl.AmountKey == nil || *tmpl.AmountKey == "" {
			return decimal.Zero, fmt.Errorf("%w: line %d has no custom amount key", apperrors.ErrResolution, tmpl.SortOrder)
		}
		base, err = dynCtx.ResolveAmount(*tmpl.AmountKey)
	default:
		return decimal.Zero, fmt.Errorf("%w: line %d has unknown amount source %q", apperrors.ErrResolution, tmpl.SortOrder, tmpl.AmountSource)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: line %d: %w", apperrors.ErrResolution, tmpl.SortOrder, err)
	}
	return base, nil
}
