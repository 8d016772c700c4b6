package accounting

import (
	"fmt"

	"github.com/finledger/posting_engine/internal/apperrors"
	"github.com/finledger/posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RoundMinorUnits rounds an amount to the currency's minor-unit
// precision using round-half-even (banker's rounding). Half-even avoids
// the systematic bias a plain half-up would accumulate across many
// small postings.
func RoundMinorUnits(amount decimal.Decimal, precision int32) decimal.Decimal {
	return amount.RoundBank(precision)
}

// SumLines returns the debit and credit totals of a set of journal lines.
func SumLines(lines []domain.JournalLine) (debits decimal.Decimal, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// ValidateLines checks the structural invariants of journal lines:
// at least two lines, every line has exactly one non-zero side, no
// negative amounts, and debits equal credits.
func ValidateLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	for _, line := range lines {
		if line.AccountID == "" {
			return fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, line.SortOrder)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, line.SortOrder)
		}
		debitSet := !line.Debit.IsZero()
		creditSet := !line.Credit.IsZero()
		if debitSet == creditSet {
			return fmt.Errorf("%w: line %d must have exactly one non-zero side", apperrors.ErrValidation, line.SortOrder)
		}
	}

	debits, credits := SumLines(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			apperrors.ErrUnbalancedEntry, debits.String(), credits.String())
	}
	return nil
}
