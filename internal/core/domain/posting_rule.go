package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EntrySide indicates whether a line posts to the debit or the credit column.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// AccountSource determines how a line template resolves its ledger account.
type AccountSource string

const (
	// AccountFixed posts to the account id stored on the template.
	AccountFixed AccountSource = "FIXED"
	// AccountDynamic posts to an account resolved at expansion time from
	// the posting context, using the template's DynamicAccountKey.
	AccountDynamic AccountSource = "DYNAMIC"
)

// AmountSource determines how a line template resolves its base amount.
type AmountSource string

const (
	// AmountFull uses the full transaction amount.
	AmountFull AmountSource = "FULL"
	// AmountTax, AmountNet and AmountFee resolve the well-known context
	// keys "tax_amount", "net_amount" and "fee_amount" respectively.
	AmountTax AmountSource = "TAX"
	AmountNet AmountSource = "NET"
	AmountFee AmountSource = "FEE"
	// AmountCustom resolves the template's AmountKey from the context.
	AmountCustom AmountSource = "CUSTOM"
)

// Well-known context keys used by the named amount sources.
const (
	ContextKeyTaxAmount = "tax_amount"
	ContextKeyNetAmount = "net_amount"
	ContextKeyFeeAmount = "fee_amount"
)

// PostingRule maps a business-event type to a set of journal line
// templates for one tenant. Optional scope fields narrow the rule to a
// specific bank account, currency or partner type; nil means wildcard.
type PostingRule struct {
	RuleID        string                `json:"ruleID"`
	TenantID      string                `json:"tenantID"`
	ModelCode     string                `json:"modelCode"` // e.g. "invoice.paid", "payroll.net_pay"
	BankAccountID *string               `json:"bankAccountID,omitempty"`
	CurrencyCode  *string               `json:"currencyCode,omitempty"`
	PartnerType   *string               `json:"partnerType,omitempty"`
	IsActive      bool                  `json:"isActive"`
	Lines         []PostingLineTemplate `json:"lines"`
	AuditFields
}

// PostingLineTemplate describes one journal line of a posting rule.
type PostingLineTemplate struct {
	LineID            string          `json:"lineID"`
	RuleID            string          `json:"ruleID"`
	Side              EntrySide       `json:"side"`
	AccountSource     AccountSource   `json:"accountSource"`
	AccountID         *string         `json:"accountID,omitempty"`         // required when AccountSource == FIXED
	DynamicAccountKey *string         `json:"dynamicAccountKey,omitempty"` // required when AccountSource == DYNAMIC
	AmountSource      AmountSource    `json:"amountSource"`
	AmountKey         *string         `json:"amountKey,omitempty"` // required when AmountSource == CUSTOM
	AmountFactor      decimal.Decimal `json:"amountFactor"`        // multiplier, defaults to 1
	IsTaxLine         bool            `json:"isTaxLine"`
	SortOrder         int             `json:"sortOrder"`
	Description       string          `json:"description"`
}

// Validate checks the structural invariants of a line template.
func (t PostingLineTemplate) Validate() error {
	switch t.Side {
	case Debit, Credit:
	default:
		return fmt.Errorf("line %d: invalid side %q", t.SortOrder, t.Side)
	}

	switch t.AccountSource {
	case AccountFixed:
		if t.AccountID == nil || *t.AccountID == "" {
			return fmt.Errorf("line %d: FIXED account source requires an account id", t.SortOrder)
		}
	case AccountDynamic:
		if t.DynamicAccountKey == nil || *t.DynamicAccountKey == "" {
			return fmt.Errorf("line %d: DYNAMIC account source requires a lookup key", t.SortOrder)
		}
	default:
		return fmt.Errorf("line %d: invalid account source %q", t.SortOrder, t.AccountSource)
	}

	switch t.AmountSource {
	case AmountFull, AmountTax, AmountNet, AmountFee:
	case AmountCustom:
		if t.AmountKey == nil || *t.AmountKey == "" {
			return fmt.Errorf("line %d: CUSTOM amount source requires an amount key", t.SortOrder)
		}
	default:
		return fmt.Errorf("line %d: invalid amount source %q", t.SortOrder, t.AmountSource)
	}

	if t.AmountFactor.IsZero() {
		return fmt.Errorf("line %d: amount factor must be non-zero", t.SortOrder)
	}
	return nil
}

// Validate checks the structural invariants of a rule and all its lines.
func (r PostingRule) Validate() error {
	if r.TenantID == "" {
		return fmt.Errorf("rule %s: tenant id is required", r.RuleID)
	}
	if r.ModelCode == "" {
		return fmt.Errorf("rule %s: model code is required", r.RuleID)
	}
	if len(r.Lines) < 2 {
		return fmt.Errorf("rule %s: at least two line templates are required", r.RuleID)
	}
	for _, line := range r.Lines {
		if err := line.Validate(); err != nil {
			return fmt.Errorf("rule %s: %w", r.RuleID, err)
		}
	}
	return nil
}

// RuleScope carries the optional event attributes a rule can be scoped by.
type RuleScope struct {
	BankAccountID *string
	CurrencyCode  *string
	PartnerType   *string
}

// MatchScore returns how specific this rule is for the given scope and
// whether it matches at all. A nil scope field on the rule is a wildcard
// and matches anything; a non-nil field must equal the event's value and
// raises the score by one. A rule scoped to a value the event does not
// carry does not match.
func (r PostingRule) MatchScore(scope RuleScope) (int, bool) {
	score := 0
	match := func(ruleVal, eventVal *string) bool {
		if ruleVal == nil {
			return true // wildcard
		}
		if eventVal == nil || *ruleVal != *eventVal {
			return false
		}
		score++
		return true
	}
	if !match(r.BankAccountID, scope.BankAccountID) {
		return 0, false
	}
	if !match(r.CurrencyCode, scope.CurrencyCode) {
		return 0, false
	}
	if !match(r.PartnerType, scope.PartnerType) {
		return 0, false
	}
	return score, true
}

// BestMatchingRule picks the most specific rule for the given scope.
// Among rules with equal specificity the lowest rule id wins, so the
// outcome never depends on slice or map iteration order.
func BestMatchingRule(rules []PostingRule, scope RuleScope) *PostingRule {
	var best *PostingRule
	bestScore := -1
	for i := range rules {
		score, ok := rules[i].MatchScore(scope)
		if !ok {
			continue
		}
		if score > bestScore || (score == bestScore && best != nil && rules[i].RuleID < best.RuleID) {
			best = &rules[i]
			bestScore = score
		}
	}
	return best
}
