package models

import "github.com/shopspring/decimal"

// PostingRule is the posting_rules table row.
type PostingRule struct {
	RuleID        string  `db:"rule_id"`
	TenantID      string  `db:"tenant_id"`
	ModelCode     string  `db:"model_code"`
	BankAccountID *string `db:"bank_account_id"` // nullable scope columns; NULL = wildcard
	CurrencyCode  *string `db:"currency_code"`
	PartnerType   *string `db:"partner_type"`
	IsActive      bool    `db:"is_active"`
	AuditFields
}

// PostingRuleLine is the posting_rule_lines table row.
type PostingRuleLine struct {
	LineID            string          `db:"line_id"`
	RuleID            string          `db:"rule_id"`
	Side              string          `db:"side"`
	AccountSource     string          `db:"account_source"`
	AccountID         *string         `db:"account_id"`
	DynamicAccountKey *string         `db:"dynamic_account_key"`
	AmountSource      string          `db:"amount_source"`
	AmountKey         *string         `db:"amount_key"`
	AmountFactor      decimal.Decimal `db:"amount_factor"`
	IsTaxLine         bool            `db:"is_tax_line"`
	SortOrder         int             `db:"sort_order"`
	Description       string          `db:"description"`
}
