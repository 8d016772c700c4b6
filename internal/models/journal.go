package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry row.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	EntryID          string          `db:"entry_id"`
	TenantID         string          `db:"tenant_id"`
	LegalEntityID    string          `db:"legal_entity_id"`
	EntryNumber      int64           `db:"entry_number"`
	EntryDate        time.Time       `db:"entry_date"`
	Description      string          `db:"description"`
	Reference        string          `db:"reference"`
	ModelCode        string          `db:"model_code"`
	SourceEventID    string          `db:"source_event_id"`
	CurrencyCode     string          `db:"currency_code"`
	Status           EntryStatus     `db:"status"`
	RuleID           *string         `db:"rule_id"`
	TotalDebit       decimal.Decimal `db:"total_debit"`
	TotalCredit      decimal.Decimal `db:"total_credit"`
	OriginalEntryID  *string         `db:"original_entry_id"`
	ReversingEntryID *string         `db:"reversing_entry_id"`
	AuditFields
}

// JournalLine is the journal_lines table row.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	IsTaxLine   bool            `db:"is_tax_line"`
	SortOrder   int             `db:"sort_order"`
}
