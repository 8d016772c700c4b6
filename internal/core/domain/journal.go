package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry is a balanced double-entry accounting record. Once
// POSTED it is immutable; the only way to undo it is a correcting
// (reversing) entry linked via OriginalEntryID / ReversingEntryID.
type JournalEntry struct {
	EntryID       string      `json:"entryID"`
	TenantID      string      `json:"tenantID"`
	LegalEntityID string      `json:"legalEntityID"`
	EntryNumber   int64       `json:"entryNumber"` // sequential per tenant + legal entity
	EntryDate     time.Time   `json:"entryDate"`
	Description   string      `json:"description"`
	Reference     string      `json:"reference"`
	ModelCode     string      `json:"modelCode"`     // business-event type that produced the entry
	SourceEventID string      `json:"sourceEventID"` // idempotency key derived from the business event
	CurrencyCode  string      `json:"currencyCode"`
	Status        EntryStatus `json:"status"`
	RuleID        *string     `json:"ruleID,omitempty"` // nil when the fallback lines were used

	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`

	OriginalEntryID  *string `json:"originalEntryID,omitempty"`
	ReversingEntryID *string `json:"reversingEntryID,omitempty"`

	Lines []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single debit-or-credit line of a journal entry.
// Exactly one of Debit and Credit is non-zero.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	IsTaxLine   bool            `json:"isTaxLine"`
	SortOrder   int             `json:"sortOrder"`
}
