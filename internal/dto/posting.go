package dto

import (
	"time"

	"github.com/finledger/posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ContextValues is the wire form of the DynamicContext: named amounts
// and named account references, built per business event by the caller.
type ContextValues struct {
	Amounts  map[string]decimal.Decimal `json:"amounts"`
	Accounts map[string]string          `json:"accounts"`
}

// ToDomain builds a DynamicContext from the wire values.
func (c ContextValues) ToDomain() domain.DynamicContext {
	ctx := domain.NewDynamicContext()
	for k, v := range c.Amounts {
		ctx = ctx.WithAmount(k, v)
	}
	for k, v := range c.Accounts {
		ctx = ctx.WithAccount(k, v)
	}
	return ctx
}

// FallbackLineRequest is one caller-supplied hardcoded journal line,
// used when no posting rule matches or a rule fails to expand.
type FallbackLineRequest struct {
	AccountID   string           `json:"accountID" binding:"required"`
	Side        domain.EntrySide `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount      decimal.Decimal  `json:"amount" binding:"required,decimalgtzero"`
	Description string           `json:"description"`
	IsTaxLine   bool             `json:"isTaxLine"`
}

// PostRequest is the caller contract of the posting orchestration layer.
type PostRequest struct {
	LegalEntityID string          `json:"legalEntityID" binding:"required"`
	ModelCode     string          `json:"modelCode" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,decimalgtzero"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3"`
	EntryDate     time.Time       `json:"entryDate" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Reference     string          `json:"reference"`
	SourceEventID string          `json:"sourceEventID" binding:"required"`

	// Optional scope attributes for rule matching.
	BankAccountID *string `json:"bankAccountID,omitempty"`
	PartnerType   *string `json:"partnerType,omitempty"`

	Context       ContextValues         `json:"context"`
	FallbackLines []FallbackLineRequest `json:"fallbackLines" binding:"required,min=2,dive"`
}

// PostResponse returns the persisted entry's identity.
type PostResponse struct {
	EntryID     string          `json:"entryID"`
	EntryNumber int64           `json:"entryNumber"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	RuleID      *string         `json:"ruleID,omitempty"`
}

// ToPostResponse converts a persisted entry to the posting response.
func ToPostResponse(e *domain.JournalEntry) PostResponse {
	return PostResponse{
		EntryID:     e.EntryID,
		EntryNumber: e.EntryNumber,
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
		RuleID:      e.RuleID,
	}
}
