package dto

import (
	"time"

	"github.com/finledger/posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineResponse is the read form of one journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	IsTaxLine   bool            `json:"isTaxLine"`
	SortOrder   int             `json:"sortOrder"`
}

// JournalEntryResponse is the read form of a journal entry.
type JournalEntryResponse struct {
	EntryID          string                `json:"entryID"`
	LegalEntityID    string                `json:"legalEntityID"`
	EntryNumber      int64                 `json:"entryNumber"`
	EntryDate        time.Time             `json:"entryDate"`
	Description      string                `json:"description"`
	Reference        string                `json:"reference"`
	ModelCode        string                `json:"modelCode"`
	SourceEventID    string                `json:"sourceEventID"`
	CurrencyCode     string                `json:"currencyCode"`
	Status           string                `json:"status"`
	RuleID           *string               `json:"ruleID,omitempty"`
	TotalDebit       decimal.Decimal       `json:"totalDebit"`
	TotalCredit      decimal.Decimal       `json:"totalCredit"`
	OriginalEntryID  *string               `json:"originalEntryID,omitempty"`
	ReversingEntryID *string               `json:"reversingEntryID,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
	Lines            []JournalLineResponse `json:"lines,omitempty"`
}

// ListEntriesParams holds parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// AuditRecordResponse is the read form of one audit row.
type AuditRecordResponse struct {
	AuditID    string          `json:"auditID"`
	ActorID    string          `json:"actorID"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityID"`
	Amount     decimal.Decimal `json:"amount"`
	LineCount  int             `json:"lineCount"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ListAuditParams holds parameters for listing the audit trail.
type ListAuditParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListAuditResponse wraps a page of audit records.
type ListAuditResponse struct {
	Records   []AuditRecordResponse `json:"records"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain line to its read form.
func ToJournalLineResponse(l domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
		IsTaxLine:   l.IsTaxLine,
		SortOrder:   l.SortOrder,
	}
}

// ToJournalEntryResponse converts a domain entry (with any loaded lines).
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:          e.EntryID,
		LegalEntityID:    e.LegalEntityID,
		EntryNumber:      e.EntryNumber,
		EntryDate:        e.EntryDate,
		Description:      e.Description,
		Reference:        e.Reference,
		ModelCode:        e.ModelCode,
		SourceEventID:    e.SourceEventID,
		CurrencyCode:     e.CurrencyCode,
		Status:           string(e.Status),
		RuleID:           e.RuleID,
		TotalDebit:       e.TotalDebit,
		TotalCredit:      e.TotalCredit,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	for _, l := range e.Lines {
		resp.Lines = append(resp.Lines, ToJournalLineResponse(l))
	}
	return resp
}

// ToAuditRecordResponse converts a domain audit record to its read form.
func ToAuditRecordResponse(r domain.AuditRecord) AuditRecordResponse {
	return AuditRecordResponse{
		AuditID:    r.AuditID,
		ActorID:    r.ActorID,
		Action:     string(r.Action),
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Amount:     r.Details.Amount,
		LineCount:  r.Details.LineCount,
		CreatedAt:  r.CreatedAt,
	}
}
