package mapping

import (
	"github.com/finledger/posting_engine/internal/core/domain"
	"github.com/finledger/posting_engine/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its table row.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		TenantID:         d.TenantID,
		LegalEntityID:    d.LegalEntityID,
		EntryNumber:      d.EntryNumber,
		EntryDate:        d.EntryDate,
		Description:      d.Description,
		Reference:        d.Reference,
		ModelCode:        d.ModelCode,
		SourceEventID:    d.SourceEventID,
		CurrencyCode:     d.CurrencyCode,
		Status:           models.EntryStatus(d.Status),
		RuleID:           d.RuleID,
		TotalDebit:       d.TotalDebit,
		TotalCredit:      d.TotalCredit,
		OriginalEntryID:  d.OriginalEntryID,
		ReversingEntryID: d.ReversingEntryID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts an entry row to a domain JournalEntry without lines.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		TenantID:         m.TenantID,
		LegalEntityID:    m.LegalEntityID,
		EntryNumber:      m.EntryNumber,
		EntryDate:        m.EntryDate,
		Description:      m.Description,
		Reference:        m.Reference,
		ModelCode:        m.ModelCode,
		SourceEventID:    m.SourceEventID,
		CurrencyCode:     m.CurrencyCode,
		Status:           domain.EntryStatus(m.Status),
		RuleID:           m.RuleID,
		TotalDebit:       m.TotalDebit,
		TotalCredit:      m.TotalCredit,
		OriginalEntryID:  m.OriginalEntryID,
		ReversingEntryID: m.ReversingEntryID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to its table row.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		IsTaxLine:   d.IsTaxLine,
		SortOrder:   d.SortOrder,
	}
}

// ToDomainJournalLine converts a line row to a domain JournalLine.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		IsTaxLine:   m.IsTaxLine,
		SortOrder:   m.SortOrder,
	}
}

// ToDomainJournalLineSlice converts a slice of line rows.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
