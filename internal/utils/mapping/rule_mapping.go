package mapping

import (
	"github.com/finledger/posting_engine/internal/core/domain"
	"github.com/finledger/posting_engine/internal/models"
)

// ToModelPostingRule converts a domain PostingRule to its table row.
// Lines are mapped separately via ToModelPostingRuleLine.
func ToModelPostingRule(d domain.PostingRule) models.PostingRule {
	return models.PostingRule{
		RuleID:        d.RuleID,
		TenantID:      d.TenantID,
		ModelCode:     d.ModelCode,
		BankAccountID: d.BankAccountID,
		CurrencyCode:  d.CurrencyCode,
		PartnerType:   d.PartnerType,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPostingRule converts a rule row to a domain PostingRule without lines.
func ToDomainPostingRule(m models.PostingRule) domain.PostingRule {
	return domain.PostingRule{
		RuleID:        m.RuleID,
		TenantID:      m.TenantID,
		ModelCode:     m.ModelCode,
		BankAccountID: m.BankAccountID,
		CurrencyCode:  m.CurrencyCode,
		PartnerType:   m.PartnerType,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPostingRuleLine converts a domain line template to its table row.
func ToModelPostingRuleLine(d domain.PostingLineTemplate) models.PostingRuleLine {
	return models.PostingRuleLine{
		LineID:            d.LineID,
		RuleID:            d.RuleID,
		Side:              string(d.Side),
		AccountSource:     string(d.AccountSource),
		AccountID:         d.AccountID,
		DynamicAccountKey: d.DynamicAccountKey,
		AmountSource:      string(d.AmountSource),
		AmountKey:         d.AmountKey,
		AmountFactor:      d.AmountFactor,
		IsTaxLine:         d.IsTaxLine,
		SortOrder:         d.SortOrder,
		Description:       d.Description,
	}
}

// ToDomainPostingRuleLine converts a line row to a domain line template.
func ToDomainPostingRuleLine(m models.PostingRuleLine) domain.PostingLineTemplate {
	return domain.PostingLineTemplate{
		LineID:            m.LineID,
		RuleID:            m.RuleID,
		Side:              domain.EntrySide(m.Side),
		AccountSource:     domain.AccountSource(m.AccountSource),
		AccountID:         m.AccountID,
		DynamicAccountKey: m.DynamicAccountKey,
		AmountSource:      domain.AmountSource(m.AmountSource),
		AmountKey:         m.AmountKey,
		AmountFactor:      m.AmountFactor,
		IsTaxLine:         m.IsTaxLine,
		SortOrder:         m.SortOrder,
		Description:       m.Description,
	}
}

// ToDomainPostingRuleLineSlice converts a slice of line rows.
func ToDomainPostingRuleLineSlice(ms []models.PostingRuleLine) []domain.PostingLineTemplate {
	ds := make([]domain.PostingLineTemplate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPostingRuleLine(m)
	}
	return ds
}
