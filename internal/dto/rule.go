package dto

import (
	"github.com/finledger/posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRuleLineRequest is one line template of a new posting rule.
type CreateRuleLineRequest struct {
	Side              domain.EntrySide     `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	AccountSource     domain.AccountSource `json:"accountSource" binding:"required,oneof=FIXED DYNAMIC"`
	AccountID         *string              `json:"accountID,omitempty"`
	DynamicAccountKey *string              `json:"dynamicAccountKey,omitempty"`
	AmountSource      domain.AmountSource  `json:"amountSource" binding:"required,oneof=FULL TAX NET FEE CUSTOM"`
	AmountKey         *string              `json:"amountKey,omitempty"`
	AmountFactor      *decimal.Decimal     `json:"amountFactor,omitempty"` // defaults to 1
	IsTaxLine         bool                 `json:"isTaxLine"`
	SortOrder         int                  `json:"sortOrder"`
	Description       string               `json:"description"`
}

// CreateRuleRequest creates a tenant posting rule for a model code.
type CreateRuleRequest struct {
	ModelCode     string                  `json:"modelCode" binding:"required"`
	BankAccountID *string                 `json:"bankAccountID,omitempty"`
	CurrencyCode  *string                 `json:"currencyCode,omitempty"`
	PartnerType   *string                 `json:"partnerType,omitempty"`
	Lines         []CreateRuleLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// RuleLineResponse is the read form of a line template.
type RuleLineResponse struct {
	LineID            string          `json:"lineID"`
	Side              string          `json:"side"`
	AccountSource     string          `json:"accountSource"`
	AccountID         *string         `json:"accountID,omitempty"`
	DynamicAccountKey *string         `json:"dynamicAccountKey,omitempty"`
	AmountSource      string          `json:"amountSource"`
	AmountKey         *string         `json:"amountKey,omitempty"`
	AmountFactor      decimal.Decimal `json:"amountFactor"`
	IsTaxLine         bool            `json:"isTaxLine"`
	SortOrder         int             `json:"sortOrder"`
	Description       string          `json:"description"`
}

// RuleResponse is the read form of a posting rule.
type RuleResponse struct {
	RuleID        string             `json:"ruleID"`
	ModelCode     string             `json:"modelCode"`
	BankAccountID *string            `json:"bankAccountID,omitempty"`
	CurrencyCode  *string            `json:"currencyCode,omitempty"`
	PartnerType   *string            `json:"partnerType,omitempty"`
	IsActive      bool               `json:"isActive"`
	Lines         []RuleLineResponse `json:"lines,omitempty"`
}

// ListRulesResponse wraps a tenant's rules.
type ListRulesResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// ToRuleResponse converts a domain rule to its read form.
func ToRuleResponse(r *domain.PostingRule) RuleResponse {
	resp := RuleResponse{
		RuleID:        r.RuleID,
		ModelCode:     r.ModelCode,
		BankAccountID: r.BankAccountID,
		CurrencyCode:  r.CurrencyCode,
		PartnerType:   r.PartnerType,
		IsActive:      r.IsActive,
	}
	for _, l := range r.Lines {
		resp.Lines = append(resp.Lines, RuleLineResponse{
			LineID:            l.LineID,
			Side:              string(l.Side),
			AccountSource:     string(l.AccountSource),
			AccountID:         l.AccountID,
			DynamicAccountKey: l.DynamicAccountKey,
			AmountSource:      string(l.AmountSource),
			AmountKey:         l.AmountKey,
			AmountFactor:      l.AmountFactor,
			IsTaxLine:         l.IsTaxLine,
			SortOrder:         l.SortOrder,
			Description:       l.Description,
		})
	}
	return resp
}
