package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int32  `json:"precision"`    // minor-unit digits, e.g. 2 for cents
	AuditFields
}

// DefaultCurrencyPrecision is used when a currency is not registered.
const DefaultCurrencyPrecision int32 = 2
