package types

// PriceRule maps a letter purpose onto an amount in minor currency units.
type PriceRule struct {
	// Match is compared case-insensitively, first as an exact value and then as a substring.
	Match  string `json:"match" mapstructure:"match"`
	Amount int64  `json:"amount" mapstructure:"amount"`
}
