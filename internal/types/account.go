package types

// AccountStatus is the server-assigned lifecycle status of a trading account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "Active"
	AccountStatusSuspended AccountStatus = "Suspended"
)

// TradingAccount represents a named sub-portfolio under a user, identified by
// a server-issued account number. Accounts are created server-side; clients
// only ever replace the whole list on reload.
type TradingAccount struct {
	// ID is the server-issued account identifier.
	ID string `json:"id" yaml:"id"`
	// DisplayName is the user-chosen account name.
	DisplayName string `json:"displayName" yaml:"display_name"`
	// AccountNumber is the server-issued account number shown to the user.
	AccountNumber string `json:"accountNumber" yaml:"account_number"`
	// Status is the account lifecycle status.
	Status AccountStatus `json:"status" yaml:"status"`
}

// Wallet is a per-currency balance container scoped to exactly one trading
// account. All balance fields are computed server-side.
type Wallet struct {
	ID               string  `json:"id" yaml:"id"`
	Currency         string  `json:"currency" yaml:"currency"`
	AvailableBalance float64 `json:"availableBalance" yaml:"available_balance"`
	TotalBalance     float64 `json:"totalBalance" yaml:"total_balance"`
	LockedBalance    float64 `json:"lockedBalance" yaml:"locked_balance"`
	// USDEquivalent is the wallet's total balance converted to USD.
	USDEquivalent float64 `json:"usdEquivalent" yaml:"usd_equivalent"`
}
