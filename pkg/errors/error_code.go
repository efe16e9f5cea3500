package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeMissingParameter     ErrorCode = 102
	ErrCodeInvalidAmount        ErrorCode = 103
	ErrCodeInvalidPageSize      ErrorCode = 104
	ErrCodeMissingWallet        ErrorCode = 105
	ErrCodeMissingDisplayName   ErrorCode = 106

	// Auth/session errors (200-299)
	ErrCodeLoginFailed        ErrorCode = 200
	ErrCodeRegistrationFailed ErrorCode = 201
	ErrCodeNotAuthenticated   ErrorCode = 202

	// API errors (300-399)
	ErrCodeAPITransport ErrorCode = 300
	ErrCodeAPIRejected  ErrorCode = 301
	ErrCodeAPIDecode    ErrorCode = 302

	// Account errors (400-499)
	ErrCodeAccountListFailed   ErrorCode = 400
	ErrCodeAccountCreateFailed ErrorCode = 401

	// Wallet errors (500-599)
	ErrCodeWalletListFailed ErrorCode = 500

	// Ticket errors (600-699)
	ErrCodeTicketListFailed   ErrorCode = 600
	ErrCodeTicketCreateFailed ErrorCode = 601
	ErrCodeUnknownTicketCode  ErrorCode = 602

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataParseFailed ErrorCode = 701

	// Reference data errors (800-899)
	ErrCodeCountryListFailed  ErrorCode = 800
	ErrCodeLanguageListFailed ErrorCode = 801
	ErrCodeGeoLookupFailed    ErrorCode = 802
)
