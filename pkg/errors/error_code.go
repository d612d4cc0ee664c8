package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidOrder         ErrorCode = 100
	ErrCodeInvalidParameter     ErrorCode = 101
	ErrCodeInvalidConfiguration ErrorCode = 102
	ErrCodeUnknownTicker        ErrorCode = 103
	ErrCodeInvalidPeriod        ErrorCode = 104

	// Ledger errors (200-299)
	ErrCodeInsufficientFunds  ErrorCode = 200
	ErrCodeInsufficientShares ErrorCode = 201
	ErrCodeQueryFailed        ErrorCode = 202
	ErrCodeStoreUnavailable   ErrorCode = 203

	// Market data errors (300-399)
	ErrCodePriceUnavailable   ErrorCode = 300
	ErrCodeHistoryUnavailable ErrorCode = 301
	ErrCodeInvalidProvider    ErrorCode = 302

	// Wallet errors (400-499)
	ErrCodeInvalidTopUpIdentifier ErrorCode = 400
	ErrCodeInvalidTopUpAmount     ErrorCode = 401

	// Analytics errors (500-599)
	ErrCodeInsufficientData   ErrorCode = 500
	ErrCodeUndefinedIndicator ErrorCode = 501

	// Session errors (600-699)
	ErrCodeSessionNotFound ErrorCode = 600
)
