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
	ErrCodeInvalidDate          ErrorCode = 103
	ErrCodeInvalidSourceType    ErrorCode = 104

	// Data/Resource errors (200-299)
	ErrCodeDataUnavailable ErrorCode = 200
	ErrCodeDataParseFailed ErrorCode = 201
	ErrCodeQueryFailed     ErrorCode = 202
	ErrCodeNoDataFound     ErrorCode = 203

	// Report errors (300-399)
	ErrCodeReportBuildFailed ErrorCode = 300
	ErrCodeReportWriteFailed ErrorCode = 301

	// Dashboard errors (400-499)
	ErrCodeServerStartFailed ErrorCode = 400
	ErrCodeRenderFailed      ErrorCode = 401
)
