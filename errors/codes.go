package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Authentication errors
const (
	// ErrCodeInvalidToken indicates the credential is missing, tampered or unverifiable.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeTokenExpired indicates the token failed verification during rotation.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeUserNotFound indicates the token is valid but its owner no longer exists.
	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	// ErrCodeUnauthorized indicates the request is unauthorized.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates a call argument is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required argument is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Internal errors
const (
	// ErrCodeConfiguration indicates the plugin was constructed with invalid configuration.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeOperationFailed indicates a storage mutation did not complete.
	ErrCodeOperationFailed ErrorCode = "OPERATION_FAILED"
	// ErrCodeDatabaseError indicates a database error.
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeDatabaseError:   true,
	ErrCodeOperationFailed: false,
	ErrCodeInternal:        false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
