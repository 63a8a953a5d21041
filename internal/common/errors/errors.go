package errors

import (
	"fmt"
	"net/http"
)

// Error codes
const (
	// 4xx Client Errors
	CodeInvalidInput      = "INVALID_INPUT"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInvalidTypedData  = "INVALID_TYPED_DATA"
	CodeInvalidSignature  = "INVALID_SIGNATURE"
	CodeRecoveryFailed    = "SIGNATURE_RECOVERY_FAILED"
	CodeChainMismatch     = "CHAIN_MISMATCH"
	CodeReplayedSignature = "REPLAYED_SIGNATURE"

	// 5xx Server Errors
	CodeInternal         = "INTERNAL_ERROR"
	CodeDBError          = "DB_ERROR"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
)

// AppError represents a structured application error
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	StatusCode int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// Error constructors

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func InvalidTypedData(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidTypedData,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func InvalidSignature(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidSignature,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func RecoveryFailed(err error) *AppError {
	return &AppError{
		Code:       CodeRecoveryFailed,
		Message:    "Signer could not be recovered from the signature",
		StatusCode: http.StatusUnprocessableEntity,
		Err:        err,
	}
}

func ChainMismatch(message string) *AppError {
	return &AppError{
		Code:       CodeChainMismatch,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func ReplayedSignature() *AppError {
	return &AppError{
		Code:       CodeReplayedSignature,
		Message:    "Signature has already been used",
		StatusCode: http.StatusConflict,
	}
}

func Internal(message string) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

func DBError(err error) *AppError {
	return &AppError{
		Code:       CodeDBError,
		Message:    "Database error occurred",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

func StoreUnavailable(err error) *AppError {
	return &AppError{
		Code:       CodeStoreUnavailable,
		Message:    "Replay protection store is unavailable",
		StatusCode: http.StatusServiceUnavailable,
		Err:        err,
	}
}
