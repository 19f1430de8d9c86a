package errors

import "fmt"

// ErrorCode identifies an application error category
type ErrorCode string

const (
	ErrInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrCreateFailed       ErrorCode = "CREATE_FAILED"
	ErrGetFailed          ErrorCode = "GET_FAILED"
	ErrUpdateFailed       ErrorCode = "UPDATE_FAILED"
	ErrDeleteFailed       ErrorCode = "DELETE_FAILED"
	ErrCorruptRecord      ErrorCode = "CORRUPT_RECORD"

	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"
)

// FieldError reports a validation failure on a single input field so form UIs
// can highlight exactly what is wrong.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the application error type carried between service and
// controller layers.
type AppError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Err     error        `json:"-"`
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

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError builds an ErrInvalidInput error carrying per-field details.
func NewValidationError(message string, fields []FieldError) *AppError {
	return &AppError{Code: ErrInvalidInput, Message: message, Fields: fields}
}
