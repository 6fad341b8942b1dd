package errors

import (
	"fmt"
	"net/http"
)

// AppError carries the HTTP status and user-facing message for an error,
// along with the operation that produced it and the underlying cause.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Op      string `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// E constructs an AppError with an explicit status code.
func E(op string, err error, message string, code int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func InvalidInput(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusBadRequest)
}

func Internal(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusInternalServerError)
}

// Code returns the HTTP status for any error, defaulting to 500 for
// errors that did not originate as an AppError.
func Code(err error) int {
	if e, ok := err.(*AppError); ok {
		return e.Code
	}
	return http.StatusInternalServerError
}

// Message returns the user-facing message for any error. Non-AppError
// causes are not leaked to clients.
func Message(err error) string {
	if e, ok := err.(*AppError); ok {
		return e.Message
	}
	return "Internal server error"
}
