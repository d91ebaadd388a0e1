package service

import "fmt"

// Error codes surfaced to API clients.
const (
	CodeDuplicateEmail   = "DEVELOPER_DUPLICATE_EMAIL"
	CodeNotFound         = "DEVELOPER_NOT_FOUND"
	CodeValidationFailed = "DEVELOPER_VALIDATION_FAILED"
)

// Error is a domain error with a stable client-facing code.
// Two Errors match under errors.Is when their codes are equal.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrDuplicateEmail = &Error{Code: CodeDuplicateEmail, Message: "Developer with defined email already exists"}
	ErrNotFound       = &Error{Code: CodeNotFound, Message: "Developer not found"}
	ErrValidation     = &Error{Code: CodeValidationFailed, Message: "Developer validation failed"}
)

func validationError(format string, args ...any) error {
	return &Error{Code: CodeValidationFailed, Message: fmt.Sprintf(format, args...)}
}
