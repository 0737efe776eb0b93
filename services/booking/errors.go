package booking

import "fmt"

// Error codes surfaced to handlers.
const (
	CodeNotFound  = "notFound"
	CodeForbidden = "forbidden"
	CodeConflict  = "conflict"
	CodeInvalid   = "invalidInput"
)

// ServiceError carries a machine-readable code alongside the message so
// handlers can map failures to HTTP statuses.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(msg string) error {
	return &ServiceError{Code: CodeNotFound, Message: msg}
}

func NewForbiddenError(msg string) error {
	return &ServiceError{Code: CodeForbidden, Message: msg}
}

func NewConflictError(msg string) error {
	return &ServiceError{Code: CodeConflict, Message: msg}
}

func NewInvalidInputError(msg string) error {
	return &ServiceError{Code: CodeInvalid, Message: msg}
}
