package apperrors

import "errors"

// Error kinds. Callers match them with errors.Is; repositories wrap the
// underlying store error so the cause is never lost.
var (
	// ErrNotFound is never returned by a Get; Get reports absence as (nil, nil).
	// Mutations return it when a referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an Add targets an id that already exists.
	ErrConflict = errors.New("conflict")
	// ErrInvalidArgument marks an internally inconsistent caller-supplied value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStoreUnavailable covers every store failure unrelated to data constraints.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Principal errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidAPIKey    = errors.New("invalid api key")
)

// NewNotFoundError creates a not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewInvalidArgumentError creates an invalid-argument error with a message
func NewInvalidArgumentError(message string) error {
	return &CustomError{Err: ErrInvalidArgument, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// Is reports whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// CustomError attaches a message and optional context to an error kind
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
