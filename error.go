package pagetext

import (
	"errors"
	"fmt"
)

// Error codes. Fetch failures are classified with the first five codes.
const (
	ECONNECT   = "connect"   // DNS failure, refused connection, unreachable network
	ETIMEOUT   = "timeout"   // no response within the timeout
	EHTTP      = "http"      // response with a non-2xx status
	ETRANSPORT = "transport" // any other transport fault
	EINTERNAL  = "internal"  // anything not classified above
	EINVALID   = "invalid"
)

// Error represents an application-specific error.
type Error struct {
	// Code is a machine-readable classification.
	Code string

	// Message is a human-readable description.
	Message string

	// Status is the HTTP status code for EHTTP errors.
	Status int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// ErrorStatus returns the HTTP status carried by an EHTTP error, or 0.
func ErrorStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// Placeholder returns the bracketed error text used in place of page content
// when fetching url failed with err.
func Placeholder(url string, err error) string {
	switch ErrorCode(err) {
	case ECONNECT:
		return fmt.Sprintf("[Error: Could not connect to %s]", url)
	case ETIMEOUT:
		return fmt.Sprintf("[Error: Timeout for %s]", url)
	case EHTTP:
		return fmt.Sprintf("[Error: HTTP %d for %s]", ErrorStatus(err), url)
	case ETRANSPORT:
		return fmt.Sprintf("[Error: Could not fetch %s]", url)
	default:
		return fmt.Sprintf("[Error: Unexpected error for %s]", url)
	}
}
