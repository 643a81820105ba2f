package client

import (
	"errors"
	"fmt"
)

// Fallback messages used when a failed response carries no usable error.
const (
	MessageUnknownError  = "Unknown error"
	MessageRequestFailed = "Request failed"
)

var (
	// ErrMalformedResponse wraps every decode or shape-validation failure of
	// a successful response.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrInvalidArgument is returned before any request is sent.
	ErrInvalidArgument = errors.New("invalid argument")
)

// RequestError is the one error kind a failed HTTP exchange produces.
// Callers show Message as is and do not branch on StatusCode.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// IsRequestError reports whether err is (or wraps) a *RequestError.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
