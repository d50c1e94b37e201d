package remote

import (
	"errors"
	"fmt"
)

var ErrMalformedResponse = errors.New("malformed response")

type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Endpoint
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func NewAPIError(endpoint string, status int, message string, err error) *APIError {
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: status,
		Message:    message,
		Err:        err,
	}
}

// UserMessage is the text shown inline when a call fails.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "The server could not be reached. Please try again."
}
