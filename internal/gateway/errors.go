package gateway

import (
	"fmt"
	"net/http"
)

// APIError is the normalized failure for a response outside the 2xx range.
// Message is the response body text when the backend sent one, otherwise a
// generic message naming the status code.
type APIError struct {
	Status  int
	Body    string
	Message string
}

func newAPIError(status int, body string) *APIError {
	msg := body
	if msg == "" {
		msg = fmt.Sprintf("request failed: %d", status)
	}
	return &APIError{Status: status, Body: body, Message: msg}
}

func (e *APIError) Error() string {
	return e.Message
}

// Unauthorized reports a rejected or missing credential.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// DecodeError reports a successful response whose body does not fit the requested shape.
type DecodeError struct {
	ContentType string
	Target      string
	Err         error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s response into %s: %v", e.ContentType, e.Target, e.Err)
	}
	return fmt.Sprintf("decode %s response into %s: not JSON", e.ContentType, e.Target)
}

func (e *DecodeError) Unwrap() error { return e.Err }
