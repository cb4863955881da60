package infrastructure

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidRequest marks requests rejected locally, before any network call.
var ErrInvalidRequest = errors.New("invalid request")

// APIError is the single failure kind returned by AnalyticsClient. Message
// is safe to show to the user. StatusCode is 0 when no response arrived and
// Body holds the raw response text when there was one.
type APIError struct {
	Message    string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// HasStatus reports whether the backend answered at all.
func (e *APIError) HasStatus() bool {
	return e.StatusCode != 0
}

// AsAPIError extracts an *APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// httpErrorMessage picks the user-visible message for a non-2xx response:
// a string "detail", then a string "message" from a JSON body, otherwise the
// status line.
func httpErrorMessage(statusCode int, body []byte) string {
	message := fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode))

	var payload struct {
		Detail  any `json:"detail"`
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return message
	}
	if detail, ok := payload.Detail.(string); ok && detail != "" {
		return detail
	}
	if msg, ok := payload.Message.(string); ok && msg != "" {
		return msg
	}
	return message
}

// transport errors always carry text in Go, the fallback covers wrappers
// that print nothing
func networkMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "Network error"
	}
	return err.Error()
}
