package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Messages shown to the user for each failure class.
const (
	msgInvalidCredentials = "Invalid username or password"
	msgUnauthorized       = "Authentication failed - please log in again."
	msgForbidden          = "Forbidden - you do not have permission to access this resource."
	msgNotFound           = "Resource not found."
	msgServerError        = "Server error - please try again later."
	msgTimeout            = "Request timeout - please check your connection and try again."
	msgNetwork            = "Network error - please check your connection and try again."
)

// Error is a backend failure translated into a human-readable message. The
// stores surface Message verbatim.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// detailPayload matches the backend's error body: detail is either a plain
// message or a list of field validation errors.
type detailPayload struct {
	Detail json.RawMessage `json:"detail"`
}

type validationDetail struct {
	Msg string `json:"msg"`
}

// statusError builds the Error for a non-2xx response, preferring the
// backend's own detail message when one is present.
func statusError(status int, body []byte) *Error {
	if msg := extractDetail(body); msg != "" {
		return &Error{StatusCode: status, Message: msg}
	}

	switch {
	case status == http.StatusUnauthorized:
		return &Error{StatusCode: status, Message: msgUnauthorized}
	case status == http.StatusForbidden:
		return &Error{StatusCode: status, Message: msgForbidden}
	case status == http.StatusNotFound:
		return &Error{StatusCode: status, Message: msgNotFound}
	case status >= 500:
		return &Error{StatusCode: status, Message: msgServerError}
	default:
		return &Error{StatusCode: status, Message: fmt.Sprintf("HTTP %d - %s", status, http.StatusText(status))}
	}
}

// extractDetail pulls the message out of a backend error body. Validation
// bodies carry a list of per-field messages which are joined with commas.
func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var payload detailPayload
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(payload.Detail, &plain); err == nil {
		return plain
	}

	var details []validationDetail
	if err := json.Unmarshal(payload.Detail, &details); err == nil && len(details) > 0 {
		messages := make([]string, 0, len(details))
		for _, d := range details {
			if d.Msg != "" {
				messages = append(messages, d.Msg)
			}
		}
		return strings.Join(messages, ", ")
	}

	return ""
}
