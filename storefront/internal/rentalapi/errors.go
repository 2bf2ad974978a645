package rentalapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized matches any 401 from the rental API.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTransport covers connection, timeout, breaker and decode failures.
	ErrTransport = errors.New("rental API unreachable")
)

const maxPlainMessage = 200

// APIError is a non-2xx answer from the rental API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

func newAPIError(status int, body []byte) *APIError {
	msg := messageFromBody(body)
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}
	return &APIError{StatusCode: status, Message: msg}
}

// messageFromBody pulls a human readable message out of an error body:
// a JSON message/error/title field, or short plain text.
func messageFromBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, name := range []string{"message", "error", "title"} {
			if s, ok := fields[name].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		return ""
	}

	var quoted string
	if err := json.Unmarshal(body, &quoted); err == nil {
		return strings.TrimSpace(quoted)
	}

	if strings.HasPrefix(text, "<") || len(text) > maxPlainMessage {
		return ""
	}
	return text
}
