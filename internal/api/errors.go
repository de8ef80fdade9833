package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error is returned by every Client operation that fails, whether the backend
// answered with a non-success status or the request never completed.
type Error struct {
	// Message is meant to be shown to the user as is.
	Message string
	// Status is the HTTP status code, 0 when no response was received.
	Status int
	// Payload is the decoded JSON body, the raw text body, or nil.
	Payload any

	cause error
}

func (e *Error) Error() string { return e.Message }

// Unwrap returns the transport error behind a Status 0 failure.
func (e *Error) Unwrap() error { return e.cause }

func transportError(op string, err error) *Error {
	return &Error{Message: fmt.Sprintf("%s: %v", op, err), cause: err}
}

func statusError(status int, payload any) *Error {
	msg := errorMessage(payload)
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status %d", status)
	}
	return &Error{Message: msg, Status: status, Payload: payload}
}

// errorMessage extracts a readable message from an error body. It understands
// {"detail": "..."} and validation lists {"detail": [{"msg": "..."}, ...]}.
// Text bodies are only used when they parse as one of those shapes.
func errorMessage(payload any) string {
	switch p := payload.(type) {
	case map[string]any:
		return detailMessage(p["detail"])
	case string:
		var decoded map[string]any
		if err := json.Unmarshal([]byte(p), &decoded); err != nil {
			return ""
		}
		return detailMessage(decoded["detail"])
	}
	return ""
}

func detailMessage(detail any) string {
	switch d := detail.(type) {
	case string:
		return d
	case []any:
		msgs := make([]string, 0, len(d))
		for _, item := range d {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if msg, ok := obj["msg"].(string); ok && msg != "" {
				msgs = append(msgs, msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
