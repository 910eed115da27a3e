package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RejectedError carries a domain rejection returned by the core API: a
// non-success status plus the "mensaje" field the backend puts in its error
// envelope. Controllers surface the message verbatim.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request rejected with status %d", e.Status)
	}
	return e.Message
}

// Rejection decodes the backend error envelope from body. A body that is not
// JSON, or carries no message, still yields a RejectedError with the status.
func Rejection(status int, body io.Reader) error {
	rejected := &RejectedError{Status: status}
	raw, err := io.ReadAll(io.LimitReader(body, 2048))
	if err != nil {
		return rejected
	}
	var envelope struct {
		Message string `json:"mensaje"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if msg := strings.TrimSpace(envelope.Message); msg != "" {
			rejected.Message = msg
		} else if msg := strings.TrimSpace(envelope.Error); msg != "" {
			rejected.Message = msg
		}
	}
	return rejected
}

// RejectionMessage extracts the backend message when err wraps a RejectedError.
func RejectionMessage(err error) (string, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) && strings.TrimSpace(rejected.Message) != "" {
		return rejected.Message, true
	}
	return "", false
}
