package commerceapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"fireworks-storefront/internal/domain"
)

// Error is a non-2xx answer from the commerce API.
type Error struct {
	Op      string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

// Unwrap lets callers match the well-known statuses with errors.Is.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusConflict:
		return domain.ErrAlreadyExists
	}
	if e.Status >= http.StatusInternalServerError {
		return domain.ErrUnavailable
	}
	return nil
}

func newError(op string, status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Message
		if msg == "" {
			msg = payload.Error
		}
	} else {
		msg = strings.TrimSpace(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
	}
	return &Error{Op: op, Status: status, Message: msg}
}
