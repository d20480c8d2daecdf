package models

import (
	"fmt"
	"strings"
)

// HandleError converts common SDK errors into a taxonomy of user-legible
// wrapped errors, matching the teacher's string-matching classification.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case containsAny(errStr, "401", "403", "unauthorized", "invalid api key", "api key", "forbidden"):
		return fmt.Errorf("authentication failed: %w", err)
	case containsAny(errStr, "429", "rate limit", "quota", "too many requests"):
		return fmt.Errorf("rate limited: %w", err)
	case containsAny(errStr, "context length", "too many tokens", "max tokens", "token limit"):
		return fmt.Errorf("context too long: %w", err)
	case containsAny(errStr, "model not found", "404", "not found"):
		return fmt.Errorf("model not found: %w", err)
	case containsAny(errStr, "connection", "eof", "timeout", "dial", "refused"):
		return fmt.Errorf("connection error: %w", err)
	default:
		return err
	}
}

// ErrModelUnavailable indicates the model backend returned a non-JSON or
// otherwise unusable response — for instance a reverse proxy in front of
// a local Ollama install returning plain text.
type ErrModelUnavailable struct {
	Provider string
	Body     string
	Cause    error
}

func (e *ErrModelUnavailable) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("model %s unavailable: %s", e.Provider, e.Body)
	}
	return fmt.Sprintf("model %s unavailable: %v", e.Provider, e.Cause)
}

func (e *ErrModelUnavailable) Unwrap() error { return e.Cause }

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
