package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidQuantity is returned when an aid request fails the local
	// quantity precondition. No request is sent in that case.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrEmptyMessage is returned when a chat message is blank after trimming.
	ErrEmptyMessage = errors.New("empty message")

	// ErrLoginRejected is returned when /login answers 2xx with success=false.
	ErrLoginRejected = errors.New("login rejected")
)

// APIError is a non-2xx response from the relief backend.
type APIError struct {
	Status  int
	Message string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(e.Status); text != "" {
		return fmt.Sprintf("%s: %d %s", e.Path, e.Status, text)
	}
	return fmt.Sprintf("%s: status %d", e.Path, e.Status)
}

// ServerMessage returns the {message} carried by err when err is an APIError
// with a non-empty body message.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// InvalidQuantityError describes a rejected aid quantity and its valid range.
type InvalidQuantityError struct {
	Input string
	Max   int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("Please enter a valid quantity (1-%d).", e.Max)
}

func (e *InvalidQuantityError) Unwrap() error { return ErrInvalidQuantity }
