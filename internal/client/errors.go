// ABOUTME: Error types returned by the API gateway client
// ABOUTME: Separates remote rejections from transport failures

package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized matches any RemoteError carrying a 401 status
var ErrUnauthorized = errors.New("authentication rejected")

// RemoteError is a non-2xx response from the backend
type RemoteError struct {
	StatusCode int
	Message    string // the envelope's error field, if any
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return "backend error: " + e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses
func (e *RemoteError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// NetworkError means no response was received: cancellation, timeout, or connectivity
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
