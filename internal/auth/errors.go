// ABOUTME: Auth error taxonomy and user-facing messages
// ABOUTME: Validation errors never reach the network; remote and network errors come from the client

package auth

import (
	"errors"

	"github.com/Zubimendi/neurostudy/cli/internal/client"
)

// MinPasswordLength is enforced before registration is sent
const MinPasswordLength = 6

// Fallback messages shown when no better text is available
const (
	GenericFailureMessage = "Something went wrong. Please try again."
	NetworkFailureMessage = "Unable to reach NeuroStudy. Check your connection and try again."
)

// ValidationError is a pre-flight field check failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Message maps any auth or study error to the text shown to the user
func Message(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	var re *client.RemoteError
	if errors.As(err, &re) {
		if re.Message != "" {
			return re.Message
		}
		return GenericFailureMessage
	}

	var ne *client.NetworkError
	if errors.As(err, &ne) {
		return NetworkFailureMessage
	}

	return GenericFailureMessage
}
