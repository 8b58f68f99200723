package domain

import (
	"errors"
	"net/http"
)

// FallbackErrorMessage is shown when the API gives no readable reason.
const FallbackErrorMessage = "An unexpected error occurred"

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrMissingCredentials = errors.New("login response carried no token or user id")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidRole        = errors.New("role cannot be chosen at sign-up")
	ErrInvalidRating      = errors.New("rating must be greater than 0 and at most 5")
	ErrEmptyComment       = errors.New("comment cannot be empty")
	ErrNotFound           = errors.New("not found")
	ErrNameRequired       = errors.New("name is required")
)

// RemoteError is the single failure type of every remote API call. Message
// is the server-provided text or FallbackErrorMessage.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Unauthorized reports whether the server rejected the bearer credential.
func (e *RemoteError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// Is lets errors.Is(err, ErrNotFound) match a 404 from the API.
func (e *RemoteError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// NewRemoteError builds a RemoteError, substituting the fallback message when
// msg is blank.
func NewRemoteError(status int, msg string) *RemoteError {
	if msg == "" {
		msg = FallbackErrorMessage
	}
	return &RemoteError{Status: status, Message: msg}
}

// Message returns the text a notification should show for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackErrorMessage
}
