package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotAuthenticated = errors.New("not logged in")
	ErrAccountInactive  = errors.New("account not activated")
	ErrForbidden        = errors.New("access forbidden")
	ErrNotFound         = errors.New("not found")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidPayload   = errors.New("invalid payload")
)

// Backend error codes carried in the "error" field of a response body.
const (
	CodeInvalidToken       = "invalid_token"
	CodeExpiredToken       = "expired_token"
	CodeUnactivatedAccount = "unactivated_account"
	// CodeUnauthorizedClient is what the backend's login answers for an
	// account an admin has not activated (400, "account not active").
	CodeUnauthorizedClient = "unauthorized_client"

	inactiveDescription = "account not active"
)

// CommandError is the error signal returned by the backend for a command.
// Message is passed through verbatim so screens can show it.
type CommandError struct {
	Command string
	Status  int
	Code    string
	Message string
}

func (e *CommandError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Command, e.Message)
	case e.Code != "":
		return fmt.Sprintf("%s: %s", e.Command, e.Code)
	default:
		return fmt.Sprintf("%s: status %d", e.Command, e.Status)
	}
}

// Is lets callers match the backend signal against domain sentinels.
func (e *CommandError) Is(target error) bool {
	switch target {
	case ErrAccountInactive:
		return e.Code == CodeUnactivatedAccount ||
			e.Code == CodeUnauthorizedClient ||
			strings.EqualFold(strings.TrimSpace(e.Message), inactiveDescription)
	case ErrNotAuthenticated:
		return e.Status == 401 || e.Code == CodeInvalidToken || e.Code == CodeExpiredToken
	case ErrForbidden:
		return e.Status == 403
	case ErrNotFound:
		return e.Status == 404
	}
	return false
}

// Detail returns the backend message, or fallback when there is none.
func Detail(err error, fallback string) string {
	var ce *CommandError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
