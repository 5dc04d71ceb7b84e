package domain

import "errors"

var (
	ErrPlatformNotFound = errors.New("platform not found")
	ErrUnknownAdapter   = errors.New("unknown platform adapter")
	ErrNoSession        = errors.New("no stored session")

	ErrLoginFailed     = errors.New("login failed")
	ErrNavigation      = errors.New("navigation failed")
	ErrExtraction      = errors.New("extraction failed")
	ErrResponseTimeout = errors.New("response timeout")
	ErrSessionCorrupt  = errors.New("session corrupt")
	ErrIntegrity       = errors.New("response below viability threshold")
)

type ErrorKind string

const (
	ErrorKindNone               ErrorKind = ""
	ErrorKindLoginFailure       ErrorKind = "login_failure"
	ErrorKindNavigationFailure  ErrorKind = "navigation_failure"
	ErrorKindExtractionFailure  ErrorKind = "extraction_failure"
	ErrorKindResponseTimeout    ErrorKind = "response_timeout"
	ErrorKindSessionCorruption  ErrorKind = "session_corruption"
	ErrorKindIntegrityViolation ErrorKind = "integrity_violation"
	ErrorKindInternal           ErrorKind = "internal"
)

// KindOf classifies err against the failure taxonomy.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, ErrLoginFailed):
		return ErrorKindLoginFailure
	case errors.Is(err, ErrNavigation):
		return ErrorKindNavigationFailure
	case errors.Is(err, ErrExtraction):
		return ErrorKindExtractionFailure
	case errors.Is(err, ErrResponseTimeout):
		return ErrorKindResponseTimeout
	case errors.Is(err, ErrSessionCorrupt):
		return ErrorKindSessionCorruption
	case errors.Is(err, ErrIntegrity):
		return ErrorKindIntegrityViolation
	default:
		return ErrorKindInternal
	}
}
