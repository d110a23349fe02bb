package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Sentinel kinds with no payload.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrIntentInvalid    = errors.New("intent invalid")
)

// NotFoundError names the missing resource (clip, guild, channel, intent).
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NotFound(resource string) error {
	return NotFoundError{Resource: resource}
}

// CooldownError carries the exact timestamp the caller may retry after.
type CooldownError struct {
	Until time.Time
}

func (e CooldownError) Error() string {
	return fmt.Sprintf("cooldown active until %s", e.Until.UTC().Format(time.RFC3339))
}

// ValidationError reports malformed caller input.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...any) error {
	return ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StoreError wraps a transport or database failure; the only transient kind.
type StoreError struct {
	Err error
}

func (e StoreError) Error() string { return "store unavailable: " + e.Err.Error() }
func (e StoreError) Unwrap() error { return e.Err }

func Store(err error) error {
	if err == nil {
		return nil
	}
	return StoreError{Err: err}
}

// HTTPStatus maps an error to the status code handlers should respond with.
func HTTPStatus(err error) int {
	var nf NotFoundError
	var cd CooldownError
	var ve ValidationError
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.As(err, &cd):
		return http.StatusConflict
	case errors.Is(err, ErrIntentInvalid):
		return http.StatusGone
	case errors.As(err, &ve):
		return http.StatusBadRequest
	default:
		return http.StatusServiceUnavailable
	}
}
