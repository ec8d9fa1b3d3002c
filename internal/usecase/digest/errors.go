package digest

import (
	"errors"
	"strings"
)

// ErrQuotaExceeded is matched by every *QuotaExceededError via errors.Is.
var ErrQuotaExceeded = errors.New("quota or rate limit exceeded")

// QuotaGuidance is shown to the user when a remote API reports exhaustion.
const QuotaGuidance = "check your API keys and billing, or reduce the headline limit with -n"

// QuotaExceededError reports that a remote API refused work because a quota
// or rate limit was hit. Err is the original failure.
type QuotaExceededError struct {
	Err error
}

// Error returns the guidance text followed by the cause.
func (e *QuotaExceededError) Error() string {
	msg := ErrQuotaExceeded.Error() + ": " + QuotaGuidance
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the original failure.
func (e *QuotaExceededError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrQuotaExceeded.
func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

// translateError converts quota and rate-limit failures into a
// *QuotaExceededError. Any other error is returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var quotaErr *QuotaExceededError
	if errors.As(err, &quotaErr) {
		return err
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") {
		return &QuotaExceededError{Err: err}
	}
	return err
}
