package riot

import (
	"errors"
	"fmt"
)

// ErrAbsent marks a 404 from the provider: the requested entity has no
// current value (most commonly "this summoner is not in a live game").
// Callers branch on it with IsAbsent; it is an outcome, not a failure.
var ErrAbsent = errors.New("riot: not found")

// TransientError covers network failures, 429 and 5xx responses. Safe to
// retry on a future sync cycle; never retried within one.
type TransientError struct {
	StatusCode int
	Err        error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("riot: transient: %v", e.Err)
	}
	return fmt.Sprintf("riot: transient: status %d", e.StatusCode)
}

func (e *TransientError) Unwrap() error { return e.Err }

// FatalError covers every other non-success response and malformed payloads,
// including provider responses missing data they are contracted to carry.
type FatalError struct {
	StatusCode int
	Detail     string
}

func (e *FatalError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("riot: status %d: %s", e.StatusCode, e.Detail)
	}
	return "riot: " + e.Detail
}

func IsAbsent(err error) bool { return errors.Is(err, ErrAbsent) }

func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

func IsFatal(err error) bool {
	var f *FatalError
	return errors.As(err, &f)
}
