package fanin

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrSelectTimeout is the liveness failure: no channel produced a
	// message or closed within one select timeout.
	ErrSelectTimeout = errors.New("fanin: select timed out before all channels closed")

	// ErrInterrupted marks a strand that was cancelled while blocked.
	// It is fatal for the run.
	ErrInterrupted = errors.New("fanin: strand interrupted")
)

// InterruptedError records which strand was interrupted and why.
// errors.Is(err, ErrInterrupted) holds for every InterruptedError.
type InterruptedError struct {
	Strand string
	Cause  error
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("%s interrupted: %v", e.Strand, e.Cause)
}

func (e *InterruptedError) Unwrap() error {
	return e.Cause
}

func (e *InterruptedError) Is(target error) bool {
	return target == ErrInterrupted
}

// interrupted wraps cause with a stack trace for the strand name.
func interrupted(name string, cause error) error {
	return errors.WithStack(&InterruptedError{Strand: name, Cause: cause})
}

// isLivenessCancel reports whether a cancellation cause came from the
// consumer giving up, in which case the producer is expected to stop.
func isLivenessCancel(cause error) bool {
	return errors.Is(cause, ErrSelectTimeout)
}
