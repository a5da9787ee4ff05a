package chanx

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// Arm is one receive candidate of a [Select] call.
type Arm[T any] struct {
	// ID identifies the source; it is reported back in the [Outcome].
	ID int

	Chan <-chan T
}

// OutcomeKind tags the result of a [Select] call.
type OutcomeKind int

const (
	// Received means an arm delivered a value.
	Received OutcomeKind = iota

	// Closed means an arm's channel was observed closed and drained.
	Closed

	// TimedOut means no arm resolved before the timeout.
	TimedOut

	// NoSources means Select was called with no usable arms.
	NoSources
)

func (k OutcomeKind) String() string {
	switch k {
	case Received:
		return "received"
	case Closed:
		return "closed"
	case TimedOut:
		return "timed out"
	case NoSources:
		return "no sources"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the single result of a [Select] call. Value is only
// meaningful when Kind is [Received]; ID only when Kind is [Received]
// or [Closed].
type Outcome[T any] struct {
	Kind  OutcomeKind
	ID    int
	Value T
}

// Select blocks until exactly one of arms yields a value, one of them is
// observed closed, the timeout elapses, or ctx is cancelled.
//
// Exactly one value is consumed from exactly one channel when the outcome
// is [Received]; the other arms are left untouched. When several arms are
// ready at once the choice among them is random. A timeout <= 0 waits with
// no deadline. Arms with a nil channel are ignored, and if none remain
// Select returns a [NoSources] outcome without blocking.
//
// Cancellation of ctx is reported as an error carrying the context cause.
//
// Note: Select uses [reflect.Select] internally because the number of arms
// changes from call to call. Each call builds its own case list.
func Select[T any](ctx context.Context, timeout time.Duration, arms []Arm[T]) (Outcome[T], error) {
	cases := make([]reflect.SelectCase, 0, len(arms)+2)
	ids := make([]int, 0, len(arms))
	for _, a := range arms {
		if a.Chan == nil {
			continue
		}
		cases = append(cases, reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(a.Chan),
		})
		ids = append(ids, a.ID)
	}

	if len(ids) == 0 {
		return Outcome[T]{Kind: NoSources}, nil
	}

	n := len(ids)
	cases = append(cases, reflect.SelectCase{
		Dir:  reflect.SelectRecv,
		Chan: reflect.ValueOf(ctx.Done()),
	})

	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		cases = append(cases, reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(timer.C),
		})
	}

	chosen, value, ok := reflect.Select(cases)
	switch {
	case chosen == n:
		return Outcome[T]{}, context.Cause(ctx)
	case chosen == n+1:
		return Outcome[T]{Kind: TimedOut}, nil
	case !ok:
		return Outcome[T]{Kind: Closed, ID: ids[chosen]}, nil
	default:
		v, _ := value.Interface().(T) // nil interface values stay zero
		return Outcome[T]{Kind: Received, ID: ids[chosen], Value: v}, nil
	}
}
