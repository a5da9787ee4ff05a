package strand

import "context"

// Handle refers to one strand started by [Group.Go].
type Handle struct {
	info Info
	done chan struct{}
	err  error // written before done is closed
}

// Name returns the strand name.
func (h *Handle) Name() string {
	return h.info.Name
}

// Done returns a channel that is closed when the strand returns.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Join blocks until the strand returns and reports its error as an
// [*Error]. A panicking strand reports a [*PanicError] cause.
//
// Join does not return early on group cancellation; use [Handle.JoinContext]
// for a bounded wait.
func (h *Handle) Join() error {
	<-h.done
	return h.err
}

// JoinContext is like [Handle.Join] but gives up when ctx ends, returning
// the context error.
func (h *Handle) JoinContext(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
