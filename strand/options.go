package strand

import "time"

// Info describes a strand. It is passed to the hooks registered via
// [WithOnStart] and [WithOnDone].
type Info struct {
	Name string
}

type config struct {
	panicAsErr bool
	onStart    func(Info)
	onDone     func(Info, error, time.Duration)
}

// Option configures a [Group].
type Option func(*config)

// WithPanicAsError converts panics in strands to [*PanicError] values
// returned as regular errors, instead of re-raising them in [Group.Wait].
func WithPanicAsError() Option {
	return func(c *config) {
		c.panicAsErr = true
	}
}

// WithOnStart registers a hook invoked inside each strand's goroutine
// before the strand function runs.
func WithOnStart(fn func(Info)) Option {
	return func(c *config) {
		c.onStart = fn
	}
}

// WithOnDone registers a hook invoked inside each strand's goroutine after
// the strand function returns, with its error (nil on success) and
// wall-clock duration.
func WithOnDone(fn func(Info, error, time.Duration)) Option {
	return func(c *config) {
		c.onDone = fn
	}
}
