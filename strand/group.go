package strand

import (
	"context"
	"sync"
	"sync/atomic"
)

// Func is the body of a strand. Its context carries the strand name and
// is cancelled when a sibling fails or the group finalizes.
type Func func(ctx context.Context) error

// Group manages a set of strands with a shared context and fail-fast error
// handling: the first strand error cancels the group context with that
// error as its cause.
//
// A Group must be created with [New] and finalized by calling [Group.Wait].
//
//	g := strand.New(ctx)
//	h := g.Go("prod0", produce)
//	g.Go("cons", consume)
//	_ = h.Join()
//	err := g.Wait()
type Group struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	cfg    config

	wg   sync.WaitGroup
	open atomic.Bool

	firstErr atomic.Pointer[Error]
	errOnce  sync.Once

	panicMu sync.Mutex
	panics  []*PanicError

	finOnce  sync.Once
	finErr   error
	finPanic *PanicError

	spawned atomic.Int64
	active  atomic.Int64
}

// New creates a Group whose context derives from parent.
func New(parent context.Context, opts ...Option) *Group {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancelCause(parent)
	g := &Group{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
	}
	g.open.Store(true)
	return g
}

// Wait waits for every strand to return and reports the first strand
// error, if any. If the group context was cancelled from outside and no
// strand failed, the cancellation cause is returned instead. If a strand
// panicked and [WithPanicAsError] was not set, Wait re-panics with the
// captured [*PanicError].
//
// Wait is idempotent. Calling [Group.Go] after Wait panics.
func (g *Group) Wait() error {
	g.finOnce.Do(func() {
		g.open.Store(false)
		g.wg.Wait()

		// Record external cancellation before our own cleanup cancel.
		cause := context.Cause(g.ctx)
		g.cancel(nil)

		g.panicMu.Lock()
		if len(g.panics) > 0 && !g.cfg.panicAsErr {
			g.finPanic = g.panics[0]
		}
		g.panicMu.Unlock()

		if se := g.firstErr.Load(); se != nil {
			g.finErr = se
		} else if cause != nil {
			g.finErr = cause
		}
	})

	if g.finPanic != nil {
		panic(g.finPanic)
	}
	return g.finErr
}

// Cancel cancels the group context with the given cause.
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context returns the group context.
func (g *Group) Context() context.Context {
	return g.ctx
}

// Err returns the first strand error recorded so far, or nil.
func (g *Group) Err() error {
	if se := g.firstErr.Load(); se != nil {
		return se
	}
	return nil
}

// Active returns the number of strands currently running.
func (g *Group) Active() int64 {
	return g.active.Load()
}

// Spawned returns the number of strands started, including finished ones.
func (g *Group) Spawned() int64 {
	return g.spawned.Load()
}

// exec runs fn with panic recovery.
func (g *Group) exec(ctx context.Context, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			pe := newPanicError(r)
			if !g.cfg.panicAsErr {
				g.panicMu.Lock()
				g.panics = append(g.panics, pe)
				g.panicMu.Unlock()
			}
			err = pe
		}
	}()
	return fn(ctx)
}

// recordError keeps the first error and cancels the siblings with it.
func (g *Group) recordError(se *Error) {
	g.errOnce.Do(func() {
		g.firstErr.Store(se)
		g.cancel(se)
	})
}
