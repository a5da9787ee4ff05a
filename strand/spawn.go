package strand

import (
	"context"
	"time"
)

type nameKey struct{}

// MainName is returned by [Name] for contexts that do not belong to a
// strand.
const MainName = "main"

// WithName returns a copy of ctx tagged with a strand name.
func WithName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, nameKey{}, name)
}

// Name returns the name of the strand that owns ctx, or [MainName].
func Name(ctx context.Context) string {
	if name, ok := ctx.Value(nameKey{}).(string); ok {
		return name
	}
	return MainName
}

// Go starts fn on a new goroutine named name and returns its [Handle].
//
// fn always runs, even if the group is already cancelled, so strands that
// own resources get the chance to release them.
func (g *Group) Go(name string, fn Func) *Handle {
	// Check open BEFORE wg.Add to avoid racing Wait's wg.Wait.
	if !g.open.Load() {
		panic("strand: Go called after Wait")
	}

	g.wg.Add(1)
	g.spawned.Add(1)

	h := &Handle{
		info: Info{Name: name},
		done: make(chan struct{}),
	}

	go func() {
		defer g.wg.Done()
		defer close(h.done)

		g.active.Add(1)
		defer g.active.Add(-1)

		start := time.Now()
		// Hooks run inside exec so their panics are caught too.
		err := g.exec(WithName(g.ctx, name), func(ctx context.Context) error {
			if g.cfg.onStart != nil {
				g.cfg.onStart(h.info)
			}
			return fn(ctx)
		})
		elapsed := time.Since(start)

		if g.cfg.onDone != nil {
			g.cfg.onDone(h.info, err, elapsed)
		}

		if err != nil {
			se := &Error{Strand: h.info, Err: err}
			h.err = se
			g.recordError(se)
		}
	}()

	return h
}

// Sleep pauses the calling strand for d. It returns early with the
// context cause if ctx is cancelled. A non-positive d returns immediately.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}
