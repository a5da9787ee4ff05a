package chanx

import (
	"context"
	"sync"
)

// Merge combines multiple input channels into a single output channel
// (fan-in) with one forwarding goroutine per input. The output channel is
// closed when all inputs are closed or the context is cancelled. Values
// from one input keep their order; values from different inputs
// interleave non-deterministically.
//
// Merge loses the identity of the source and cannot report when an
// individual input closes; use [Select] when that matters.
func Merge[T any](ctx context.Context, chs ...<-chan T) <-chan T {
	out := make(chan T)

	var wg sync.WaitGroup
	for _, ch := range chs {
		if ch == nil {
			continue
		}
		ch := ch // capture for Go < 1.22
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok, err := Recv(ctx, ch)
				if err != nil || !ok {
					return
				}
				if Send(ctx, out, v) != nil {
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
