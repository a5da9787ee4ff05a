package chanx

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by [Rendezvous.Send] after the channel has been
// closed, and by [Rendezvous.Close] on every call after the first.
var ErrClosed = errors.New("chanx: rendezvous channel closed")

// Rendezvous is a single-producer/single-consumer channel with an identity.
//
// With capacity 0 a send completes only when a receiver takes the value at
// the same time. A positive capacity turns it into a bounded FIFO queue.
// Unlike a bare Go channel, sending after close and closing twice return
// [ErrClosed] instead of panicking.
type Rendezvous[T any] struct {
	id     int
	ch     chan T
	closed chan struct{} // closed first by Close, wakes blocked senders

	closing atomic.Bool
	mu      sync.RWMutex // held shared by senders; Close takes it before close(ch)
}

// NewRendezvous creates an open channel identified by id. It panics if
// capacity is negative.
func NewRendezvous[T any](id, capacity int) *Rendezvous[T] {
	if capacity < 0 {
		panic("chanx: NewRendezvous requires capacity >= 0")
	}
	return &Rendezvous[T]{
		id:     id,
		ch:     make(chan T, capacity),
		closed: make(chan struct{}),
	}
}

// ID returns the slot index the channel was created with.
func (r *Rendezvous[T]) ID() int {
	return r.id
}

// Cap returns the buffer capacity. Zero means strict rendezvous.
func (r *Rendezvous[T]) Cap() int {
	return cap(r.ch)
}

// Send blocks until a receiver accepts v, ctx is cancelled, or the channel
// is closed. It returns [ErrClosed] if the channel is closed and the
// context cause if ctx ends first.
func (r *Rendezvous[T]) Send(ctx context.Context, v T) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	select {
	case <-r.closed:
		return ErrClosed
	default:
	}

	select {
	case r.ch <- v:
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	case <-r.closed:
		return ErrClosed
	}
}

// Recv receives the next value. ok is false once the channel is closed
// and drained.
func (r *Rendezvous[T]) Recv(ctx context.Context) (v T, ok bool, err error) {
	return Recv(ctx, r.ch)
}

// Close closes the channel. Only the first call has an effect; later calls
// return [ErrClosed]. A Send blocked at the time of the call returns
// [ErrClosed] before the underlying channel is closed.
func (r *Rendezvous[T]) Close() error {
	if !r.closing.CompareAndSwap(false, true) {
		return ErrClosed
	}
	close(r.closed)

	r.mu.Lock()
	close(r.ch)
	r.mu.Unlock()
	return nil
}

// Closed reports whether Close has been called.
func (r *Rendezvous[T]) Closed() bool {
	return r.closing.Load()
}

// Chan returns the receive side of the underlying channel.
func (r *Rendezvous[T]) Chan() <-chan T {
	return r.ch
}

// Done returns a channel that is closed when [Rendezvous.Close] is called.
func (r *Rendezvous[T]) Done() <-chan struct{} {
	return r.closed
}

// Arm registers the channel as a receive candidate for [Select].
func (r *Rendezvous[T]) Arm() Arm[T] {
	return Arm[T]{ID: r.id, Chan: r.ch}
}
