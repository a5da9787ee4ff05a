// Package chanx provides the channel primitives of a fan-in: an owned,
// identified rendezvous channel and a multi-way select over a changing
// set of them.
//
//   - [Rendezvous]: a single-writer channel with an identity. Capacity 0
//     means a send completes only when a receive is ready at the same time.
//     Send-after-close and double close return [ErrClosed] instead of
//     panicking.
//   - [Select]: waits on a fresh list of [Arm] values and returns one
//     tagged [Outcome] (Received, Closed, TimedOut or NoSources), so a
//     closed source can never be mistaken for a zero value.
//   - [Send] and [Recv]: context-aware send and receive on plain channels.
//   - [Merge]: goroutine-per-input fan-in for callers that do not need to
//     know which source a value came from.
//
// All blocking calls take a [context.Context] and return promptly when it
// is cancelled.
package chanx
