// Package fanin drains a fixed set of producer channels into one consumer.
//
// Each [Producer] owns one [chanx.Rendezvous] channel, sends its quota of
// sequenced [Message] values and then closes the channel, whether it
// finished or was interrupted. The [Consumer] repeatedly builds a select
// over the channels it has not yet seen closed and handles exactly one
// outcome per round:
//
//   - a message: record it and loop;
//   - a closed channel: add it to the done set and loop;
//   - a timeout: stop early with [ErrSelectTimeout].
//
// When every channel has been seen closed the consumer stops cleanly.
// Closure is never inferred from a zero message; the select reports it
// as a separate outcome.
//
// # Running
//
// A [Coordinator] runs one iteration at a time:
//
//	c, err := fanin.NewCoordinator(fanin.NewConfig(
//	    fanin.WithProducers(3),
//	    fanin.WithQuota(2),
//	))
//	if err != nil {
//	    return err
//	}
//	rep, err := c.RunIteration(ctx, 0)
//	if err != nil {
//	    return err
//	}
//	return rep.Verify(3, 2)
//
// Producers and the consumer run as strands of one [strand.Group]; the
// first failure cancels the rest and is returned from
// [Coordinator.RunIteration]. Every strand logs through the same
// [strandlog] sink, one "[name] message" line per event.
//
// # Errors
//
//   - Liveness failure: the consumer's select timed out. The iteration
//     stops and the error wraps [ErrSelectTimeout].
//   - Fatal interruption: a strand was cancelled while blocked. The error
//     is an [*InterruptedError] carrying a stack trace (print it with %+v).
//   - Protocol violation: the select reported something inconsistent with
//     the channel state. It is logged loudly, counted in
//     [Report.ProtocolViolations], and the consumer keeps going.
package fanin
