package fanin

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Termination tells how the consumer stopped.
type Termination int

const (
	// AllClosed: every channel was observed closed.
	AllClosed Termination = iota

	// TimedOut: a select call saw no activity within the timeout.
	TimedOut

	// Interrupted: the consumer was cancelled while blocked.
	Interrupted
)

func (t Termination) String() string {
	switch t {
	case AllClosed:
		return "all closed"
	case TimedOut:
		return "timed out"
	case Interrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("Termination(%d)", int(t))
	}
}

// Report is what the consumer observed during one iteration.
type Report struct {
	RunID     uuid.UUID
	Iteration int

	// Received holds the messages in arrival order.
	Received []Message

	// Closed holds channel ids in the order they were observed closed.
	Closed []int

	// Rounds counts select calls.
	Rounds int

	ProtocolViolations int
	Termination        Termination
}

// PerProducer groups received sequence numbers by producer name, keeping
// arrival order.
func (r Report) PerProducer() map[string][]int {
	out := make(map[string][]int)
	for _, m := range r.Received {
		out[m.Producer] = append(out[m.Producer], m.Seq)
	}
	return out
}

// Verify checks a completed iteration: the consumer stopped with every
// channel closed exactly once, no protocol violation was seen, and each
// of the producers delivered 0..quota-1 in order, exactly once.
func (r Report) Verify(producers, quota int) error {
	var problems []string

	if r.Termination != AllClosed {
		problems = append(problems, fmt.Sprintf("terminated %s", r.Termination))
	}
	if r.ProtocolViolations > 0 {
		problems = append(problems, fmt.Sprintf("%d protocol violations", r.ProtocolViolations))
	}

	seen := make(map[int]bool, len(r.Closed))
	for _, id := range r.Closed {
		if seen[id] {
			problems = append(problems, fmt.Sprintf("channel %d observed closed twice", id))
		}
		seen[id] = true
	}
	if len(seen) != producers {
		problems = append(problems, fmt.Sprintf("%d of %d channels observed closed", len(seen), producers))
	}

	per := r.PerProducer()
	for i := 0; i < producers; i++ {
		name := ProducerName(i)
		got := per[name]
		delete(per, name)
		if len(got) != quota {
			problems = append(problems, fmt.Sprintf("%s: got %d messages, want %d", name, len(got), quota))
			continue
		}
		for j, seq := range got {
			if seq != j {
				problems = append(problems, fmt.Sprintf("%s: message %d has sequence %d", name, j, seq))
				break
			}
		}
	}
	for name := range per {
		problems = append(problems, fmt.Sprintf("messages from unknown producer %q", name))
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.Errorf("fanin: iteration %d (run %s): %s", r.Iteration, r.RunID, strings.Join(problems, "; "))
}
