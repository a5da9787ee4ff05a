package fanin

import "fmt"

// Message is the payload a producer sends: its name and a zero-based
// sequence number. Messages are values and never change once sent.
type Message struct {
	Producer string
	Seq      int
}

// String renders the message the way it appears in diagnostics, e.g.
// "prod3: '2'".
func (m Message) String() string {
	return fmt.Sprintf("%s: '%d'", m.Producer, m.Seq)
}

// IsZero reports whether m carries no producer. Producers never send such
// a message, so receiving one is a protocol violation.
func (m Message) IsZero() bool {
	return m.Producer == ""
}

// ProducerName returns the strand name of the i-th producer.
func ProducerName(i int) string {
	return fmt.Sprintf("prod%d", i)
}

// ConsumerName is the strand name of the fan-in consumer.
const ConsumerName = "cons"
