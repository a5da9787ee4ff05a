// Package strandlog is the diagnostic sink shared by all strands of a run.
//
// Every entry is rendered as one line, "[<strand>] <message>", where the
// strand name comes from the context via [strand.Name]. The underlying
// logrus logger holds a mutex around each write, so lines from concurrent
// strands never interleave.
package strandlog

import (
	"bytes"
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/baxromumarov/fanin/strand"
)

// StrandField is the logrus field holding the strand name.
const StrandField = "strand"

const blankField = "blank"

// Formatter renders entries as "[<strand>] <message>\n". Fields other than
// [StrandField] are not printed.
type Formatter struct{}

// Format implements logrus.Formatter.
func (Formatter) Format(e *logrus.Entry) ([]byte, error) {
	if blank, _ := e.Data[blankField].(bool); blank {
		return []byte{'\n'}, nil
	}

	name, _ := e.Data[StrandField].(string)
	if name == "" {
		name = strand.MainName
	}

	var b bytes.Buffer
	b.Grow(len(name) + len(e.Message) + 4)
	b.WriteByte('[')
	b.WriteString(name)
	b.WriteString("] ")
	b.WriteString(e.Message)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// New returns a logger writing strand-tagged lines to w.
func New(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(Formatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := New(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// For returns an entry tagged with the strand that owns ctx.
func For(ctx context.Context, l *logrus.Logger) *logrus.Entry {
	return l.WithField(StrandField, strand.Name(ctx))
}

// Blank writes an empty line, separating runs in the output.
func Blank(l *logrus.Logger) {
	l.WithField(blankField, true).Info("")
}
