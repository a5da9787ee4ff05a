package fanin

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/baxromumarov/fanin/chanx"
	"github.com/baxromumarov/fanin/strand"
	"github.com/baxromumarov/fanin/strandlog"
)

// Producer owns one channel. It sends Quota sequenced messages and then
// closes the channel, on every exit path.
type Producer struct {
	name  string
	quota int
	delay time.Duration
	ch    *chanx.Rendezvous[Message]
	log   *logrus.Logger
}

// NewProducer creates the producer that owns ch. Its name and delay are
// derived from the channel id.
func NewProducer(ch *chanx.Rendezvous[Message], cfg Config) *Producer {
	return &Producer{
		name:  ProducerName(ch.ID()),
		quota: cfg.Quota,
		delay: cfg.DelayFor(ch.ID()),
		ch:    ch,
		log:   cfg.Logger,
	}
}

// Name returns the producer's strand name.
func (p *Producer) Name() string {
	return p.name
}

// Run sends the quota and closes the channel. A cancellation while
// sleeping or sending is returned as an [InterruptedError]; the channel
// is closed regardless.
func (p *Producer) Run(ctx context.Context) (err error) {
	lg := strandlog.For(ctx, p.log)

	defer func() {
		lg.Info("closing channel")
		if cerr := p.ch.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "%s: close", p.name)
		}
		lg.Info("exiting")
	}()

	for j := 0; j < p.quota; j++ {
		if p.delay > 0 {
			lg.Infof("sleeping %dms before send", p.delay.Milliseconds())
			if err := strand.Sleep(ctx, p.delay); err != nil {
				return p.fail(lg, err)
			}
		}

		m := Message{Producer: p.name, Seq: j}
		lg.Infof("sending: %q", m.String())
		if err := p.ch.Send(ctx, m); err != nil {
			if errors.Is(err, chanx.ErrClosed) {
				return errors.Wrapf(err, "%s: send", p.name)
			}
			return p.fail(lg, err)
		}
		lg.Infof("sent: %q", m.String())
	}
	return nil
}

func (p *Producer) fail(lg *logrus.Entry, cause error) error {
	err := interrupted(p.name, cause)
	if isLivenessCancel(cause) {
		lg.Warnf("abandoned by consumer: %v", cause)
		return err
	}
	lg.Errorf("!!! caught %v, rethrowing as fatal (trace follows)\n%+v", cause, err)
	return err
}
