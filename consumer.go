package fanin

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/baxromumarov/fanin/chanx"
	"github.com/baxromumarov/fanin/strand"
	"github.com/baxromumarov/fanin/strandlog"
)

// Consumer drains a fixed set of producer channels through repeated
// selects over the channels it has not yet seen closed.
type Consumer struct {
	chs     []*chanx.Rendezvous[Message]
	timeout time.Duration
	delay   time.Duration
	log     *logrus.Logger
	onRound func(active []int)
}

// ConsumerOption configures a [Consumer].
type ConsumerOption func(*Consumer)

// WithRoundObserver registers fn to be called with the channel ids armed
// for every select, before the select runs.
func WithRoundObserver(fn func(active []int)) ConsumerOption {
	return func(c *Consumer) {
		c.onRound = fn
	}
}

// NewConsumer creates a consumer over chs. Channel ids are their positions
// in chs.
func NewConsumer(chs []*chanx.Rendezvous[Message], cfg Config, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		chs:     chs,
		timeout: cfg.SelectTimeout,
		delay:   cfg.ConsumerDelay,
		log:     cfg.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run loops until every channel has been observed closed, a select times
// out, or ctx is cancelled. The report is valid on every path.
//
// A timeout returns an error wrapping [ErrSelectTimeout]; a cancellation
// returns an [InterruptedError]. Protocol violations are logged, counted
// and otherwise ignored.
func (c *Consumer) Run(ctx context.Context) (Report, error) {
	lg := strandlog.For(ctx, c.log)

	var rep Report
	done := make([]bool, len(c.chs))

	for {
		lg.Info("building select with open channels")
		arms := c.arms(done)
		ids := armIDs(arms)
		lg.Infof("added channels %s", joinIDs(ids))

		if len(arms) == 0 {
			lg.Info("all channels closed, exiting")
			rep.Termination = AllClosed
			return rep, nil
		}

		if c.onRound != nil {
			c.onRound(ids)
		}

		if c.delay > 0 {
			lg.Infof("sleeping %dms before select", c.delay.Milliseconds())
			if err := strand.Sleep(ctx, c.delay); err != nil {
				return c.fail(ctx, lg, rep, done, err)
			}
		}

		lg.Infof("selecting with %dms timeout", c.timeout.Milliseconds())
		out, err := chanx.Select(ctx, c.timeout, arms)
		if err != nil {
			return c.fail(ctx, lg, rep, done, err)
		}
		rep.Rounds++

		switch out.Kind {
		case chanx.Received:
			if out.Value.IsZero() {
				lg.Errorf("!!!ERROR: select returned an empty message from OPEN receive channel with index %d!!!", out.ID)
				rep.ProtocolViolations++
				continue
			}
			lg.Infof("select returned: %q", out.Value.String())
			rep.Received = append(rep.Received, out.Value)

		case chanx.Closed:
			if !c.chs[out.ID].Closed() {
				lg.Errorf("!!!ERROR: select reported closed for OPEN receive channel with index %d!!!", out.ID)
				rep.ProtocolViolations++
				continue
			}
			lg.Infof("select returned closed receive channel with index %d, excluding", out.ID)
			done[out.ID] = true
			rep.Closed = append(rep.Closed, out.ID)

		case chanx.TimedOut:
			lg.Info("select timed out, exiting")
			rep.Termination = TimedOut
			return rep, errors.Wrapf(ErrSelectTimeout, "channels %s silent for %v", joinIDs(ids), c.timeout)

		default:
			lg.Errorf("!!!ERROR: select returned %s with %d armed channels!!!", out.Kind, len(arms))
			rep.ProtocolViolations++
		}
	}
}

// arms builds a fresh arm list from every channel not in done.
func (c *Consumer) arms(done []bool) []chanx.Arm[Message] {
	arms := make([]chanx.Arm[Message], 0, len(c.chs))
	for i, ch := range c.chs {
		if done[i] {
			continue
		}
		arms = append(arms, chanx.Arm[Message]{ID: i, Chan: ch.Chan()})
	}
	return arms
}

func (c *Consumer) fail(ctx context.Context, lg *logrus.Entry, rep Report, done []bool, cause error) (Report, error) {
	rep.Termination = Interrupted
	err := interrupted(strand.Name(ctx), cause)
	lg.Errorf("!!! caught %v, rethrowing as fatal (trace follows)\n%s%+v",
		cause, spew.Sdump(struct {
			Received int
			Closed   []int
			Done     []bool
			Rounds   int
		}{len(rep.Received), rep.Closed, done, rep.Rounds}), err)
	return rep, err
}

func armIDs(arms []chanx.Arm[Message]) []int {
	ids := make([]int, len(arms))
	for i, a := range arms {
		ids[i] = a.ID
	}
	return ids
}

func joinIDs(ids []int) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}
