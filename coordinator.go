package fanin

import (
	"context"

	"github.com/google/uuid"

	"github.com/baxromumarov/fanin/chanx"
	"github.com/baxromumarov/fanin/strand"
	"github.com/baxromumarov/fanin/strandlog"
)

// Coordinator runs iterations: it starts the producers and the consumer
// of one iteration, joins them, and returns what the consumer saw.
type Coordinator struct {
	cfg       Config
	consOpts  []ConsumerOption
	groupOpts []strand.Option
}

// NewCoordinator validates cfg and returns a coordinator for it.
// consOpts are applied to the consumer of every iteration.
func NewCoordinator(cfg Config, consOpts ...ConsumerOption) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Coordinator{
		cfg:       cfg,
		consOpts:  consOpts,
		groupOpts: []strand.Option{strand.WithPanicAsError()},
	}, nil
}

// Config returns the configuration the coordinator runs with.
func (c *Coordinator) Config() Config {
	return c.cfg
}

// RunIteration starts one producer per channel and the consumer, then
// joins every producer in index order and the consumer last.
//
// The first strand error cancels the others and is returned as a
// [*strand.Error]; a consumer timeout therefore surfaces as
// [ErrSelectTimeout] and unblocks the stalled producers. The report is
// returned on every path.
func (c *Coordinator) RunIteration(ctx context.Context, k int) (Report, error) {
	lg := strandlog.For(ctx, c.cfg.Logger)
	runID := uuid.New()
	lg.Infof("STARTING ITERATION %d (run %s)", k, runID)

	g := strand.New(ctx, c.groupOpts...)

	chs := make([]*chanx.Rendezvous[Message], c.cfg.Producers)
	prods := make([]*strand.Handle, c.cfg.Producers)
	for i := range chs {
		chs[i] = chanx.NewRendezvous[Message](i, c.cfg.Capacity)
		p := NewProducer(chs[i], c.cfg)
		lg.Infof("starting %q", p.Name())
		prods[i] = g.Go(p.Name(), p.Run)
	}

	var rep Report
	cons := NewConsumer(chs, c.cfg, c.consOpts...)
	lg.Infof("starting %q", ConsumerName)
	ch := g.Go(ConsumerName, func(ctx context.Context) (err error) {
		rep, err = cons.Run(ctx)
		return err
	})

	for _, h := range prods {
		lg.Infof("joining %q", h.Name())
		_ = h.Join() // reported through g.Wait
		lg.Infof("joined %q", h.Name())
	}
	lg.Infof("joining %q", ConsumerName)
	_ = ch.Join()
	lg.Infof("joined %q", ConsumerName)

	err := g.Wait()
	rep.RunID = runID
	rep.Iteration = k
	return rep, err
}

// RunIteration is a one-shot helper that builds a config from opts and
// runs iteration k.
func RunIteration(ctx context.Context, k int, opts ...Option) (Report, error) {
	c, err := NewCoordinator(NewConfig(opts...))
	if err != nil {
		return Report{}, err
	}
	return c.RunIteration(ctx, k)
}
