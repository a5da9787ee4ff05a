// Command fanin drives the fan-in scenario for a number of iterations and
// exits non-zero with a trace on the first failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/baxromumarov/fanin"
	"github.com/baxromumarov/fanin/strandlog"
)

const defaultRuns = 1000

func main() {
	def := fanin.DefaultConfig()

	runs := flag.Int("runs", defaultRuns, "number of iterations")
	producers := flag.Int("producers", def.Producers, "producer count")
	quota := flag.Int("quota", def.Quota, "messages per producer")
	capacity := flag.Int("capacity", def.Capacity, "channel capacity (0 = rendezvous)")
	prodDelay := flag.Duration("prod-delay", def.ProducerDelay, "producer delay before each send")
	consDelay := flag.Duration("cons-delay", def.ConsumerDelay, "consumer delay before each select")
	timeout := flag.Duration("timeout", def.SelectTimeout, "consumer select timeout (0 = none)")
	verify := flag.Bool("verify", false, "check every message arrived exactly once, in order")
	flag.Parse()

	log := strandlog.New(os.Stderr)
	cfg := fanin.Config{
		Producers:     *producers,
		Quota:         *quota,
		Capacity:      *capacity,
		ProducerDelay: *prodDelay,
		ConsumerDelay: *consDelay,
		SelectTimeout: *timeout,
		Logger:        log,
	}

	c, err := fanin.NewCoordinator(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, c, *runs, *verify); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, c *fanin.Coordinator, runs int, verify bool) error {
	cfg := c.Config()
	for k := 0; k < runs; k++ {
		strandlog.Blank(cfg.Logger)

		rep, err := c.RunIteration(ctx, k)
		if err != nil {
			return err
		}
		if verify {
			if err := rep.Verify(cfg.Producers, cfg.Quota); err != nil {
				return err
			}
		}
	}
	return nil
}
