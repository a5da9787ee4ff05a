package fanin

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/baxromumarov/fanin/strandlog"
)

// Defaults used by [DefaultConfig].
const (
	DefaultProducers     = 128
	DefaultQuota         = 10
	DefaultCapacity      = 0
	DefaultSelectTimeout = 1000 * time.Millisecond
)

// Config holds the knobs of one run. The zero value is not usable; start
// from [DefaultConfig] or build one with [NewConfig].
type Config struct {
	// Producers is the number of producer strands and channels.
	Producers int

	// Quota is the number of messages each producer sends before closing.
	Quota int

	// Capacity is the channel buffer size. 0 means strict rendezvous.
	Capacity int

	// ProducerDelay is slept before every send.
	ProducerDelay time.Duration

	// ProducerDelays overrides ProducerDelay for individual producers.
	ProducerDelays map[int]time.Duration

	// ConsumerDelay is slept before every select.
	ConsumerDelay time.Duration

	// SelectTimeout bounds each select call. 0 waits forever.
	SelectTimeout time.Duration

	// Logger receives the strand-tagged diagnostics.
	Logger *logrus.Logger
}

// DefaultConfig returns 128 producers with a quota of 10 over rendezvous
// channels, no artificial delays, a 1s select timeout and diagnostics on
// stderr.
func DefaultConfig() Config {
	return Config{
		Producers:     DefaultProducers,
		Quota:         DefaultQuota,
		Capacity:      DefaultCapacity,
		SelectTimeout: DefaultSelectTimeout,
		Logger:        strandlog.New(os.Stderr),
	}
}

// NewConfig applies opts on top of [DefaultConfig].
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// DelayFor returns the artificial delay of producer i.
func (c Config) DelayFor(i int) time.Duration {
	if d, ok := c.ProducerDelays[i]; ok {
		return d
	}
	return c.ProducerDelay
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Producers < 0:
		return errors.Errorf("fanin: producers must be non-negative, got %d", c.Producers)
	case c.Quota < 0:
		return errors.Errorf("fanin: quota must be non-negative, got %d", c.Quota)
	case c.Capacity < 0:
		return errors.Errorf("fanin: capacity must be non-negative, got %d", c.Capacity)
	case c.ProducerDelay < 0 || c.ConsumerDelay < 0:
		return errors.New("fanin: delays must be non-negative")
	case c.SelectTimeout < 0:
		return errors.Errorf("fanin: select timeout must be non-negative, got %v", c.SelectTimeout)
	case c.Logger == nil:
		return errors.New("fanin: logger is required")
	}
	for i, d := range c.ProducerDelays {
		if d < 0 {
			return errors.Errorf("fanin: delay of producer %d must be non-negative, got %v", i, d)
		}
	}
	return nil
}

// Option modifies a [Config].
type Option func(*Config)

// WithProducers sets the producer count. It panics if n is negative.
func WithProducers(n int) Option {
	return func(c *Config) {
		if n < 0 {
			panic("fanin: producers must be non-negative")
		}
		c.Producers = n
	}
}

// WithQuota sets the per-producer message quota. It panics if n is negative.
func WithQuota(n int) Option {
	return func(c *Config) {
		if n < 0 {
			panic("fanin: quota must be non-negative")
		}
		c.Quota = n
	}
}

// WithCapacity sets the channel buffer size. It panics if n is negative.
func WithCapacity(n int) Option {
	return func(c *Config) {
		if n < 0 {
			panic("fanin: capacity must be non-negative")
		}
		c.Capacity = n
	}
}

// WithProducerDelay sets the delay every producer sleeps before a send.
func WithProducerDelay(d time.Duration) Option {
	return func(c *Config) {
		if d < 0 {
			panic("fanin: producer delay must be non-negative")
		}
		c.ProducerDelay = d
	}
}

// WithProducerDelayFor overrides the delay of producer i only.
func WithProducerDelayFor(i int, d time.Duration) Option {
	return func(c *Config) {
		if d < 0 {
			panic("fanin: producer delay must be non-negative")
		}
		if c.ProducerDelays == nil {
			c.ProducerDelays = make(map[int]time.Duration)
		}
		c.ProducerDelays[i] = d
	}
}

// WithConsumerDelay sets the delay the consumer sleeps before a select.
func WithConsumerDelay(d time.Duration) Option {
	return func(c *Config) {
		if d < 0 {
			panic("fanin: consumer delay must be non-negative")
		}
		c.ConsumerDelay = d
	}
}

// WithSelectTimeout sets the per-select timeout. 0 disables it.
func WithSelectTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d < 0 {
			panic("fanin: select timeout must be non-negative")
		}
		c.SelectTimeout = d
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
