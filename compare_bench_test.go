package fanin_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/sourcegraph/conc"
	"golang.org/x/sync/errgroup"

	"github.com/baxromumarov/fanin"
	"github.com/baxromumarov/fanin/chanx"
	"github.com/baxromumarov/fanin/strandlog"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fan-in of producers × quota messages over rendezvous channels.
// The Select variant also tracks per-channel closure; the Merge variants
// only count values.
// ─────────────────────────────────────────────────────────────────────────────

var benchShapes = []struct{ producers, quota int }{
	{4, 100},
	{128, 10},
}

func produceAll(ctx context.Context, chs []*chanx.Rendezvous[fanin.Message], quota int, spawn func(func())) {
	for _, ch := range chs {
		ch := ch
		spawn(func() {
			defer ch.Close()
			for j := 0; j < quota; j++ {
				if ch.Send(ctx, fanin.Message{Producer: "p", Seq: j}) != nil {
					return
				}
			}
		})
	}
}

func newChans(n int) ([]*chanx.Rendezvous[fanin.Message], []<-chan fanin.Message) {
	chs := make([]*chanx.Rendezvous[fanin.Message], n)
	ins := make([]<-chan fanin.Message, n)
	for i := range chs {
		chs[i] = chanx.NewRendezvous[fanin.Message](i, 0)
		ins[i] = chs[i].Chan()
	}
	return chs, ins
}

func BenchmarkFanIn_Select(b *testing.B) {
	for _, s := range benchShapes {
		b.Run(fmt.Sprintf("p=%d/q=%d", s.producers, s.quota), func(b *testing.B) {
			c, err := fanin.NewCoordinator(fanin.NewConfig(
				fanin.WithProducers(s.producers),
				fanin.WithQuota(s.quota),
				fanin.WithLogger(strandlog.Discard()),
			))
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := c.RunIteration(context.Background(), i); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFanIn_MergeNative(b *testing.B) {
	for _, s := range benchShapes {
		b.Run(fmt.Sprintf("p=%d/q=%d", s.producers, s.quota), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				ctx := context.Background()
				chs, ins := newChans(s.producers)
				var wg sync.WaitGroup
				produceAll(ctx, chs, s.quota, func(fn func()) {
					wg.Add(1)
					go func() { defer wg.Done(); fn() }()
				})
				n := 0
				for range chanx.Merge(ctx, ins...) {
					n++
				}
				wg.Wait()
				if n != s.producers*s.quota {
					b.Fatalf("got %d messages", n)
				}
			}
		})
	}
}

func BenchmarkFanIn_MergeErrgroup(b *testing.B) {
	for _, s := range benchShapes {
		b.Run(fmt.Sprintf("p=%d/q=%d", s.producers, s.quota), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				g, ctx := errgroup.WithContext(context.Background())
				chs, ins := newChans(s.producers)
				produceAll(ctx, chs, s.quota, func(fn func()) {
					g.Go(func() error { fn(); return nil })
				})
				n := 0
				for range chanx.Merge(ctx, ins...) {
					n++
				}
				_ = g.Wait()
				if n != s.producers*s.quota {
					b.Fatalf("got %d messages", n)
				}
			}
		})
	}
}

func BenchmarkFanIn_MergeConc(b *testing.B) {
	for _, s := range benchShapes {
		b.Run(fmt.Sprintf("p=%d/q=%d", s.producers, s.quota), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				ctx := context.Background()
				chs, ins := newChans(s.producers)
				wg := conc.NewWaitGroup()
				produceAll(ctx, chs, s.quota, wg.Go)
				n := 0
				for range chanx.Merge(ctx, ins...) {
					n++
				}
				wg.Wait()
				if n != s.producers*s.quota {
					b.Fatalf("got %d messages", n)
				}
			}
		})
	}
}
