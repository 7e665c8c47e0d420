// Package bench measures query latency of a word search under a controlled
// request rate.
package bench

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/bastiangx/wordfix/internal/logger"
	"github.com/bastiangx/wordfix/pkg/corpus"
	"github.com/bastiangx/wordfix/pkg/search"
)

// Options control the load. A zero Rate sends queries as fast as the workers
// take them. A zero Duration sends every corpus query once, otherwise the
// queries are cycled until the duration is over.
type Options struct {
	Rate     int
	Duration time.Duration
	Workers  int
	Logger   *log.Logger
}

// Result holds the measured latencies.
type Result struct {
	Backend   string
	Indexed   int
	IndexTime time.Duration
	Queries   int
	Elapsed   time.Duration
	P50       time.Duration
	P95       time.Duration
	P99       time.Duration
	Max       time.Duration
}

// Throughput is the number of queries per second.
func (r Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Queries) / r.Elapsed.Seconds()
}

func (r Result) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\nindexed %d words in %dms\n%d queries in %v => %.0f queries/s\np50 %v  p95 %v  p99 %v  max %v\n",
		r.Backend, r.Indexed, r.IndexTime.Milliseconds(),
		r.Queries, r.Elapsed.Round(time.Millisecond), r.Throughput(),
		r.P50, r.P95, r.P99, r.Max)
	return err
}

// Run indexes the corpus words into ws and then queries it with the corpus
// variants. ws must allow concurrent lookups once indexing is done.
func Run(ctx context.Context, ws search.WordSearch, c *corpus.Corpus, opts Options) (Result, error) {
	queries := c.Queries()
	if len(queries) == 0 {
		return Result{}, errors.New("corpus has no queries")
	}
	lg := opts.Logger
	if lg == nil {
		lg = logger.New("bench")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	result := Result{Backend: ws.String()}
	start := time.Now()
	n, err := c.Populate(ws)
	if err != nil {
		return result, err
	}
	result.Indexed = n
	result.IndexTime = time.Since(start)
	lg.Debug("Indexed corpus", "words", n, "took", result.IndexTime)

	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}
	limiter := rate.NewLimiter(limit, 1)

	runCtx := ctx
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(runCtx)
	feed := make(chan string, workers)
	g.Go(func() error {
		defer close(feed)
		for i := 0; opts.Duration > 0 || i < len(queries); i++ {
			if err := limiter.Wait(gctx); err != nil {
				// the limiter refuses to wait past the deadline
				return ctx.Err()
			}
			select {
			case feed <- queries[i%len(queries)]:
			case <-gctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	latencies := make([][]time.Duration, workers)
	for w := range workers {
		g.Go(func() error {
			for q := range feed {
				t := time.Now()
				ws.FindSimilarWords(q)
				latencies[w] = append(latencies[w], time.Since(t))
			}
			return nil
		})
	}

	start = time.Now()
	err = g.Wait()
	result.Elapsed = time.Since(start)
	if err != nil {
		return result, err
	}

	all := slices.Concat(latencies...)
	slices.Sort(all)
	result.Queries = len(all)
	result.P50 = percentile(all, 0.50)
	result.P95 = percentile(all, 0.95)
	result.P99 = percentile(all, 0.99)
	if len(all) > 0 {
		result.Max = all[len(all)-1]
	}
	lg.Debug("Benchmark done", "queries", result.Queries, "elapsed", result.Elapsed)
	return result, nil
}

// percentile uses the nearest rank method on sorted latencies.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p * float64(len(sorted))))
	return sorted[min(max(rank, 1), len(sorted))-1]
}
