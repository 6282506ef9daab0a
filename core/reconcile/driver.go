package reconcile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"context"

	"rods-warden/core/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ItemFunc is the per-item check or repair applied by the driver. It is
// called with the item's input index, its trimmed path, and a client
// borrowed from the pool for the duration of the call.
type ItemFunc func(ctx context.Context, index int, path string, c store.Client) Outcome

type job struct {
	index int
	path  string
}

// Run reads item paths from in, one per line with surrounding whitespace
// trimmed, and applies fn to each with at most workers concurrent
// invocations sharing the client pool. It returns the aggregate Summary;
// the returned error reflects only input reading, never per-item failures.
func Run(ctx context.Context, in io.Reader, pool *store.Pool, workers int, log *zap.Logger, fn ItemFunc) (Summary, error) {
	if workers <= 0 {
		workers = 1
	}

	log = log.With(zap.String("run_id", uuid.NewString()))

	jobs := make(chan job)
	outcomes := make(chan Outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				outcomes <- process(ctx, pool, log, fn, j)
			}
		}()
	}

	var summary Summary
	done := make(chan struct{})
	go func() {
		defer close(done)
		for o := range outcomes {
			summary.Checked++
			if o.Success {
				summary.Succeeded++
			}
			if o.Repaired {
				summary.Repaired++
			}
		}
	}()

	scanner := bufio.NewScanner(in)
	var scanErr error
	index := 0
	for scanner.Scan() {
		jobs <- job{index: index, path: strings.TrimSpace(scanner.Text())}
		index++
	}
	if err := scanner.Err(); err != nil {
		scanErr = fmt.Errorf("failed to read input paths: %w", err)
	}

	close(jobs)
	wg.Wait()
	close(outcomes)
	<-done

	summary.Errors = summary.Checked - summary.Succeeded
	return summary, scanErr
}

// process runs fn for one item with a pooled client, recovering panics so
// one item can never take down the worker pool.
func process(ctx context.Context, pool *store.Pool, log *zap.Logger, fn ItemFunc, j job) (out Outcome) {
	defer func() {
		if p := recover(); p != nil {
			log.Error("Item processing panicked",
				zap.Int("item", j.index),
				zap.String("path", j.path),
				zap.Any("panic", p),
			)
			out = Outcome{}
		}
	}()

	c, err := pool.Acquire(ctx)
	if err != nil {
		log.Error("Failed to acquire client",
			zap.Int("item", j.index),
			zap.String("path", j.path),
			zap.Error(err),
		)
		return Outcome{}
	}
	defer pool.Release(c)

	return fn(ctx, j.index, j.path, c)
}
