// Package gather implements the Parallel Driver & Gather stage: it submits
// blocks to a worker pool and streams their decoded records to the
// consumer strictly in increasing block index, which equals byte-offset
// order because blocks are non-overlapping and sorted (spec §4.5, §5).
package gather

import (
	"context"
	"iter"
	"runtime"

	"github.com/joshuapare/dataflash/internal/block"
	"github.com/joshuapare/dataflash/internal/mmfile"
	"github.com/joshuapare/dataflash/internal/record"
	"github.com/joshuapare/dataflash/internal/registry"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is used when Options.Workers is <= 0: a sensible default
// of min(hardware parallelism, 6) (spec §5).
func DefaultWorkers(hardwareParallelism int) int {
	if hardwareParallelism < 1 {
		return 1
	}
	if hardwareParallelism > 6 {
		return 6
	}
	return hardwareParallelism
}

// Options configures one gather run.
type Options struct {
	Workers    int
	WantedType *byte
	OnResync   block.Logf
}

type indexedResult struct {
	idx  int
	recs []record.Record
}

// Stream runs the worker pool over ranges and returns a lazy, finite,
// non-restartable sequence of decoded records in byte-offset order (spec
// §4.6). Ranging stops submitting new blocks as soon as the consumer
// stops pulling (via the iter.Seq yield-return-false contract); in-flight
// workers finish their current block and discard the result (spec §5).
func Stream(ctx context.Context, data []byte, snap registry.Snapshot, ranges []block.Range, opts Options) iter.Seq[record.Record] {
	return func(yield func(record.Record) bool) {
		if len(ranges) == 0 {
			return
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		workers := opts.Workers
		if workers <= 0 {
			workers = DefaultWorkers(runtime.NumCPU())
		}
		if workers > len(ranges) {
			workers = len(ranges)
		}

		work := make(chan int, len(ranges))
		for i := range ranges {
			work <- i
		}
		close(work)

		// Buffered just enough to let a fast worker keep decoding the next
		// block while the gather stage is still draining the previous one
		// (spec §5: "bounded buffering").
		results := make(chan indexedResult, workers)

		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < workers; w++ {
			g.Go(func() error {
				return runWorker(gctx, data, snap, ranges, opts, work, results)
			})
		}
		go func() {
			_ = g.Wait()
			close(results)
		}()

		pending := make(map[int][]record.Record)
		expected := 0
		for res := range results {
			pending[res.idx] = res.recs
			for {
				recs, ok := pending[expected]
				if !ok {
					break
				}
				delete(pending, expected)
				expected++
				for _, rec := range recs {
					if !yield(rec) {
						cancel()
						drain(results)
						return
					}
				}
			}
		}
	}
}

// runWorker pulls block indices off work until it is closed or ctx is
// canceled, decoding each and attempting to hand its result to results.
// Workers never block on each other: only on the shared mapping's page
// faults and on the bounded results channel (spec §5).
func runWorker(ctx context.Context, data []byte, snap registry.Snapshot, ranges []block.Range, opts Options, work <-chan int, results chan<- indexedResult) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		idx, ok := <-work
		if !ok {
			return nil
		}

		rng := ranges[idx]
		mmfile.AdviseWillNeed(data, rng.Start, rng.End)
		recs := block.Decode(data, rng, snap, opts.WantedType, nil, opts.OnResync)

		select {
		case results <- indexedResult{idx: idx, recs: recs}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// drain empties results after cancellation so in-flight workers blocked on
// a send can observe ctx.Done (via their own select) or complete their
// send without deadlocking the errgroup's Wait.
func drain(results <-chan indexedResult) {
	for range results {
	}
}
