// Package fanout runs a unit of work over a list of inputs with bounded
// concurrency. Inputs are processed in fixed-size batches: every task in a
// batch is launched together, the batch is awaited in full (failures
// included, without cancelling siblings) and a fixed pause separates
// consecutive batches, which keeps bursts against rate-limited upstreams
// in check.
package fanout

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultBatchSize = 10
	DefaultPause     = 500 * time.Millisecond
)

type Result[I, O any] struct {
	Input  I
	Output O
	Err    error
}

type Options struct {
	BatchSize int
	Pause     time.Duration
}

func Batched[I, O any](
	ctx context.Context,
	inputs []I,
	opts Options,
	work func(ctx context.Context, input I) (O, error),
) []Result[I, O] {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	results := make([]Result[I, O], len(inputs))

	for start := 0; start < len(inputs); start += batchSize {
		end := start + batchSize
		if end > len(inputs) {
			end = len(inputs)
		}

		wg := sync.WaitGroup{}
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				out, err := work(ctx, inputs[idx])
				results[idx] = Result[I, O]{
					Input:  inputs[idx],
					Output: out,
					Err:    err,
				}
			}(i)
		}
		wg.Wait()

		if end < len(inputs) && opts.Pause > 0 {
			time.Sleep(opts.Pause)
		}
	}

	return results
}
