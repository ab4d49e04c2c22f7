package fanout

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBatchedCollectsAllResults(t *testing.T) {
	inputs := []int{1, 2, 3, 4, 5, 6, 7}

	results := Batched(context.Background(), inputs, Options{BatchSize: 3}, func(ctx context.Context, n int) (int, error) {
		return n * n, nil
	})

	require.Len(t, results, len(inputs))
	for i, res := range results {
		require.NoError(t, res.Err)
		require.Equal(t, inputs[i], res.Input)
		require.Equal(t, inputs[i]*inputs[i], res.Output)
	}
}

func TestBatchedToleratesFailures(t *testing.T) {
	inputs := []int{1, 2, 3, 4}

	results := Batched(context.Background(), inputs, Options{BatchSize: 2}, func(ctx context.Context, n int) (int, error) {
		if n%2 == 0 {
			return 0, fmt.Errorf("even input %d", n)
		}
		return n, nil
	})

	require.Len(t, results, 4)
	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
	require.NoError(t, results[2].Err)
	require.Error(t, results[3].Err)
}

func TestBatchedBoundsConcurrency(t *testing.T) {
	var active atomic.Int64
	var peak atomic.Int64
	var mu sync.Mutex

	inputs := make([]int, 25)
	for i := range inputs {
		inputs[i] = i
	}

	Batched(context.Background(), inputs, Options{BatchSize: 5}, func(ctx context.Context, n int) (int, error) {
		cur := active.Add(1)
		defer active.Add(-1)

		mu.Lock()
		if cur > peak.Load() {
			peak.Store(cur)
		}
		mu.Unlock()
		return n, nil
	})

	require.LessOrEqual(t, peak.Load(), int64(5))
}

func TestBatchedEmptyInput(t *testing.T) {
	results := Batched(context.Background(), nil, Options{}, func(ctx context.Context, n int) (int, error) {
		t.Fatal("work should not run")
		return 0, nil
	})
	require.Empty(t, results)
}
