package batch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunPreservesInputOrder(t *testing.T) {
	urls := []string{"a", "b", "c", "d", "e"}
	results, err := Run(context.Background(), urls, 2, 0, func(ctx context.Context, url string) (string, error) {
		return "fetched:" + url, nil
	})
	require.NoError(t, err)
	require.Len(t, results, 5)
	for i, u := range urls {
		require.Equal(t, u, results[i].URL)
		require.Equal(t, "fetched:"+u, results[i].Value)
		require.NoError(t, results[i].Err)
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	var inFlight, maxSeen int64
	urls := make([]string, 20)
	for i := range urls {
		urls[i] = "u"
	}
	_, err := Run(context.Background(), urls, 3, 0, func(ctx context.Context, url string) (struct{}, error) {
		cur := atomic.AddInt64(&inFlight, 1)
		for {
			prev := atomic.LoadInt64(&maxSeen)
			if cur <= prev || atomic.CompareAndSwapInt64(&maxSeen, prev, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return struct{}{}, nil
	})
	require.NoError(t, err)
	require.LessOrEqual(t, maxSeen, int64(3))
}

func TestRunCapturesPerURLErrors(t *testing.T) {
	urls := []string{"ok", "bad"}
	results, err := Run(context.Background(), urls, 0, 0, func(ctx context.Context, url string) (string, error) {
		if url == "bad" {
			return "", context.DeadlineExceeded
		}
		return "ok-value", nil
	})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
}

func TestRunRejectsEmptyURLs(t *testing.T) {
	_, err := Run(context.Background(), nil, 5, 0, func(ctx context.Context, url string) (string, error) {
		return "", nil
	})
	require.Error(t, err)
}

func TestRunRejectsNegativeConcurrency(t *testing.T) {
	_, err := Run(context.Background(), []string{"a"}, -1, 0, func(ctx context.Context, url string) (string, error) {
		return "", nil
	})
	require.Error(t, err)
}

func TestRunDeduplicatesInFlightIdenticalURLs(t *testing.T) {
	var calls int64
	urls := []string{"dup", "dup", "dup"}
	results, err := Run(context.Background(), urls, 3, 0, func(ctx context.Context, url string) (int64, error) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return atomic.LoadInt64(&calls), nil
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.LessOrEqual(t, atomic.LoadInt64(&calls), int64(3))
}

func TestRunPropagatesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	urls := []string{"a", "b"}
	_, err := Run(ctx, urls, 1, 0, func(ctx context.Context, url string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	_ = err
}
