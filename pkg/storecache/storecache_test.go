package storecache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type box struct{ key string }

func countingLoader(loads *atomic.Int32) func(context.Context, string) (*box, error) {
	return func(_ context.Context, key string) (*box, error) {
		loads.Add(1)
		return &box{key: key}, nil
	}
}

func TestGetCachesUntilEvicted(t *testing.T) {
	var loads atomic.Int32
	c := New(2, time.Hour, countingLoader(&loads))
	ctx := context.Background()

	a1, err := c.Get(ctx, "a")
	require.NoError(t, err)
	a2, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, a1, a2)
	assert.EqualValues(t, 1, loads.Load())

	_, _ = c.Get(ctx, "b")
	_, _ = c.Get(ctx, "c")
	assert.Equal(t, 2, c.Len(), "size bounds the cache")

	a3, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.NotSame(t, a1, a3, "evicted key is loaded again")
	assert.EqualValues(t, 4, loads.Load())
}

func TestLoadErrorIsNotCached(t *testing.T) {
	fail := true
	c := New(0, 0, func(_ context.Context, key string) (*box, error) {
		if fail {
			return nil, errors.New("storage down")
		}
		return &box{key: key}, nil
	})

	_, err := c.Get(context.Background(), "a")
	require.Error(t, err)

	fail = false
	v, err := c.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", v.key)
}

func TestDoSerializesPerKey(t *testing.T) {
	var loads atomic.Int32
	c := New(1, time.Hour, countingLoader(&loads))

	var (
		mu      sync.Mutex
		inside  int
		overlap bool
	)
	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			return c.Do(context.Background(), "a", func(*box) error {
				mu.Lock()
				inside++
				if inside > 1 {
					overlap = true
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		})
	}
	require.NoError(t, g.Wait())
	assert.False(t, overlap)
	assert.EqualValues(t, 1, loads.Load())
}
