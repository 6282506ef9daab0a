package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient satisfies Client for pool tests. Only Close is implemented;
// calling anything else is a test bug.
type stubClient struct {
	Client
	closed bool
}

func (s *stubClient) Close() error {
	s.closed = true
	return nil
}

func TestNewPool(t *testing.T) {
	t.Run("Creates All Clients Up Front", func(t *testing.T) {
		created := 0
		pool, err := NewPool(3, func() (Client, error) {
			created++
			return &stubClient{}, nil
		})
		require.NoError(t, err)
		defer pool.Close()

		assert.Equal(t, 3, created)
		assert.Equal(t, 3, pool.Size())
	})

	t.Run("Factory Error Closes Earlier Clients", func(t *testing.T) {
		var made []*stubClient
		pool, err := NewPool(3, func() (Client, error) {
			if len(made) == 2 {
				return nil, errors.New("connection refused")
			}
			c := &stubClient{}
			made = append(made, c)
			return c, nil
		})
		require.Error(t, err)
		assert.Nil(t, pool)
		for _, c := range made {
			assert.True(t, c.closed)
		}
	})

	t.Run("Non-Positive Size Defaults To One", func(t *testing.T) {
		pool, err := NewPool(0, func() (Client, error) {
			return &stubClient{}, nil
		})
		require.NoError(t, err)
		defer pool.Close()

		assert.Equal(t, 1, pool.Size())
	})
}

func TestPoolAcquireRelease(t *testing.T) {
	pool, err := NewPool(1, func() (Client, error) {
		return &stubClient{}, nil
	})
	require.NoError(t, err)
	defer pool.Close()

	ctx := context.Background()

	c, err := pool.Acquire(ctx)
	require.NoError(t, err)

	// The pool is exhausted; a second Acquire must respect the context.
	shortCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = pool.Acquire(shortCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	pool.Release(c)

	c2, err := pool.Acquire(ctx)
	require.NoError(t, err)
	assert.Same(t, c, c2)
	pool.Release(c2)
}

func TestPoolClose(t *testing.T) {
	var made []*stubClient
	pool, err := NewPool(2, func() (Client, error) {
		c := &stubClient{}
		made = append(made, c)
		return c, nil
	})
	require.NoError(t, err)

	require.NoError(t, pool.Close())
	for _, c := range made {
		assert.True(t, c.closed)
	}
}
