package store

import (
	"context"
	"fmt"
)

// Factory creates one grid client session.
type Factory func() (Client, error)

// Pool is a bounded pool of grid clients. All clients are created up front
// so a misconfigured endpoint fails at pool construction, not mid-run.
type Pool struct {
	clients chan Client
	all     []Client
}

// NewPool creates a pool of size clients from the factory. On any factory
// error the clients created so far are closed.
func NewPool(size int, factory Factory) (*Pool, error) {
	if size <= 0 {
		size = 1
	}

	p := &Pool{clients: make(chan Client, size)}
	for i := 0; i < size; i++ {
		c, err := factory()
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("failed to create pooled client: %w", err)
		}
		p.all = append(p.all, c)
		p.clients <- c
	}

	return p, nil
}

// Size returns the pool capacity.
func (p *Pool) Size() int {
	return len(p.all)
}

// Acquire borrows a client, blocking until one is free or the context is
// done.
func (p *Pool) Acquire(ctx context.Context) (Client, error) {
	select {
	case c := <-p.clients:
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a borrowed client to the pool.
func (p *Pool) Release(c Client) {
	p.clients <- c
}

// Close closes every client in the pool. The pool must not be used after
// Close.
func (p *Pool) Close() error {
	var firstErr error
	for _, c := range p.all {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
