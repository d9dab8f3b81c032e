package filesystem

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// DefaultPoolSize bounds concurrent blocking filesystem calls.
const DefaultPoolSize = 4

// Pool caps how many blocking filesystem calls (stat, directory listing)
// run at once. Orchestration goroutines are cheap; the pool is what keeps
// disk pressure and file descriptor use bounded.
type Pool struct {
	size int
	sem  *semaphore.Weighted
}

// NewPool creates a pool with size workers
func NewPool(size int) *Pool {
	if size <= 0 {
		size = DefaultPoolSize
	}
	return &Pool{
		size: size,
		sem:  semaphore.NewWeighted(int64(size)),
	}
}

// Size returns the worker count
func (p *Pool) Size() int {
	return p.size
}

// Do runs fn once a worker slot is free. It returns ctx.Err() without
// running fn if ctx ends first.
func (p *Pool) Do(ctx context.Context, fn func()) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	fn()
	return nil
}
