// Package worker runs bounded, rate-limited fan-out jobs.
package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type Task func(ctx context.Context) error

type Result struct {
	Index int
	Err   error
}

type Pool struct {
	workers int
	tasks   chan indexedTask
	wg      sync.WaitGroup
	limiter *rate.Limiter
	next    int
}

type indexedTask struct {
	index int
	run   Task
}

// NewPool creates a pool of workers reading from a queue of the given buffer size.
func NewPool(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan indexedTask, buffer),
	}
}

// SetRateLimit caps task starts per second across all workers. Call before Run; rps <= 0 disables it.
func (p *Pool) SetRateLimit(rps float64) {
	if p == nil {
		return
	}
	if rps <= 0 {
		p.limiter = nil
		return
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	p.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// Submit enqueues t and returns its index. Not safe for concurrent use.
func (p *Pool) Submit(t Task) int {
	if p == nil || t == nil {
		return -1
	}
	i := p.next
	p.next++
	p.tasks <- indexedTask{index: i, run: t}
	return i
}

func (p *Pool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

// Run starts the workers. The returned channel closes once the queue is drained or ctx is done.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, cap(p.tasks)+p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if p.limiter != nil {
						if err := p.limiter.Wait(ctx); err != nil {
							return
						}
					}
					err := t.run(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Index: t.index, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}

// RunAll runs fn for items 0..n-1 and returns their errors by index.
// The second result is non-nil only when ctx ended before every item ran.
func RunAll(ctx context.Context, workers int, rps float64, n int, fn func(ctx context.Context, i int) error) ([]error, error) {
	errs := make([]error, n)
	if n == 0 {
		return errs, nil
	}

	p := NewPool(workers, n)
	p.SetRateLimit(rps)
	results := p.Run(ctx)
	for i := 0; i < n; i++ {
		p.Submit(func(ctx context.Context) error { return fn(ctx, i) })
	}
	p.Close()

	seen := 0
	for r := range results {
		errs[r.Index] = r.Err
		seen++
	}
	if seen < n {
		if err := ctx.Err(); err != nil {
			return errs, err
		}
	}
	return errs, nil
}
