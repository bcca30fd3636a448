// Package parallel runs independent jobs on a fixed set of goroutines.
package parallel

import (
	"errors"
	"runtime"
	"sync"
)

type (
	Job        func() error
	SubmitFunc func(Job)
)

type Pool struct {
	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error

	// Submit queues a job. It blocks while all workers are busy and the
	// queue is full. After Wait, jobs run inline on the caller and their
	// errors show up in the next Wait.
	Submit SubmitFunc
	Wait   func() error
}

// Start returns a pool with numWorkers goroutines. numWorkers < 1 uses
// GOMAXPROCS; a single worker runs jobs inline on the submitting goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{}
	pool.Submit = pool.run
	pool.Wait = pool.result

	if numWorkers > 1 {
		jobs := make(chan Job, numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for job := range jobs {
					pool.run(job)
				}
			})
		}

		var (
			state  sync.RWMutex
			closed bool
		)
		pool.Submit = func(job Job) {
			state.RLock()
			defer state.RUnlock()
			if closed {
				pool.run(job)
				return
			}
			jobs <- job
		}

		pool.Wait = func() error {
			state.Lock()
			if !closed {
				closed = true
				close(jobs)
			}
			state.Unlock()
			pool.wg.Wait()
			return pool.result()
		}
	}

	return pool
}

func (p *Pool) run(job Job) {
	if err := job(); err != nil {
		p.mu.Lock()
		p.errs = append(p.errs, err)
		p.mu.Unlock()
	}
}

func (p *Pool) result() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}
