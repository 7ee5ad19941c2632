// Package parallel runs batch work over a fixed set of workers. With a
// single worker it degrades to direct synchronous calls, so callers need no
// separate serial path.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc submits one unit of work.
	WorkerFunc func(func())
	// WaitFunc blocks until submitted work has drained; done additionally
	// shuts the pool down first.
	WaitFunc func(done bool)
)

// Pool fans submitted closures out to its workers. The zero value is not
// usable; construct with Start.
type Pool struct {
	wg   sync.WaitGroup
	work chan func()
	stop func()
}

// Start launches a pool with the given number of workers, defaulting to
// GOMAXPROCS when numWorkers is below 1. A single-worker pool executes
// submissions inline.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{stop: func() {}}
	if numWorkers == 1 {
		return p
	}

	p.work = make(chan func(), numWorkers)
	p.stop = sync.OnceFunc(func() { close(p.work) })

	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for f := range p.work {
				f()
			}
		}()
	}

	return p
}

// Do runs f on the pool, inline when the pool is single-worker.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait blocks until all submitted work has finished. With done set the pool
// also stops accepting work; further Do calls would panic.
func (p *Pool) Wait(done bool) {
	if done {
		p.stop()
	}
	p.wg.Wait()
}
