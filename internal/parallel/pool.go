// Package parallel provides a bounded worker pool used to contract
// independent contractor networks concurrently. Each submitted task owns
// its own network; the pool never shares a network between goroutines.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// WorkerPool manages a fixed set of goroutines that execute submitted tasks.
// Submission blocks when every worker is busy and the buffer is full, which
// bounds memory when many networks are queued at once.
type WorkerPool struct {
	maxWorkers   int
	taskChan     chan func()
	workerWg     sync.WaitGroup
	taskWg       sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If maxWorkers is 0 or negative, it defaults to the number of CPU cores.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		maxWorkers:   maxWorkers,
		taskChan:     make(chan func(), maxWorkers*2), // Buffered channel for backpressure
		shutdownChan: make(chan struct{}),
	}

	for i := 0; i < maxWorkers; i++ {
		pool.workerWg.Add(1)
		go pool.worker()
	}

	return pool
}

// Workers returns the number of worker goroutines.
func (wp *WorkerPool) Workers() int {
	return wp.maxWorkers
}

// worker is the main worker loop that processes tasks from the channel.
func (wp *WorkerPool) worker() {
	defer wp.workerWg.Done()

	for {
		select {
		case task := <-wp.taskChan:
			task()
		case <-wp.shutdownChan:
			return
		}
	}
}

// Submit submits a task to the worker pool for execution.
// If the pool is full, this call will block until a worker becomes available.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	if task == nil {
		return fmt.Errorf("parallel: nil task")
	}
	select {
	case <-wp.shutdownChan:
		return ErrPoolShutdown
	default:
	}

	wp.taskWg.Add(1)
	wrapped := func() {
		defer wp.taskWg.Done()
		task()
	}

	select {
	case wp.taskChan <- wrapped:
		return nil
	case <-ctx.Done():
		wp.taskWg.Done()
		return ctx.Err()
	case <-wp.shutdownChan:
		wp.taskWg.Done()
		return ErrPoolShutdown
	}
}

// Wait blocks until every task accepted by Submit has returned.
func (wp *WorkerPool) Wait() {
	wp.taskWg.Wait()
}

// Shutdown stops the workers after the tasks already running complete.
// Tasks still buffered are discarded, so call Wait first to drain them.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		close(wp.shutdownChan)
		wp.workerWg.Wait()
	})
}

// ErrPoolShutdown is returned when trying to submit tasks to a shutdown pool.
var ErrPoolShutdown = fmt.Errorf("worker pool has been shutdown")
