package pipeline

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrQueueFull    = errors.New("pipeline queue is full")
	ErrShuttingDown = errors.New("pipeline is shutting down")
)

type WorkerPool struct {
	workers    int
	taskQueue  chan *Job
	workerFunc func(context.Context, *Job)
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewWorkerPool(workers, queueSize int, workerFunc func(context.Context, *Job)) *WorkerPool {
	if queueSize <= 0 {
		queueSize = workers * 2
	}
	return &WorkerPool{
		workers:    workers,
		taskQueue:  make(chan *Job, queueSize),
		workerFunc: workerFunc,
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx)
	}
}

// TrySubmit enqueues job without blocking.
func (wp *WorkerPool) TrySubmit(job *Job) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return ErrShuttingDown
	}
	select {
	case wp.taskQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop rejects new jobs, lets workers drain the queue and waits for them.
func (wp *WorkerPool) Stop() {
	wp.mu.Lock()
	if !wp.closed {
		wp.closed = true
		close(wp.taskQueue)
	}
	wp.mu.Unlock()

	wp.wg.Wait()
}

func (wp *WorkerPool) worker(ctx context.Context) {
	defer wp.wg.Done()

	for {
		select {
		case job, ok := <-wp.taskQueue:
			if !ok {
				return
			}
			wp.workerFunc(ctx, job)

		case <-ctx.Done():
			return
		}
	}
}
