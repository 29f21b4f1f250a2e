package application

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Task is one unit of detached routing work.
type Task func(ctx context.Context)

// Dispatcher is the fire-and-forget policy: the webhook submits routing work
// and returns immediately; whatever the task does (including panicking) never
// reaches the HTTP caller.
type Dispatcher interface {
	Submit(task Task)
}

// PoolDispatcher runs tasks on a fixed worker pool over a bounded queue.
// When the queue is full the update is dropped and logged; Telegram will not
// see an error either way.
type PoolDispatcher struct {
	queue   chan Task
	workers int
	log     *zerolog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewPoolDispatcher(workers, queueSize int, logger *zerolog.Logger) *PoolDispatcher {
	if workers <= 0 {
		workers = 8
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	return &PoolDispatcher{
		queue:   make(chan Task, queueSize),
		workers: workers,
		log:     logger,
	}
}

// Start launches the workers. They drain the queue until ctx is cancelled
// via Stop.
func (p *PoolDispatcher) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case task := <-p.queue:
					p.run(ctx, task)
				}
			}
		}()
	}
}

func (p *PoolDispatcher) run(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Msg("routing panic swallowed")
		}
	}()
	task(ctx)
}

// Submit enqueues a task without blocking.
func (p *PoolDispatcher) Submit(task Task) {
	select {
	case p.queue <- task:
	default:
		p.log.Warn().Msg("dispatch queue full, update dropped")
	}
}

// Stop cancels the workers and waits for in-flight tasks.
func (p *PoolDispatcher) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// SyncDispatcher runs tasks inline; tests use it to observe effects
// deterministically.
type SyncDispatcher struct{}

func (SyncDispatcher) Submit(task Task) {
	defer func() {
		_ = recover()
	}()
	task(context.Background())
}
