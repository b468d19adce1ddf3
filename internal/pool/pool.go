// Package pool runs jobs on a fixed number of worker goroutines fed from
// one shared FIFO queue.
package pool

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/atomic"

	"github.com/Brownie44l1/httpd/internal/logger"
)

const DefaultQueueSize = 1024

var (
	ErrInvalidSize = errors.New("pool size must be at least 1")
	ErrPoolClosed  = errors.New("pool closed")
	ErrNilJob      = errors.New("nil job")
)

// Job is a self-contained unit of work.
type Job func()

type Option func(*Pool)

// WithQueueSize bounds the number of jobs waiting for a worker. Execute
// blocks while the queue is full.
func WithQueueSize(n int) Option {
	return func(p *Pool) {
		if n >= 0 {
			p.queueSize = n
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		p.logger = l
	}
}

type Pool struct {
	size      int
	queueSize int
	logger    logger.Logger

	jobs chan Job
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	submitted atomic.Int64
	completed atomic.Int64
	panicked  atomic.Int64
	busy      atomic.Int32
}

// New starts size workers.
func New(size int, opts ...Option) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	p := &Pool{
		size:      size,
		queueSize: DefaultQueueSize,
		logger:    logger.NullLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}

	p.jobs = make(chan Job, p.queueSize)
	p.wg.Add(size)
	for id := 0; id < size; id++ {
		go p.worker(id)
	}
	return p, nil
}

// Execute queues job for the next free worker.
func (p *Pool) Execute(job Job) error {
	if job == nil {
		return ErrNilJob
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	p.submitted.Inc()
	p.jobs <- job
	return nil
}

// Close stops accepting jobs, lets the workers drain the queue and waits
// for them to exit. Calling it more than once is a no-op.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) Size() int {
	return p.size
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for job := range p.jobs {
		p.run(id, job)
	}
}

// run isolates a panicking job so the worker keeps serving the queue.
func (p *Pool) run(id int, job Job) {
	p.busy.Inc()
	defer func() {
		p.busy.Dec()
		p.completed.Inc()
		if r := recover(); r != nil {
			p.panicked.Inc()
			p.logger.Error("job panicked",
				logger.F("worker", id),
				logger.F("panic", fmt.Sprint(r)),
				logger.F("stack", string(debug.Stack())),
			)
		}
	}()

	job()
}

// Stats is a point-in-time view of the pool counters.
type Stats struct {
	Workers   int
	Busy      int32
	Queued    int
	Submitted int64
	Completed int64
	Panicked  int64
}

func (p *Pool) Stats() Stats {
	return Stats{
		Workers:   p.size,
		Busy:      p.busy.Load(),
		Queued:    len(p.jobs),
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Panicked:  p.panicked.Load(),
	}
}
