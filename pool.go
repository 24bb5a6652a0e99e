package litepool

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

var (
	// ErrZeroWorkers is returned by New when the requested worker count is zero.
	ErrZeroWorkers = errors.New("pool cannot be initialised with zero workers")

	// ErrPoolClosed is returned by Execute once Shutdown has been initiated.
	ErrPoolClosed = errors.New("worker pool is not active")
)

// Pool owns a fixed set of workers and the mailbox they consume from. The
// worker count is immutable after New; a Pool cannot be reused once Shutdown
// has been initiated.
type Pool struct {
	// mailbox from which workers consume work
	inbox *mailbox

	workers []*Worker

	// ensure the pool can only be stopped once
	stop sync.Once

	// closed when shutdown is initiated, so Execute can reject new work
	quit chan struct{}

	wg *sync.WaitGroup

	log *slog.Logger

	stats *Stats

	recorder Recorder
}

// An Option configures a Pool at construction time.
type Option func(*Pool)

// WithLogger sets the logger the pool and its workers log to.
func WithLogger(log *slog.Logger) Option {
	return func(p *Pool) {
		p.log = log
	}
}

// WithRecorder sets the Recorder notified after every task invocation.
func WithRecorder(r Recorder) Option {
	return func(p *Pool) {
		p.recorder = r
	}
}

// nopRecorder is the default Recorder
type nopRecorder struct{}

func (nopRecorder) Record(Execution) {}

// New constructs a Pool of exactly workers workers, all pulling from one
// shared mailbox, and starts them. It fails only when workers is zero.
func New(workers int, opts ...Option) (*Pool, error) {
	if workers < 1 {
		return nil, ErrZeroWorkers
	}

	p := &Pool{
		inbox:    newMailbox(),
		workers:  make([]*Worker, workers),
		quit:     make(chan struct{}),
		wg:       &sync.WaitGroup{},
		stop:     sync.Once{},
		stats:    &Stats{},
		recorder: nopRecorder{},
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.log == nil {
		p.log = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}

	p.startWorkers()

	return p, nil
}

func (p *Pool) startWorkers() {
	for i := 0; i < len(p.workers); i++ {
		w := newWorker(fmt.Sprintf("worker_%d", i+1), p.inbox, p.wg, p.log, p.stats, p.recorder)
		p.workers[i] = w
		p.wg.Add(1)
		go w.Start()
	}
}

// Execute submits a task for some idle worker to eventually run. It never
// blocks (the mailbox is unbounded) and gives no synchronous confirmation of
// completion. It is only valid before Shutdown has been called.
func (p *Pool) Execute(t Task) error {
	select {
	case <-p.quit:
		return ErrPoolClosed
	default:
	}

	p.stats.submitted.Add(1)
	p.inbox.send(runMessage(t))
	return nil
}

// Shutdown sends exactly one stop message per worker, then blocks until every
// worker goroutine has exited. A worker mid-task finishes that task first, so
// Shutdown never deadlocks; it may however beat queued tasks to a worker,
// since the queue is not flushed first. Callers needing drain-then-stop must
// submit all work before calling Shutdown. Calling Shutdown more than once is
// a no-op.
func (p *Pool) Shutdown() error {
	p.stop.Do(func() {
		p.log.Info("stopping worker pool")

		// reject new work
		close(p.quit)

		// tell each worker to stop consuming
		for range p.workers {
			p.inbox.send(stopMessage())
		}

		// wait for all of them to clean themselves up
		p.wg.Wait()

		p.log.Info("worker pool has been stopped")
	})
	return nil
}

// Size returns the pool's worker count, fixed at construction.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() StatsSnapshot {
	return p.stats.snapshot()
}
