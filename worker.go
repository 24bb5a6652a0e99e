package litepool

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Worker is a single long-lived worker. It loops over the shared mailbox and
// either runs the task it dequeued or exits when it dequeues a stop message.
type Worker struct {
	// the worker id
	id string

	// mailbox from which the worker consumes work
	inbox *mailbox

	// used to signal the pool that the worker has exited
	wg *sync.WaitGroup

	log *slog.Logger

	stats *Stats

	// recorder is told about every finished invocation; never nil
	recorder Recorder
}

func newWorker(id string, inbox *mailbox, wg *sync.WaitGroup, log *slog.Logger, stats *Stats, recorder Recorder) *Worker {
	return &Worker{
		id:       id,
		wg:       wg,
		log:      log,
		inbox:    inbox,
		stats:    stats,
		recorder: recorder,
	}
}

// Start runs the worker loop. It returns only after the worker dequeues a
// stop message; a task fault never ends the loop.
func (w *Worker) Start() {
	w.log.Info(fmt.Sprintf("starting worker %s", w.id))

	defer func() {
		w.wg.Done()
		w.log.Info(fmt.Sprintf("worker %s has been stopped", w.id))
	}()

	for {
		msg := w.inbox.receive()
		if msg.kind == msgStop {
			return
		}

		w.invoke(msg.task)
	}
}

// invoke runs one task, containing any panic so a misbehaving task cannot
// kill the worker and shrink the pool's capacity.
func (w *Worker) invoke(t Task) {
	var (
		started  = time.Now()
		panicked bool
		err      error
	)

	defer func() {
		if r := recover(); r != nil {
			panicked = true
			err = fmt.Errorf("task panicked: %v", r)
			w.stats.panicked.Add(1)
			w.log.Error(fmt.Sprintf("worker %s recovered a task panic", w.id), "panic", fmt.Sprint(r))
		}

		if err != nil {
			w.stats.failed.Add(1)
		} else {
			w.stats.completed.Add(1)
		}

		w.recorder.Record(Execution{
			WorkerId: w.id,
			Duration: time.Since(started),
			Err:      err,
			Panicked: panicked,
		})
	}()

	w.log.Debug(fmt.Sprintf("worker %s now working on a task", w.id))

	err = t.Execute()
	if err != nil {
		w.log.Error(fmt.Sprintf("worker %s failed to execute task: %s", w.id, err.Error()))
		t.OnFailure(err)
	}
}
