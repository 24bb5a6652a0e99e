package litepool

import "time"

// Retry wraps a Task so that Execute is attempted up to numTries times, with
// a fixed sleep between attempts. The wrapped task runs inside whichever
// worker dequeued it, so the sleeps occupy that worker.
type Retry struct {
	task          Task
	numTries      int
	sleepDuration time.Duration
}

func NewRetry(task Task, numTries int, sleepDuration time.Duration) *Retry {
	return &Retry{
		task:          task,
		numTries:      numTries,
		sleepDuration: sleepDuration,
	}
}

// Execute runs the wrapped task until it succeeds or numTries attempts have
// failed, returning the last error.
func (r *Retry) Execute() (err error) {
	for i := 0; i < r.numTries; i++ {
		err = r.task.Execute()
		if err == nil {
			break
		}

		if i < r.numTries-1 {
			time.Sleep(r.sleepDuration)
		}
	}

	return err
}

// OnFailure delegates to the wrapped task.
func (r *Retry) OnFailure(err error) {
	r.task.OnFailure(err)
}
