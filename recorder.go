package litepool

import "time"

// Execution describes one finished task invocation. It is what a worker
// reports to the pool's Recorder after each run message, whether the task
// succeeded, returned an error, or panicked.
type Execution struct {
	// WorkerId identifies the worker that ran the task, e.g. "worker_3"
	WorkerId string

	// Duration is how long Execute ran
	Duration time.Duration

	// Err is the error returned by Execute, or the recovered panic value
	// wrapped as an error; nil on success
	Err error

	// Panicked is true when the task panicked and the worker recovered it
	Panicked bool
}

// A Recorder is notified after every task invocation. Implementations must be
// safe for concurrent use, since every worker in the pool calls it.
//
// The journal package provides a sqlite-backed Recorder.
type Recorder interface {
	Record(Execution)
}
