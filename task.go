package litepool

// A Task is a single-invocation unit of work. It is handed to exactly one
// worker and invoked at most once; any state it captures must be owned by the
// task (no unsynchronized shared mutable state).
type Task interface {
	// Execute performs the work
	Execute() error

	// OnFailure handles any error returned from Execute()
	OnFailure(error)
}

// The TaskFunc type is an adapter to allow the use of ordinary functions as
// a Task. If f is a function with the appropriate signature, TaskFunc(f) is
// a Task that calls f and discards any failure.
type TaskFunc func() error

// Execute calls f()
func (f TaskFunc) Execute() error { return f() }

// OnFailure does nothing; wrap the function in your own Task when the error
// needs handling.
func (f TaskFunc) OnFailure(error) {}
