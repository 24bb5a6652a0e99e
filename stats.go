package litepool

import "sync/atomic"

// Stats holds the pool's running counters. All fields are updated atomically
// by the workers and the submit path.
type Stats struct {
	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	panicked  atomic.Int64
}

// StatsSnapshot is a point-in-time copy of the pool counters.
type StatsSnapshot struct {
	// Submitted counts tasks accepted by Execute
	Submitted int64

	// Completed counts invocations whose Execute returned nil
	Completed int64

	// Failed counts invocations that returned an error or panicked
	Failed int64

	// Panicked counts the subset of Failed that panicked
	Panicked int64
}

func (s *Stats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		Submitted: s.submitted.Load(),
		Completed: s.completed.Load(),
		Failed:    s.failed.Load(),
		Panicked:  s.panicked.Load(),
	}
}
