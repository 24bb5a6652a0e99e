package litepool

type messageKind int

const (
	// msgRun carries a task for whichever worker dequeues it
	msgRun messageKind = iota

	// msgStop tells the receiving worker to exit its loop
	msgStop
)

// message is what travels over the dispatch mailbox: either a task to run
// or a stop signal. Exactly one stop is sent per worker during shutdown.
type message struct {
	kind messageKind
	task Task
}

func runMessage(t Task) message {
	return message{kind: msgRun, task: t}
}

func stopMessage() message {
	return message{kind: msgStop}
}
