package litepool

import "sync"

// mailbox is the dispatch queue shared by every worker in a pool. It is
// unbounded, so send never blocks, and receive hands each message to exactly
// one of the workers parked on it. A mutex and condition variable guard the
// queue; the lock is released before a dequeued task runs, so a slow task
// never holds up the other workers.
type mailbox struct {
	mu    sync.Mutex
	avail *sync.Cond
	queue []message
}

func newMailbox() *mailbox {
	m := &mailbox{}
	m.avail = sync.NewCond(&m.mu)
	return m
}

// send enqueues msg. Safe for any number of concurrent producers; messages
// from a single producer stay in submission order.
func (m *mailbox) send(msg message) {
	m.mu.Lock()
	m.queue = append(m.queue, msg)
	m.mu.Unlock()

	m.avail.Signal()
}

// receive blocks the calling worker until a message is available, then
// removes and returns it.
func (m *mailbox) receive() message {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.queue) == 0 {
		m.avail.Wait()
	}

	msg := m.queue[0]
	m.queue = m.queue[1:]
	return msg
}

// pending reports how many messages are queued but not yet claimed.
func (m *mailbox) pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
