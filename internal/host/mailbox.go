package host

import "sync"

// Mailbox queues messages posted from any goroutine for the loop goroutine.
// A queued Resize is replaced by a newer one.
type Mailbox struct {
	mu     sync.Mutex
	queue  []Message
	notify chan struct{}
}

func NewMailbox() *Mailbox {
	return &Mailbox{notify: make(chan struct{}, 1)}
}

// Post never blocks.
func (m *Mailbox) Post(msg Message) {
	m.mu.Lock()
	if _, ok := msg.(Resize); ok {
		kept := m.queue[:0]
		for _, q := range m.queue {
			if _, stale := q.(Resize); !stale {
				kept = append(kept, q)
			}
		}
		m.queue = kept
	}
	m.queue = append(m.queue, msg)
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// C receives a value whenever messages may be waiting.
func (m *Mailbox) C() <-chan struct{} { return m.notify }

// Drain returns the queued messages in posting order and empties the queue.
func (m *Mailbox) Drain() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.queue
	m.queue = nil
	return out
}

func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
