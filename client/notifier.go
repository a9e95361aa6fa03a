package client

import (
	"sync"
	"time"
)

// DefaultNotificationDelay is how long an error message stays visible.
const DefaultNotificationDelay = 5 * time.Second

// afterFunc schedules f after d and returns a function that cancels it.
type afterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Notifier holds one transient message. Showing a new message replaces the
// current one and restarts the clear timer; there is no queue.
type Notifier struct {
	mu      sync.Mutex
	message string
	gen     uint64
	stop    func() bool
	delay   time.Duration
	after   afterFunc
}

func NewNotifier(delay time.Duration) *Notifier {
	if delay <= 0 {
		delay = DefaultNotificationDelay
	}
	return &Notifier{delay: delay, after: realAfterFunc}
}

func (n *Notifier) Show(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.stop != nil {
		n.stop()
	}
	n.gen++
	gen := n.gen
	n.message = message
	n.stop = n.after(n.delay, func() { n.expire(gen) })
}

// expire clears the message only if it is still the one gen scheduled; a
// timer that fired while being stopped must not clear a newer message.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.gen != gen {
		return
	}
	n.message = ""
	n.stop = nil
}

func (n *Notifier) Message() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.message
}

// Close cancels a pending clear without touching the message
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stop != nil {
		n.stop()
		n.stop = nil
	}
}
