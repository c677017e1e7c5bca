// Package notify holds the single transient status message shown after an
// action, and dismisses it after a fixed delay.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultDelay is how long a message stays visible.
const DefaultDelay = 2000 * time.Millisecond

// Notifier keeps at most one message and at most one dismissal timer.
// A new Notify replaces both.
type Notifier struct {
	mu       sync.Mutex
	delay    time.Duration
	message  string
	timer    *time.Timer
	gen      uint64
	stopped  bool
	dispatch func(func())
	onExpire func(message string)
	logger   *zap.Logger
}

type Option func(*Notifier)

// WithDispatch routes timer expiry through dispatch instead of running it on
// the timer goroutine. The session uses this to run expiry on its event loop.
func WithDispatch(dispatch func(func())) Option {
	return func(n *Notifier) { n.dispatch = dispatch }
}

// WithOnExpire registers a hook called after a message was dismissed by its timer.
func WithOnExpire(fn func(message string)) Option {
	return func(n *Notifier) { n.onExpire = fn }
}

func New(delay time.Duration, logger *zap.Logger, opts ...Option) *Notifier {
	if delay <= 0 {
		delay = DefaultDelay
	}
	n := &Notifier{
		delay:    delay,
		logger:   logger,
		dispatch: func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify shows message and restarts the dismissal countdown.
func (n *Notifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stopped {
		return
	}

	n.cancelLocked()
	n.message = message
	gen := n.gen
	n.timer = time.AfterFunc(n.delay, func() {
		n.dispatch(func() { n.expire(gen) })
	})
	n.logger.Debug("Notification set", zap.String("message", message), zap.Duration("delay", n.delay))
}

// expire clears the message if no Notify or Clear happened since timer gen
// was scheduled.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if n.stopped || gen != n.gen {
		n.mu.Unlock()
		return
	}
	message := n.message
	n.message = ""
	n.timer = nil
	n.gen++
	hook := n.onExpire
	n.mu.Unlock()

	if hook != nil {
		hook(message)
	}
}

// cancelLocked stops the outstanding timer and invalidates one that already
// fired but has not run yet.
func (n *Notifier) cancelLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
}

// Clear dismisses the current message right away. Safe to call repeatedly.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelLocked()
	n.message = ""
}

// Stop cancels any pending dismissal and ignores later calls to Notify.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelLocked()
	n.stopped = true
}

// Message returns the message currently shown, or "" when none is.
func (n *Notifier) Message() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.message
}

// Pending reports whether a dismissal timer is outstanding.
func (n *Notifier) Pending() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.timer != nil
}

func (n *Notifier) Delay() time.Duration {
	return n.delay
}
