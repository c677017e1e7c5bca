package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testDelay = 30 * time.Millisecond

func TestNotifier_ClearsAfterDelay(t *testing.T) {
	var mu sync.Mutex
	var expired []string
	n := New(testDelay, zap.NewNop(), WithOnExpire(func(msg string) {
		mu.Lock()
		expired = append(expired, msg)
		mu.Unlock()
	}))

	n.Notify("X")
	assert.Equal(t, "X", n.Message())
	assert.True(t, n.Pending())

	assert.Eventually(t, func() bool { return n.Message() == "" }, time.Second, 5*time.Millisecond)
	assert.False(t, n.Pending())

	// Never comes back on its own
	time.Sleep(3 * testDelay)
	assert.Equal(t, "", n.Message())

	mu.Lock()
	assert.Equal(t, []string{"X"}, expired)
	mu.Unlock()
}

func TestNotifier_NotifyRestartsCountdown(t *testing.T) {
	n := New(100*time.Millisecond, zap.NewNop())

	n.Notify("first")
	time.Sleep(60 * time.Millisecond)
	n.Notify("second")

	// The first timer would have fired by now
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, "second", n.Message())

	assert.Eventually(t, func() bool { return n.Message() == "" }, time.Second, 5*time.Millisecond)
}

func TestNotifier_StaleExpiryIgnored(t *testing.T) {
	// Hold expiries until we release them, to simulate a timer that fired
	// while a newer Notify was being handled.
	var mu sync.Mutex
	var queued []func()
	n := New(testDelay, zap.NewNop(), WithDispatch(func(fn func()) {
		mu.Lock()
		queued = append(queued, fn)
		mu.Unlock()
	}))

	n.Notify("old")
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(queued) == 1
	}, time.Second, 5*time.Millisecond)

	n.Notify("new")
	mu.Lock()
	stale := queued[0]
	mu.Unlock()
	stale()

	assert.Equal(t, "new", n.Message(), "expiry of the replaced message must not clear the new one")
	assert.True(t, n.Pending())
}

func TestNotifier_ClearIsIdempotent(t *testing.T) {
	n := New(testDelay, zap.NewNop())
	n.Clear()
	assert.Equal(t, "", n.Message())

	n.Notify("Published.")
	n.Clear()
	n.Clear()
	assert.Equal(t, "", n.Message())
	assert.False(t, n.Pending())
}

func TestNotifier_StopCancelsTimer(t *testing.T) {
	fired := make(chan string, 1)
	n := New(testDelay, zap.NewNop(), WithOnExpire(func(msg string) { fired <- msg }))

	n.Notify("Rejected.")
	n.Stop()
	assert.False(t, n.Pending())

	n.Notify("after stop")
	assert.Equal(t, "Rejected.", n.Message(), "Notify after Stop is ignored")

	select {
	case msg := <-fired:
		t.Fatalf("timer fired after Stop: %q", msg)
	case <-time.After(3 * testDelay):
	}
}

func TestNew_DefaultDelay(t *testing.T) {
	assert.Equal(t, 2*time.Second, New(0, zap.NewNop()).Delay())
	assert.Equal(t, testDelay, New(testDelay, zap.NewNop()).Delay())
}
