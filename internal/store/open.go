package store

import "fmt"

const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Open returns the Store for the named backend. redisAddr and redisPrefix are
// only used by the redis backend.
func Open(backend, redisAddr, redisPrefix string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendBadger:
		return NewBadgerStore()
	case BackendRedis:
		return NewRedisStore(redisAddr, redisPrefix)
	default:
		return nil, fmt.Errorf("unknown backend %q (use %q, %q or %q)", backend, BackendMemory, BackendBadger, BackendRedis)
	}
}
