// Package session owns the catalog state for one running instance: the item
// collections (through a store.Store), the UI selection state and the
// notification. All reads and mutations run one at a time on a single event
// loop, so every handler runs to completion before the next one starts.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"frustration-list/internal/catalog"
	"frustration-list/internal/model"
	"frustration-list/internal/notify"
	"frustration-list/internal/store"

	"go.uber.org/zap"
)

var ErrClosed = errors.New("session closed")

// Draft is the content of the submit form.
type Draft struct {
	Text     string
	Category model.Category
	Impact   model.Impact
}

type Session struct {
	store    store.Store
	logger   *zap.Logger
	notifier *notify.Notifier
	now      func() time.Time
	delay    time.Duration

	events chan func()
	done   chan struct{}

	// Owned by the event loop.
	view   model.View
	filter catalog.Filter
	draft  Draft
}

type Option func(*Session)

// WithNotifyDelay overrides how long notifications stay visible.
func WithNotifyDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

// WithClock replaces time.Now for item timestamps and seeding.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(st store.Store, logger *zap.Logger, opts ...Option) *Session {
	s := &Session{
		store:  st,
		logger: logger,
		now:    time.Now,
		delay:  notify.DefaultDelay,
		events: make(chan func()),
		done:   make(chan struct{}),
		view:   model.ViewTop,
		filter: catalog.Filter{Category: model.CategoryAll},
		draft: Draft{
			Category: model.DefaultCategory,
			Impact:   model.DefaultImpact,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.notifier = notify.New(s.delay, logger,
		notify.WithDispatch(s.dispatch),
		notify.WithOnExpire(func(msg string) {
			s.logger.Debug("Notification dismissed", zap.String("message", msg))
		}),
	)
	return s
}

// Run seeds the catalog and then processes events until ctx is cancelled.
// Teardown cancels any outstanding notification timer. Calls made after Run
// returned fail with ErrClosed.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)

	seed := model.SeedItems(s.now())
	if err := s.store.Reset(ctx, seed); err != nil {
		s.notifier.Stop()
		return fmt.Errorf("seed catalog: %w", err)
	}
	s.logger.Info("Session started. Catalog seeded.", zap.Int("published", len(seed)))

	for {
		select {
		case <-ctx.Done():
			s.notifier.Stop()
			s.logger.Info("Session shutting down")
			return nil
		case fn := <-s.events:
			fn()
		}
	}
}

// Done is closed once Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// do runs fn on the event loop and waits for it to finish.
func (s *Session) do(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	event := func() {
		defer close(ran)
		fn()
	}

	select {
	case s.events <- event:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	// The loop runs an accepted event to completion.
	<-ran
	return nil
}

// dispatch hands notification expiry to the event loop. Dropped when the
// session is gone.
func (s *Session) dispatch(fn func()) {
	select {
	case s.events <- fn:
	case <-s.done:
	}
}
