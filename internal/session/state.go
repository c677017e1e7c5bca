package session

import (
	"context"

	"frustration-list/internal/catalog"
	"frustration-list/internal/model"

	"go.uber.org/zap"
)

// Snapshot is a consistent read of the whole session state.
type Snapshot struct {
	View         model.View     `json:"view"`
	Filter       catalog.Filter `json:"filter"`
	Draft        Draft          `json:"draft"`
	Notification string         `json:"notification"`
	Published    []model.Item   `json:"published"`
	Pending      []model.Item   `json:"pending"`
	// Filtered is Published narrowed by Filter. Derived on every read.
	Filtered []model.Item `json:"filtered"`
}

func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	var (
		snap   Snapshot
		result error
	)
	err := s.do(ctx, func() {
		published, err := s.store.Published(ctx)
		if err != nil {
			result = err
			return
		}
		pending, err := s.store.Pending(ctx)
		if err != nil {
			result = err
			return
		}
		snap = Snapshot{
			View:         s.view,
			Filter:       s.filter,
			Draft:        s.draft,
			Notification: s.notifier.Message(),
			Published:    published,
			Pending:      pending,
			Filtered:     catalog.Apply(published, s.filter),
		}
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, result
}

func (s *Session) Published(ctx context.Context) ([]model.Item, error) {
	var (
		items  []model.Item
		result error
	)
	if err := s.do(ctx, func() { items, result = s.store.Published(ctx) }); err != nil {
		return nil, err
	}
	return items, result
}

// Top is the "Top this week" list: every published item in insertion order.
func (s *Session) Top(ctx context.Context) ([]model.Item, error) {
	return s.Published(ctx)
}

func (s *Session) Pending(ctx context.Context) ([]model.Item, error) {
	var (
		items  []model.Item
		result error
	)
	if err := s.do(ctx, func() { items, result = s.store.Pending(ctx) }); err != nil {
		return nil, err
	}
	return items, result
}

// Filtered returns the published items matching the current category filter
// and search query.
func (s *Session) Filtered(ctx context.Context) ([]model.Item, error) {
	var (
		items  []model.Item
		result error
	)
	err := s.do(ctx, func() {
		var published []model.Item
		published, result = s.store.Published(ctx)
		if result == nil {
			items = catalog.Apply(published, s.filter)
		}
	})
	if err != nil {
		return nil, err
	}
	return items, result
}

func (s *Session) Notification(ctx context.Context) (string, error) {
	var msg string
	err := s.do(ctx, func() { msg = s.notifier.Message() })
	return msg, err
}

// Notify shows message as the current notification.
func (s *Session) Notify(ctx context.Context, message string) error {
	return s.do(ctx, func() { s.notifier.Notify(message) })
}

// ClearNotification dismisses the current notification, if any.
func (s *Session) ClearNotification(ctx context.Context) error {
	return s.do(ctx, func() { s.notifier.Clear() })
}

func (s *Session) View(ctx context.Context) (model.View, error) {
	var v model.View
	err := s.do(ctx, func() { v = s.view })
	return v, err
}

func (s *Session) SetView(ctx context.Context, v model.View) error {
	return s.do(ctx, func() {
		s.view = v
		s.logger.Debug("View changed", zap.String("view", string(v)))
	})
}

// SetFilter replaces the category filter. model.CategoryAll disables it.
func (s *Session) SetFilter(ctx context.Context, c model.Category) error {
	return s.do(ctx, func() { s.filter.Category = c })
}

func (s *Session) SetQuery(ctx context.Context, q string) error {
	return s.do(ctx, func() { s.filter.Query = q })
}

// SetDraft records the submit form as currently typed.
func (s *Session) SetDraft(ctx context.Context, d Draft) error {
	return s.do(ctx, func() { s.draft = d })
}
