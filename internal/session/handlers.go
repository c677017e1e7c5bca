package session

import (
	"context"
	"errors"
	"fmt"

	"frustration-list/internal/model"
	"frustration-list/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MsgSubmitted = "Submitted. Pending review."
	MsgPublished = "Published."
	MsgRejected  = "Rejected."
)

// Submit validates the input and queues a new item for moderation.
//
// A *model.ValidationError is returned when the text is too short (or the
// category/impact are out of range); the message is shown as a notification
// and nothing else changes, the draft included. On success the draft text is
// cleared and the view switches to Admin.
func (s *Session) Submit(ctx context.Context, rawText string, category model.Category, impact model.Impact) (*model.Item, error) {
	var (
		item   model.Item
		result error
	)
	err := s.do(ctx, func() {
		var err error
		item, err = model.NewItem(rawText, category, impact, s.now())
		if err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				s.notifier.Notify(verr.Message)
			}
			s.logger.Debug("Submission rejected", zap.Error(err))
			result = err
			return
		}

		if err := s.store.AddPending(ctx, &item); err != nil {
			s.logger.Error("Failed to queue submission", zap.Error(err))
			result = fmt.Errorf("queue submission: %w", err)
			return
		}

		s.draft.Text = ""
		s.notifier.Notify(MsgSubmitted)
		s.view = model.ViewAdmin
		s.logger.Info("Submission queued",
			zap.String("item_id", item.ID.String()),
			zap.String("category", string(item.Category)),
			zap.Int("impact", int(item.Impact)))
	})
	if err != nil {
		return nil, err
	}
	if result != nil {
		return nil, result
	}
	return &item, nil
}

// Approve publishes a pending item. It reports false, without error or
// notification, if id is no longer pending.
func (s *Session) Approve(ctx context.Context, id uuid.UUID) (bool, error) {
	var (
		ok     bool
		result error
	)
	err := s.do(ctx, func() {
		logger := s.logger.With(zap.String("item_id", id.String()))

		_, err := s.store.Publish(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			logger.Debug("Approve ignored: item not pending")
			return
		} else if err != nil {
			logger.Error("Failed to publish", zap.Error(err))
			result = fmt.Errorf("publish %s: %w", id, err)
			return
		}

		ok = true
		s.notifier.Notify(MsgPublished)
		logger.Info("Item published")
	})
	if err != nil {
		return false, err
	}
	return ok, result
}

// Reject discards a pending item for good. It reports false if id is no
// longer pending; the notification is shown either way.
func (s *Session) Reject(ctx context.Context, id uuid.UUID) (bool, error) {
	var (
		ok     bool
		result error
	)
	err := s.do(ctx, func() {
		logger := s.logger.With(zap.String("item_id", id.String()))

		_, err := s.store.Discard(ctx, id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			logger.Debug("Reject ignored: item not pending")
		case err != nil:
			logger.Error("Failed to reject", zap.Error(err))
			result = fmt.Errorf("reject %s: %w", id, err)
			return
		default:
			ok = true
			logger.Info("Item rejected")
		}
		s.notifier.Notify(MsgRejected)
	})
	if err != nil {
		return false, err
	}
	return ok, result
}
