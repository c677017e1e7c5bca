package store

import (
	"context"
	"errors"

	"frustration-list/internal/model"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("item not found")
)

// Store holds the published and pending collections, each ordered newest first.
// An item ID lives in at most one of them; Publish moves, never copies.
type Store interface {
	// Reset drops everything and publishes seed in the given order.
	Reset(ctx context.Context, seed []model.Item) error
	// AddPending puts item at the head of the pending queue.
	AddPending(ctx context.Context, item *model.Item) error
	// Publish moves a pending item to the head of published. ErrNotFound if
	// the item is not pending.
	Publish(ctx context.Context, id uuid.UUID) (*model.Item, error)
	// Discard removes a pending item for good. ErrNotFound if it is not pending.
	Discard(ctx context.Context, id uuid.UUID) (*model.Item, error)
	Published(ctx context.Context) ([]model.Item, error)
	Pending(ctx context.Context) ([]model.Item, error)
	Close() error
}
