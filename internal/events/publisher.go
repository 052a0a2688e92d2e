package events

import (
	"context"
	"log/slog"

	"github.com/TeemuStew/expense-tracker/internal/core"
	"github.com/TeemuStew/expense-tracker/internal/store"
)

// Publisher is the subset of Client used by the publishing store.
type Publisher interface {
	PublishExpenseChange(ctx context.Context, id int64, op string) error
}

// PublishingStore wraps a store and publishes a change message after each
// successful mutation. Publish failures are logged and swallowed; the local
// write already committed and must not be rolled back for a broker hiccup.
type PublishingStore struct {
	inner     store.Store
	publisher Publisher
}

var _ store.Store = (*PublishingStore)(nil)

// WrapStore decorates s with change publishing. A nil publisher returns s
// unchanged, so callers can wire it unconditionally.
func WrapStore(s store.Store, p Publisher) store.Store {
	if p == nil {
		return s
	}
	return &PublishingStore{inner: s, publisher: p}
}

func (s *PublishingStore) Create(ctx context.Context, e core.Expense) (int64, error) {
	id, err := s.inner.Create(ctx, e)
	if err != nil {
		return 0, err
	}
	s.publish(ctx, id, OpCreated)
	return id, nil
}

func (s *PublishingStore) ListAll(ctx context.Context) ([]core.Expense, error) {
	return s.inner.ListAll(ctx)
}

func (s *PublishingStore) Update(ctx context.Context, id int64, e core.Expense) error {
	if err := s.inner.Update(ctx, id, e); err != nil {
		return err
	}
	s.publish(ctx, id, OpUpdated)
	return nil
}

func (s *PublishingStore) Delete(ctx context.Context, id int64) error {
	if err := s.inner.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, OpDeleted)
	return nil
}

func (s *PublishingStore) publish(ctx context.Context, id int64, op string) {
	if err := s.publisher.PublishExpenseChange(ctx, id, op); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			"id", id, "op", op, "error", err)
	}
}
