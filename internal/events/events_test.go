package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TeemuStew/expense-tracker/internal/core"
	"github.com/TeemuStew/expense-tracker/internal/store/memory"
)

func TestExpenseChangeMessageRoundTrip(t *testing.T) {
	msg := NewExpenseChangeMessage(42, OpUpdated)
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := ExpenseChangeMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != 42 || got.Op != OpUpdated {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if !got.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("timestamp changed: %v != %v", got.Timestamp, msg.Timestamp)
	}
}

func TestExpenseChangeMessageFromJSONInvalid(t *testing.T) {
	if _, err := ExpenseChangeMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

type recordingPublisher struct {
	published []ExpenseChangeMessage
	fail      bool
}

func (p *recordingPublisher) PublishExpenseChange(ctx context.Context, id int64, op string) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, ExpenseChangeMessage{ID: id, Op: op, Timestamp: time.Now()})
	return nil
}

func testExpense(desc string) core.Expense {
	return core.Expense{
		Description: desc,
		Amount:      core.Money{Cents: 450},
		Date:        core.NewDate(2024, 3, 2),
		Category:    "food",
	}
}

func TestPublishingStorePublishesAfterMutations(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	s := WrapStore(memory.New(), pub)

	id, err := s.Create(ctx, testExpense("Coffee"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Update(ctx, id, testExpense("Espresso")); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{OpCreated, OpUpdated, OpDeleted}
	if len(pub.published) != len(want) {
		t.Fatalf("published %d messages, want %d", len(pub.published), len(want))
	}
	for i, op := range want {
		if pub.published[i].Op != op || pub.published[i].ID != id {
			t.Fatalf("message %d = %+v, want op %s for id %d", i, pub.published[i], op, id)
		}
	}
}

func TestPublishingStoreSkipsFailedMutations(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	s := WrapStore(memory.New(), pub)

	if _, err := s.Create(ctx, core.Expense{Description: "", Amount: core.Money{Cents: 1}, Date: core.NewDate(2024, 1, 1)}); err == nil {
		t.Fatal("expected validation error")
	}
	if err := s.Delete(ctx, 99); err == nil {
		t.Fatal("expected not-found error")
	}
	if len(pub.published) != 0 {
		t.Fatalf("published %d messages for failed mutations", len(pub.published))
	}
}

func TestPublishingStoreSwallowsPublishErrors(t *testing.T) {
	ctx := context.Background()
	s := WrapStore(memory.New(), &recordingPublisher{fail: true})

	id, err := s.Create(ctx, testExpense("Coffee"))
	if err != nil {
		t.Fatalf("create should succeed despite publish failure, got %v", err)
	}
	items, err := s.ListAll(ctx)
	if err != nil || len(items) != 1 || items[0].ID != id {
		t.Fatalf("record not stored: %v %v", items, err)
	}
}

func TestWrapStoreNilPublisher(t *testing.T) {
	inner := memory.New()
	if got := WrapStore(inner, nil); got != inner {
		t.Fatal("nil publisher should return the store unchanged")
	}
}
