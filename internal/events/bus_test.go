package events

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/Vexflip/skiset-reservation/internal/db/gen"
)

type memStore struct {
	inserted []dbgen.InsertDomainEventParams
	err      error
}

func (m *memStore) InsertDomainEvent(_ context.Context, arg dbgen.InsertDomainEventParams) error {
	if m.err != nil {
		return m.err
	}
	m.inserted = append(m.inserted, arg)
	return nil
}

type recordingNotifier struct {
	events []dbgen.DomainEvent
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, ev dbgen.DomainEvent) error {
	n.events = append(n.events, ev)
	return n.err
}

func validAggregate() pgtype.UUID {
	return pgtype.UUID{Bytes: [16]byte{7}, Valid: true}
}

func TestEmitPersistsAndNotifies(t *testing.T) {
	store := &memStore{}
	notifier := &recordingNotifier{}
	bus := &Bus{Store: store, Notifiers: []Notifier{notifier}}

	ev, err := bus.Emit(context.Background(), TopicReservationCreated, validAggregate(), map[string]any{"finalPrice": 180.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("expected one persisted event, got %d", len(store.inserted))
	}
	if len(notifier.events) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.events))
	}
	if ev.Topic != TopicReservationCreated {
		t.Fatalf("unexpected topic %q", ev.Topic)
	}
}

func TestEmitNotifierErrorDoesNotDropEvent(t *testing.T) {
	store := &memStore{}
	failing := &recordingNotifier{err: errors.New("smtp down")}
	trailing := &recordingNotifier{}
	bus := &Bus{Store: store, Notifiers: []Notifier{failing, trailing}}

	_, err := bus.Emit(context.Background(), TopicReservationCreated, validAggregate(), nil)
	if err == nil {
		t.Fatal("expected joined notifier error")
	}
	if len(store.inserted) != 1 {
		t.Fatalf("event must persist despite notifier failure, got %d", len(store.inserted))
	}
	if len(trailing.events) != 1 {
		t.Fatalf("fanout must continue past a failing notifier, got %d", len(trailing.events))
	}
}

func TestEmitRejectsEmptyTopic(t *testing.T) {
	bus := &Bus{Store: &memStore{}}
	if _, err := bus.Emit(context.Background(), "  ", validAggregate(), nil); err == nil {
		t.Fatal("expected error for empty topic")
	}
}

func TestEmitRejectsInvalidJSONString(t *testing.T) {
	bus := &Bus{Store: &memStore{}}
	if _, err := bus.Emit(context.Background(), TopicReservationCreated, validAggregate(), "{broken"); err == nil {
		t.Fatal("expected error for invalid json payload")
	}
}
