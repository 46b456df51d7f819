package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublishAndSubscribe(t *testing.T) {
	bus := NewBus(discardLogger())
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs, err := bus.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	want := AuthEvent{Type: TypeLogin, Identifier: "prof1", Role: "преподаватель"}
	if err := bus.Publish(want); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case msg := <-msgs:
		var got AuthEvent
		if err := json.Unmarshal(msg.Payload, &got); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if got.Type != TypeLogin || got.Identifier != "prof1" {
			t.Errorf("event = %+v", got)
		}
		if got.OccurredAt.IsZero() {
			t.Error("OccurredAt not stamped")
		}
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestPublishWithoutSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus(discardLogger())
	defer bus.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			bus.Publish(AuthEvent{Type: TypeLogout})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked without subscriber")
	}
}

func TestRunAuditLogConsumes(t *testing.T) {
	bus := NewBus(discardLogger())
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := bus.RunAuditLog(ctx, discardLogger()); err != nil {
		t.Fatalf("RunAuditLog: %v", err)
	}

	if err := bus.Publish(AuthEvent{Type: TypeApprove, UserID: 5}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	// the subscriber acks asynchronously; closing cleanly is the assertion
	time.Sleep(50 * time.Millisecond)
}
