package sse

import (
	"strings"
	"testing"
	"time"
)

func recvMsg(t *testing.T, ch chan []byte) string {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("client channel closed unexpectedly")
		}
		return string(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return ""
	}
}

func TestBroker_PublishRecordEvent(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishRecordEvent("created", "gear", "boss-bd-2-blues-driver")

	msg := recvMsg(t, ch)
	if !strings.Contains(msg, "event: record.created") {
		t.Errorf("event type missing: %q", msg)
	}
	if !strings.Contains(msg, `"kind":"gear"`) || !strings.Contains(msg, `"slug":"boss-bd-2-blues-driver"`) {
		t.Errorf("event data missing: %q", msg)
	}

	b.PublishRecordEvent("deleted", "gear", "boss-bd-2-blues-driver")
	if msg := recvMsg(t, ch); !strings.Contains(msg, "event: record.deleted") {
		t.Errorf("unexpected event: %q", msg)
	}
}

func TestBroker_UnknownOpDropped(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishRecordEvent("chmod", "gear", "x")
	b.PublishRecordEvent("updated", "gear", "x")

	// Only the valid op reaches the client.
	msg := recvMsg(t, ch)
	if !strings.Contains(msg, "event: record.updated") {
		t.Errorf("unexpected event: %q", msg)
	}
}

func TestBroker_SubscribeUnsubscribe(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch1 := b.Subscribe()
	ch2 := b.Subscribe()

	deadline := time.After(2 * time.Second)
	for b.ClientCount() != 2 {
		select {
		case <-deadline:
			t.Fatalf("client count = %d, want 2", b.ClientCount())
		default:
			time.Sleep(time.Millisecond)
		}
	}

	b.Unsubscribe(ch1)
	if _, ok := <-ch1; ok {
		t.Error("unsubscribed channel should be closed")
	}

	b.Unsubscribe(ch2)
}

func TestBroker_SubscribeAfterClose(t *testing.T) {
	b := NewBroker()
	b.Close()

	ch := b.Subscribe()
	if _, ok := <-ch; ok {
		t.Error("subscribe after close must return a closed channel")
	}
	if n := b.ClientCount(); n != 0 {
		t.Errorf("client count after close = %d", n)
	}

	// These must not panic or block.
	b.PublishRecordEvent("created", "gear", "x")
	b.Publish(Event{Type: "noop"})
	b.Close()
}
