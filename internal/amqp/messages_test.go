package amqp

import (
	"testing"
	"time"
)

func TestLedgerSyncMessageJSON(t *testing.T) {
	msg := NewLedgerSyncMessage(3, 12)
	if msg.Revision != 3 || msg.Records != 12 {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if time.Since(msg.Timestamp) > time.Minute {
		t.Fatalf("stale timestamp: %v", msg.Timestamp)
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := LedgerSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Revision != msg.Revision || back.Records != msg.Records {
		t.Fatalf("round trip changed message: %+v", back)
	}

	if _, err := LedgerSyncMessageFromJSON([]byte("{")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
