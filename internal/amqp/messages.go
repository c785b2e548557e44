package amqp

import (
	"encoding/json"
	"time"
)

// LedgerSyncMessage announces that the ledger changed and mirrors should
// refresh. It carries no row data: consumers reload the store, so a lost
// or reordered message only delays convergence.
type LedgerSyncMessage struct {
	Revision  int64     `json:"revision"`
	Records   int       `json:"records"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerSyncMessage creates a sync message for the given revision and
// record count.
func NewLedgerSyncMessage(revision int64, records int) *LedgerSyncMessage {
	return &LedgerSyncMessage{
		Revision:  revision,
		Records:   records,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerSyncMessageFromJSON creates a message from JSON bytes.
func LedgerSyncMessageFromJSON(data []byte) (*LedgerSyncMessage, error) {
	var msg LedgerSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
