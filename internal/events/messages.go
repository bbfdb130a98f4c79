package events

import (
	"encoding/json"
	"time"
)

const (
	ActionAdded   = "added"
	ActionUpdated = "updated"
	ActionRemoved = "removed"
)

// RecordChangedMessage announces one record mutation. It carries only
// the id and action; consumers fetch current state from the store, which
// keeps the message valid under last-write-wins.
type RecordChangedMessage struct {
	RecordID  string    `json:"record_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordChangedMessage(recordID, action string) *RecordChangedMessage {
	return &RecordChangedMessage{
		RecordID:  recordID,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *RecordChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordChangedMessageFromJSON(data []byte) (*RecordChangedMessage, error) {
	var msg RecordChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
