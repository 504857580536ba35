package amqp

import (
	"encoding/json"
	"time"
)

// SheetRefreshMessage asks the worker to refetch a user's sheets from the
// upstream source and persist fresh snapshots. It carries only the user
// key; the worker resolves everything else from its own configuration.
type SheetRefreshMessage struct {
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSheetRefreshMessage creates a refresh request for one user
func NewSheetRefreshMessage(user string) *SheetRefreshMessage {
	return &SheetRefreshMessage{
		User:      user,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SheetRefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SheetRefreshMessageFromJSON creates a message from JSON bytes
func SheetRefreshMessageFromJSON(data []byte) (*SheetRefreshMessage, error) {
	var msg SheetRefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
