// Package websocket file: websocket/broadcast.go
package websocket

import (
	"encoding/json"

	"irontrack/logger"
	"irontrack/models"
)

// feedEvent pairs a serialized message with the user it belongs to.
type feedEvent struct {
	email   string
	payload []byte
}

var broadcast = make(chan feedEvent, 64)

// HandleMessages listens on the broadcast channel and delivers each
// event to the owning user's connections only. Run once from main.
func HandleMessages() {
	for {
		event := <-broadcast

		connMu.Lock()
		for c := range connections {
			if c.email != event.email {
				continue
			}
			select {
			case c.send <- event.payload:
			default:
				logger.Warn.Printf("Dropping feed message for connection %v", c.conn.RemoteAddr())
			}
		}
		connMu.Unlock()
	}
}

// NotifyEntryCreated pushes a newly created entry to the owner's feed.
// Called from the exercise controller after a successful create; a full
// broadcast channel simply drops the event.
func NotifyEntryCreated(email string, entry *models.Exercise) {
	msg, err := json.Marshal(map[string]interface{}{
		"action": "entryCreated",
		"entry":  entry,
	})
	if err != nil {
		logger.Error.Printf("NotifyEntryCreated: marshal error: %v", err)
		return
	}

	select {
	case broadcast <- feedEvent{email: email, payload: msg}:
	default:
		logger.Warn.Printf("NotifyEntryCreated: feed backlog full, dropping event for %s", email)
	}
}
