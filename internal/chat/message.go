// Package chat manages per-user chat sessions with undoable sends.
//
// Incoming messages wait in a FIFO inbox until the session receives them.
// Outgoing messages are recorded in the session's action log, so the most
// recent send can be taken back and sent again.
package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Direction tells whether a message was sent or received.
type Direction int

const (
	// Incoming messages come from other users.
	Incoming Direction = iota
	// Outgoing messages were sent by the session's user.
	Outgoing
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Incoming:
		return "in"
	case Outgoing:
		return "out"
	default:
		return "unknown"
	}
}

// Message is one chat line.
type Message struct {
	ID        uuid.UUID
	From      string
	Text      string
	Direction Direction
	At        time.Time
}

// String formats the message for a transcript.
func (m Message) String() string {
	return fmt.Sprintf("[%s] %s: %s", m.At.Format("15:04:05"), m.From, m.Text)
}
