package actionlog

import (
	"time"

	"github.com/google/uuid"
)

// Kind tags the operation an action performed, e.g. "send message".
type Kind string

// Action represents a single reversible operation.
// P is the payload type handed back to the caller on undo and redo.
type Action[P any] struct {
	ID        uuid.UUID
	Kind      Kind
	Forward   P         // Reapplies the action (returned by Redo)
	Inverse   P         // Reverts the action (returned by Undo)
	Timestamp time.Time // When the action was originally performed
}

// NewAction creates an action stamped with a fresh ID and the current time.
func NewAction[P any](kind Kind, forward, inverse P) Action[P] {
	return Action[P]{
		ID:        uuid.New(),
		Kind:      kind,
		Forward:   forward,
		Inverse:   inverse,
		Timestamp: time.Now(),
	}
}

// At returns a copy of the action with its timestamp replaced.
func (a Action[P]) At(t time.Time) Action[P] {
	a.Timestamp = t
	return a
}

// Info returns display data for the action.
func (a Action[P]) Info() ActionInfo {
	return ActionInfo{
		ID:        a.ID,
		Kind:      a.Kind,
		Timestamp: a.Timestamp,
	}
}

// ActionInfo provides read-only info about an action.
// Used for displaying undo/redo history to users.
type ActionInfo struct {
	ID        uuid.UUID
	Kind      Kind
	Timestamp time.Time
}
