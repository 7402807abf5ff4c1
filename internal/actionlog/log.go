package actionlog

import (
	"iter"

	"github.com/google/uuid"
)

// State describes which of the two stacks currently hold actions.
type State int

const (
	// Empty means nothing has been applied or undone.
	Empty State = iota
	// HasApplied means actions can be undone but not redone.
	HasApplied
	// HasBoth means actions can be undone and redone.
	HasBoth
	// HasUndone means every recorded action has been undone.
	HasUndone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case HasApplied:
		return "has-applied"
	case HasBoth:
		return "has-both"
	case HasUndone:
		return "has-undone"
	default:
		return "unknown"
	}
}

// Op identifies a log operation reported to observers.
type Op string

// Operations reported to observers.
const (
	OpRecord    Op = "record"
	OpUndo      Op = "undo"
	OpRedo      Op = "redo"
	OpEmptyUndo Op = "empty_undo"
	OpEmptyRedo Op = "empty_redo"
	OpClear     Op = "clear"
)

// Observer is called after every log operation.
// The action is the zero value for OpEmptyUndo, OpEmptyRedo and OpClear.
// Observers must not call back into the log.
type Observer[P any] func(op Op, a Action[P])

// Option configures a Log.
type Option[P any] func(*Log[P])

// WithObserver adds an observer to the log.
func WithObserver[P any](obs Observer[P]) Option[P] {
	return func(l *Log[P]) {
		if obs != nil {
			l.observers = append(l.observers, obs)
		}
	}
}

// Log manages undo/redo state for one owner.
// It is not safe for concurrent use; see Synchronized.
type Log[P any] struct {
	applied []Action[P]
	undone  []Action[P]

	observers []Observer[P]
}

// New creates an empty log.
func New[P any](opts ...Option[P]) *Log[P] {
	l := &Log[P]{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record appends an action to the applied stack.
// The redo trail is discarded unconditionally.
func (l *Log[P]) Record(a Action[P]) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	l.applied = append(l.applied, a)
	clear(l.undone)
	l.undone = l.undone[:0]
	l.notify(OpRecord, a)
}

// Undo moves the most recent applied action onto the undone stack and
// returns it. The caller applies its Inverse payload.
// Returns false, with no state change, if there is nothing to undo.
func (l *Log[P]) Undo() (Action[P], bool) {
	a, ok := pop(&l.applied)
	if !ok {
		l.notify(OpEmptyUndo, a)
		return a, false
	}
	l.undone = append(l.undone, a)
	l.notify(OpUndo, a)
	return a, true
}

// Redo moves the most recently undone action back onto the applied stack
// and returns it. The caller applies its Forward payload.
// Returns false, with no state change, if there is nothing to redo.
func (l *Log[P]) Redo() (Action[P], bool) {
	a, ok := pop(&l.undone)
	if !ok {
		l.notify(OpEmptyRedo, a)
		return a, false
	}
	l.applied = append(l.applied, a)
	l.notify(OpRedo, a)
	return a, true
}

// History returns the applied actions in chronological order.
// The sequence is read at iteration time, so each range over it sees the
// current contents. Do not mutate the log while ranging.
func (l *Log[P]) History() iter.Seq[Action[P]] {
	return func(yield func(Action[P]) bool) {
		for _, a := range l.applied {
			if !yield(a) {
				return
			}
		}
	}
}

// Undone returns the redo trail, most recently undone first.
func (l *Log[P]) Undone() iter.Seq[Action[P]] {
	return func(yield func(Action[P]) bool) {
		for i := len(l.undone) - 1; i >= 0; i-- {
			if !yield(l.undone[i]) {
				return
			}
		}
	}
}

// PeekUndo returns the action the next Undo would return, without moving it.
func (l *Log[P]) PeekUndo() (Action[P], bool) {
	return peek(l.applied)
}

// PeekRedo returns the action the next Redo would return, without moving it.
func (l *Log[P]) PeekRedo() (Action[P], bool) {
	return peek(l.undone)
}

// CanUndo returns true if undo is available.
func (l *Log[P]) CanUndo() bool {
	return len(l.applied) > 0
}

// CanRedo returns true if redo is available.
func (l *Log[P]) CanRedo() bool {
	return len(l.undone) > 0
}

// UndoCount returns the number of actions that can be undone.
func (l *Log[P]) UndoCount() int {
	return len(l.applied)
}

// RedoCount returns the number of actions that can be redone.
func (l *Log[P]) RedoCount() int {
	return len(l.undone)
}

// State reports which stacks hold actions.
func (l *Log[P]) State() State {
	switch {
	case len(l.applied) == 0 && len(l.undone) == 0:
		return Empty
	case len(l.undone) == 0:
		return HasApplied
	case len(l.applied) == 0:
		return HasUndone
	default:
		return HasBoth
	}
}

// Clear removes all undo/redo history.
func (l *Log[P]) Clear() {
	l.applied = nil
	l.undone = nil
	var zero Action[P]
	l.notify(OpClear, zero)
}

// Info returns display info for the applied actions, oldest first.
func (l *Log[P]) Info() []ActionInfo {
	result := make([]ActionInfo, len(l.applied))
	for i, a := range l.applied {
		result[i] = a.Info()
	}
	return result
}

func (l *Log[P]) notify(op Op, a Action[P]) {
	for _, obs := range l.observers {
		obs(op, a)
	}
}

func pop[P any](stack *[]Action[P]) (Action[P], bool) {
	s := *stack
	if len(s) == 0 {
		var zero Action[P]
		return zero, false
	}
	a := s[len(s)-1]
	var zero Action[P]
	s[len(s)-1] = zero
	*stack = s[:len(s)-1]
	return a, true
}

func peek[P any](stack []Action[P]) (Action[P], bool) {
	if len(stack) == 0 {
		var zero Action[P]
		return zero, false
	}
	return stack[len(stack)-1], true
}
