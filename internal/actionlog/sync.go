package actionlog

import (
	"iter"
	"slices"
	"sync"
)

// Synchronized wraps a Log with a mutex so it can be shared by several
// goroutines. Each method holds the lock for the duration of one log call;
// callers that need undo plus effect application to be atomic must hold
// their own lock around both.
type Synchronized[P any] struct {
	mu  sync.Mutex
	log *Log[P]
}

// NewSynchronized creates a synchronized wrapper around a new log.
func NewSynchronized[P any](opts ...Option[P]) *Synchronized[P] {
	return &Synchronized[P]{log: New(opts...)}
}

// Record appends an action and discards the redo trail.
func (s *Synchronized[P]) Record(a Action[P]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Record(a)
}

// Undo moves the most recent applied action onto the undone stack.
func (s *Synchronized[P]) Undo() (Action[P], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Undo()
}

// Redo moves the most recently undone action back onto the applied stack.
func (s *Synchronized[P]) Redo() (Action[P], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Redo()
}

// History returns the applied actions in chronological order.
// Each range takes a snapshot under the lock and yields from it unlocked.
func (s *Synchronized[P]) History() iter.Seq[Action[P]] {
	return func(yield func(Action[P]) bool) {
		s.mu.Lock()
		snapshot := slices.Clone(s.log.applied)
		s.mu.Unlock()

		for _, a := range snapshot {
			if !yield(a) {
				return
			}
		}
	}
}

// PeekUndo returns the action the next Undo would return.
func (s *Synchronized[P]) PeekUndo() (Action[P], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.PeekUndo()
}

// PeekRedo returns the action the next Redo would return.
func (s *Synchronized[P]) PeekRedo() (Action[P], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.PeekRedo()
}

// UndoCount returns the number of actions that can be undone.
func (s *Synchronized[P]) UndoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.UndoCount()
}

// RedoCount returns the number of actions that can be redone.
func (s *Synchronized[P]) RedoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.RedoCount()
}

// State reports which stacks hold actions.
func (s *Synchronized[P]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.State()
}

// Clear removes all undo/redo history.
func (s *Synchronized[P]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Clear()
}
