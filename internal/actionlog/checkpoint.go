package actionlog

// Checkpoint represents a point in history that can be returned to.
type Checkpoint struct {
	depth int
}

// Depth returns the number of applied actions at the checkpoint.
func (cp Checkpoint) Depth() int {
	return cp.depth
}

// Checkpoint creates a checkpoint at the current history position.
func (l *Log[P]) Checkpoint() Checkpoint {
	return Checkpoint{depth: len(l.applied)}
}

// UndoTo undoes actions until the applied depth is back at the checkpoint.
// It returns the undone actions in the order they were undone, so callers
// apply their Inverse payloads front to back.
func (l *Log[P]) UndoTo(cp Checkpoint) []Action[P] {
	var moved []Action[P]
	for len(l.applied) > cp.depth {
		a, ok := l.Undo()
		if !ok {
			break
		}
		moved = append(moved, a)
	}
	return moved
}

// RedoTo redoes actions until the applied depth reaches the checkpoint.
// This only reaches the checkpoint if the redo trail still holds the
// actions; a Record since the checkpoint was taken discards them.
func (l *Log[P]) RedoTo(cp Checkpoint) []Action[P] {
	var moved []Action[P]
	for len(l.applied) < cp.depth {
		a, ok := l.Redo()
		if !ok {
			break
		}
		moved = append(moved, a)
	}
	return moved
}
