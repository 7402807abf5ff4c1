// Package actionlog provides an undo/redo log of reversible actions.
//
// The log is a coordinator, not an executor: it records what was done and
// hands actions back on undo and redo, but never runs effect code itself.
// Callers pair a forward and an inverse payload when recording, then apply
// whichever payload the log returns. Key concepts:
//
// # Actions
//
// An Action is a tagged value with a Kind, a Forward payload (reapply), an
// Inverse payload (revert) and the time it was originally performed:
//
//	a := actionlog.NewAction("borrow book", borrowed, available)
//
// # Log
//
// Log keeps two stacks, applied and undone, both most-recent-last:
//
//	l := actionlog.New[Change]()
//	l.Record(a)
//
//	if a, ok := l.Undo(); ok {
//	    apply(a.Inverse)
//	}
//	if a, ok := l.Redo(); ok {
//	    apply(a.Forward)
//	}
//
// Recording a new action discards the redo trail. Undo and redo on an empty
// stack return ok == false and leave the log untouched.
//
// # Concurrency
//
// Log does no locking and must have a single owner. Synchronized wraps a Log
// with a mutex for callers that share one between goroutines.
package actionlog
