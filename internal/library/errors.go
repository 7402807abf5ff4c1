package library

import "errors"

// Errors returned by library operations.
var (
	ErrEmptyTitle      = errors.New("book title is empty")
	ErrEmptyMember     = errors.New("member name is empty")
	ErrDuplicate       = errors.New("book already in catalogue")
	ErrNotFound        = errors.New("book not found")
	ErrAlreadyBorrowed = errors.New("book already borrowed")
	ErrNotBorrowed     = errors.New("book was not borrowed")
	ErrNotBorrower     = errors.New("book is borrowed by another member")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")

	// ErrConflict is returned when the book changed hands since the action
	// being undone or redone.
	ErrConflict = errors.New("book changed since the action")
)
