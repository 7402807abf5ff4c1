package library

import (
	"fmt"
	"iter"

	"github.com/go-kit/log/level"

	"github.com/dshills/actionlog/internal/actionlog"
	"github.com/dshills/actionlog/internal/metrics"
)

// Action kinds recorded by members.
const (
	KindBorrow actionlog.Kind = "borrow book"
	KindReturn actionlog.Kind = "return book"
)

// Change is the payload of a member action: the borrower a book should have
// once the effect is applied. An empty Borrower puts the book on the shelf.
type Change struct {
	Book     BookID
	Borrower string
}

// Member borrows and returns books and can undo or redo those actions.
type Member struct {
	name string
	lib  *Library
	log  *actionlog.Log[Change]
}

func newMember(lib *Library, name string) *Member {
	return &Member{
		name: name,
		lib:  lib,
		log:  actionlog.New(actionlog.WithObserver(metrics.Observer[Change](lib.metrics, "library"))),
	}
}

// Name returns the member's name.
func (m *Member) Name() string {
	return m.name
}

// Borrow takes a book off the shelf.
func (m *Member) Borrow(title string) (Book, error) {
	id, ok := m.lib.find(title)
	if !ok {
		return Book{}, fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	if b := m.lib.nodes[id].book; !b.Available() {
		return Book{}, fmt.Errorf("%w: %q", ErrAlreadyBorrowed, b.Title)
	}

	book := m.lib.setBorrower(id, m.name)
	m.log.Record(actionlog.NewAction(KindBorrow,
		Change{Book: id, Borrower: m.name},
		Change{Book: id, Borrower: ""},
	))

	level.Info(m.lib.logger).Log("msg", "book borrowed", "member", m.name, "title", book.Title)
	return book, nil
}

// Return puts a book the member borrowed back on the shelf.
func (m *Member) Return(title string) (Book, error) {
	id, ok := m.lib.find(title)
	if !ok {
		return Book{}, fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	b := m.lib.nodes[id].book
	if b.Available() {
		return Book{}, fmt.Errorf("%w: %q", ErrNotBorrowed, b.Title)
	}
	if b.Borrower != m.name {
		return Book{}, fmt.Errorf("%w: %q", ErrNotBorrower, b.Title)
	}

	book := m.lib.setBorrower(id, "")
	m.log.Record(actionlog.NewAction(KindReturn,
		Change{Book: id, Borrower: ""},
		Change{Book: id, Borrower: m.name},
	))

	level.Info(m.lib.logger).Log("msg", "book returned", "member", m.name, "title", book.Title)
	return book, nil
}

// Undo reverts the member's most recent borrow or return.
// It returns ErrConflict, leaving the log untouched, if the book no longer
// holds the state the action left it in.
func (m *Member) Undo() (Book, error) {
	a, ok := m.log.PeekUndo()
	if !ok {
		m.log.Undo() // Counted by observers as an empty undo
		return Book{}, ErrNothingToUndo
	}
	if err := m.check(a, a.Forward); err != nil {
		return Book{}, err
	}

	a, _ = m.log.Undo()
	book := m.lib.setBorrower(a.Inverse.Book, a.Inverse.Borrower)

	level.Info(m.lib.logger).Log("msg", "undo", "member", m.name, "kind", a.Kind, "title", book.Title)
	return book, nil
}

// Redo reapplies the member's most recently undone borrow or return.
func (m *Member) Redo() (Book, error) {
	a, ok := m.log.PeekRedo()
	if !ok {
		m.log.Redo()
		return Book{}, ErrNothingToRedo
	}
	if err := m.check(a, a.Inverse); err != nil {
		return Book{}, err
	}

	a, _ = m.log.Redo()
	book := m.lib.setBorrower(a.Forward.Book, a.Forward.Borrower)

	level.Info(m.lib.logger).Log("msg", "redo", "member", m.name, "kind", a.Kind, "title", book.Title)
	return book, nil
}

// Actions returns the member's applied actions, oldest first.
func (m *Member) Actions() iter.Seq[actionlog.Action[Change]] {
	return m.log.History()
}

// CanUndo returns true if the member has an action to undo.
func (m *Member) CanUndo() bool {
	return m.log.CanUndo()
}

// CanRedo returns true if the member has an action to redo.
func (m *Member) CanRedo() bool {
	return m.log.CanRedo()
}

// check verifies the book still holds the expected state before an action
// is moved between stacks.
func (m *Member) check(a actionlog.Action[Change], expect Change) error {
	b := m.lib.nodes[expect.Book].book
	if b.Borrower == expect.Borrower {
		return nil
	}
	m.lib.metrics.Conflict("library")
	level.Warn(m.lib.logger).Log("msg", "conflict", "member", m.name, "kind", a.Kind, "title", b.Title, "borrower", b.Borrower)
	return fmt.Errorf("%w: %s %q", ErrConflict, a.Kind, b.Title)
}
