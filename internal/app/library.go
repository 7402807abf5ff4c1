package app

import (
	"io"

	"github.com/dshills/actionlog/internal/library"
)

// runLibrary drives a library session for member.
func (a *App) runLibrary(in io.Reader, out io.Writer, member string, prompt bool) error {
	lib, err := a.Library()
	if err != nil {
		return err
	}
	if member == "" {
		member = a.cfg.Library.Member
	}
	m, err := lib.Member(member)
	if err != nil {
		return err
	}

	s := newSession("library", in, out)
	s.prompt = prompt

	list := func(books []library.Book) {
		if len(books) == 0 {
			s.printf("(no books)\n")
		}
		for _, b := range books {
			s.printf("  %s\n", b)
		}
	}

	s.handle("list", "list", "show the catalogue", func(string) error {
		var books []library.Book
		for b := range lib.Books() {
			books = append(books, b)
		}
		list(books)
		return nil
	})
	s.handle("add", "add <title> | <author>", "add a book", func(args string) error {
		title, author, ok := splitPair(args)
		if !ok {
			return usage("add <title> | <author>")
		}
		if _, err := lib.Add(title, author); err != nil {
			return err
		}
		s.printf("Added: %s\n", title)
		return nil
	})
	s.handle("search", "search <keyword>", "find books by title or author", func(args string) error {
		if args == "" {
			return usage("search <keyword>")
		}
		list(lib.Search(args))
		return nil
	})
	s.handle("borrow", "borrow <title>", "borrow a book", func(args string) error {
		b, err := m.Borrow(args)
		if err != nil {
			return err
		}
		s.printf("Borrowed: %s\n", b)
		return nil
	})
	s.handle("return", "return <title>", "return a borrowed book", func(args string) error {
		b, err := m.Return(args)
		if err != nil {
			return err
		}
		s.printf("Returned: %s\n", b)
		return nil
	})
	s.handle("undo", "undo", "undo your last borrow or return", func(string) error {
		b, err := m.Undo()
		if err != nil {
			return err
		}
		s.printf("Undone: %s\n", b)
		return nil
	})
	s.handle("redo", "redo", "redo your last undone action", func(string) error {
		b, err := m.Redo()
		if err != nil {
			return err
		}
		s.printf("Redone: %s\n", b)
		return nil
	})
	s.handle("history", "history", "show your actions, oldest first", func(string) error {
		n := 0
		for act := range m.Actions() {
			b, _ := lib.Book(act.Forward.Book)
			n++
			s.printf("  %d. %s: %s\n", n, act.Kind, b.Title)
		}
		if n == 0 {
			s.printf("(no actions)\n")
		}
		return nil
	})
	s.handle("member", "member <name>", "act as another member", func(args string) error {
		if args == "" {
			s.printf("Member: %s\n", m.Name())
			return nil
		}
		next, err := lib.Member(args)
		if err != nil {
			return err
		}
		m = next
		s.printf("Member: %s\n", m.Name())
		return nil
	})

	return s.run()
}
