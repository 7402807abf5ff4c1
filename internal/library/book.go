package library

import "fmt"

// BookID addresses a book in the catalogue arena.
type BookID int

// none marks the end of the list.
const none BookID = -1

// Book is a catalogue entry.
type Book struct {
	ID       BookID
	Title    string
	Author   string
	Borrower string // Empty when the book is on the shelf
}

// Available reports whether the book can be borrowed.
func (b Book) Available() bool {
	return b.Borrower == ""
}

// String formats the book for listings.
func (b Book) String() string {
	status := "Available"
	if !b.Available() {
		status = "Borrowed by " + b.Borrower
	}
	return fmt.Sprintf("%s by %s [%s]", b.Title, b.Author, status)
}

type node struct {
	book Book
	next BookID
}
