// Package library tracks a catalogue of books that members borrow and return.
//
// Books are kept in title order in a singly linked list. The list lives in an
// arena: nodes are addressed by BookID and link to each other by index, so a
// BookID stays valid for the life of the catalogue.
//
// Every member owns an action log of their borrows and returns, and can undo
// or redo them one at a time:
//
//	lib := library.New()
//	lib.Add("Clean Code", "Robert C. Martin")
//
//	alice, _ := lib.Member("alice")
//	alice.Borrow("clean code")
//	alice.Undo() // the book is available again
//
// Members share the catalogue, so an undo can collide with another member's
// later action. Undo and Redo check the book still holds the state the action
// left it in and return ErrConflict instead of overwriting it.
package library
