package library

import (
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/dshills/actionlog/internal/logging"
	"github.com/dshills/actionlog/internal/metrics"
)

// Library is a catalogue of books kept in title order.
// It is not safe for concurrent use.
type Library struct {
	nodes []node
	head  BookID

	members map[string]*Member

	logger  log.Logger
	metrics *metrics.Metrics
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(lib *Library) {
		lib.logger = logging.OrNop(logger)
	}
}

// WithMetrics counts member log operations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(lib *Library) {
		lib.metrics = m
	}
}

// New creates an empty library.
func New(opts ...Option) *Library {
	lib := &Library{
		head:    none,
		members: make(map[string]*Member),
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(lib)
	}
	return lib
}

// Add inserts a book in alphabetical order by title, ignoring case.
func (lib *Library) Add(title, author string) (BookID, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return none, ErrEmptyTitle
	}
	if _, ok := lib.find(title); ok {
		return none, fmt.Errorf("%w: %q", ErrDuplicate, title)
	}

	id := BookID(len(lib.nodes))
	lib.nodes = append(lib.nodes, node{
		book: Book{ID: id, Title: title, Author: strings.TrimSpace(author)},
		next: none,
	})

	key := strings.ToLower(title)
	if lib.head == none || strings.ToLower(lib.nodes[lib.head].book.Title) > key {
		lib.nodes[id].next = lib.head
		lib.head = id
	} else {
		cur := lib.head
		for next := lib.nodes[cur].next; next != none && strings.ToLower(lib.nodes[next].book.Title) < key; next = lib.nodes[cur].next {
			cur = next
		}
		lib.nodes[id].next = lib.nodes[cur].next
		lib.nodes[cur].next = id
	}

	level.Info(lib.logger).Log("msg", "book added", "title", title, "author", author)
	return id, nil
}

// Book returns the book with the given id.
func (lib *Library) Book(id BookID) (Book, bool) {
	if id < 0 || int(id) >= len(lib.nodes) {
		return Book{}, false
	}
	return lib.nodes[id].book, true
}

// Find looks a book up by title, ignoring case.
func (lib *Library) Find(title string) (Book, bool) {
	id, ok := lib.find(title)
	if !ok {
		return Book{}, false
	}
	return lib.nodes[id].book, true
}

// Search returns books whose title or author contains keyword, ignoring case,
// in catalogue order.
func (lib *Library) Search(keyword string) []Book {
	keyword = strings.ToLower(keyword)
	var found []Book
	for b := range lib.Books() {
		if strings.Contains(strings.ToLower(b.Title), keyword) ||
			strings.Contains(strings.ToLower(b.Author), keyword) {
			found = append(found, b)
		}
	}
	return found
}

// Books returns the catalogue in title order.
func (lib *Library) Books() iter.Seq[Book] {
	return func(yield func(Book) bool) {
		for id := lib.head; id != none; id = lib.nodes[id].next {
			if !yield(lib.nodes[id].book) {
				return
			}
		}
	}
}

// Len returns the number of books in the catalogue.
func (lib *Library) Len() int {
	return len(lib.nodes)
}

// Member returns the member with the given name, creating it on first use.
// Names are trimmed; a blank name is ErrEmptyMember, since an empty borrower
// means the book is on the shelf.
func (lib *Library) Member(name string) (*Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyMember
	}
	if m, ok := lib.members[name]; ok {
		return m, nil
	}
	m := newMember(lib, name)
	lib.members[name] = m
	return m, nil
}

// Members returns the member names in sorted order.
func (lib *Library) Members() []string {
	names := make([]string, 0, len(lib.members))
	for name := range lib.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (lib *Library) find(title string) (BookID, bool) {
	title = strings.TrimSpace(title)
	for id := lib.head; id != none; id = lib.nodes[id].next {
		if strings.EqualFold(lib.nodes[id].book.Title, title) {
			return id, true
		}
	}
	return none, false
}

func (lib *Library) setBorrower(id BookID, borrower string) Book {
	lib.nodes[id].book.Borrower = borrower
	return lib.nodes[id].book
}
