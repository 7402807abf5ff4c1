package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/actionlog/internal/library"
)

// LibraryModule exposes a library as the "library" global.
//
// Member-scoped functions take an optional member name as their last
// argument and fall back to the module's default member.
type LibraryModule struct {
	lib    *library.Library
	member string
}

// NewLibraryModule creates a library module acting for member by default.
func NewLibraryModule(lib *library.Library, member string) *LibraryModule {
	return &LibraryModule{lib: lib, member: member}
}

// Name returns the module name.
func (m *LibraryModule) Name() string {
	return "library"
}

// Register installs the module.
func (m *LibraryModule) Register(L *lua.LState) error {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"add":         m.add,
		"borrow":      m.borrow,
		"return_book": m.returnBook,
		"undo":        m.undo,
		"redo":        m.redo,
		"find":        m.find,
		"search":      m.search,
		"books":       m.books,
		"history":     m.history,
	})
	L.SetGlobal(m.Name(), mod)
	return nil
}

// withMember resolves the optional member argument at n and runs fn for it.
func (m *LibraryModule) withMember(L *lua.LState, n int, fn func(*library.Member) (library.Book, error)) int {
	mem, err := m.lib.Member(L.OptString(n, m.member))
	if err != nil {
		return pushError(L, err)
	}
	return pushBook(L)(fn(mem))
}

// add(title, author) -> id | nil, err
func (m *LibraryModule) add(L *lua.LState) int {
	id, err := m.lib.Add(L.CheckString(1), L.OptString(2, ""))
	if err != nil {
		return pushError(L, err)
	}
	L.Push(lua.LNumber(id))
	return 1
}

// borrow(title [, member]) -> book | nil, err
func (m *LibraryModule) borrow(L *lua.LState) int {
	title := L.CheckString(1)
	return m.withMember(L, 2, func(mem *library.Member) (library.Book, error) {
		return mem.Borrow(title)
	})
}

// return_book(title [, member]) -> book | nil, err
func (m *LibraryModule) returnBook(L *lua.LState) int {
	title := L.CheckString(1)
	return m.withMember(L, 2, func(mem *library.Member) (library.Book, error) {
		return mem.Return(title)
	})
}

// undo([member]) -> book | nil, err
func (m *LibraryModule) undo(L *lua.LState) int {
	return m.withMember(L, 1, (*library.Member).Undo)
}

// redo([member]) -> book | nil, err
func (m *LibraryModule) redo(L *lua.LState) int {
	return m.withMember(L, 1, (*library.Member).Redo)
}

// find(title) -> book | nil
func (m *LibraryModule) find(L *lua.LState) int {
	b, ok := m.lib.Find(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(bookTable(L, b))
	return 1
}

// search(keyword) -> {book...}
func (m *LibraryModule) search(L *lua.LState) int {
	t := L.NewTable()
	for _, b := range m.lib.Search(L.CheckString(1)) {
		t.Append(bookTable(L, b))
	}
	L.Push(t)
	return 1
}

// books() -> {book...} in title order
func (m *LibraryModule) books(L *lua.LState) int {
	t := L.NewTable()
	for b := range m.lib.Books() {
		t.Append(bookTable(L, b))
	}
	L.Push(t)
	return 1
}

// history([member]) -> {"borrow book: Title"...} | nil, err, oldest first
func (m *LibraryModule) history(L *lua.LState) int {
	mem, err := m.lib.Member(L.OptString(1, m.member))
	if err != nil {
		return pushError(L, err)
	}
	t := L.NewTable()
	for a := range mem.Actions() {
		b, _ := m.lib.Book(a.Forward.Book)
		t.Append(lua.LString(string(a.Kind) + ": " + b.Title))
	}
	L.Push(t)
	return 1
}

func bookTable(L *lua.LState, b library.Book) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LNumber(b.ID))
	t.RawSetString("title", lua.LString(b.Title))
	t.RawSetString("author", lua.LString(b.Author))
	t.RawSetString("available", lua.LBool(b.Available()))
	if !b.Available() {
		t.RawSetString("borrower", lua.LString(b.Borrower))
	}
	return t
}

func pushBook(L *lua.LState) func(library.Book, error) int {
	return func(b library.Book, err error) int {
		if err != nil {
			return pushError(L, err)
		}
		L.Push(bookTable(L, b))
		return 1
	}
}

// pushError follows the Lua convention of returning nil plus a message.
func pushError(L *lua.LState, err error) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	return 2
}
