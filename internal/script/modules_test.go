package script

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/actionlog/internal/chat"
	"github.com/dshills/actionlog/internal/library"
	"github.com/dshills/actionlog/internal/route"
)

func run(t *testing.T, code string, mods ...Module) string {
	t.Helper()
	var out bytes.Buffer
	s := newTestState(t, WithOutput(&out))
	require.NoError(t, s.Load(mods...))
	require.NoError(t, s.DoString(context.Background(), code))
	return out.String()
}

func TestLibraryModule(t *testing.T) {
	lib := library.New()
	out := run(t, `
		library.add("Python Programming", "Guido van Rossum")
		library.add("Clean Code", "Robert C. Martin")
		local _, err = library.add("clean code", "x")
		print(err)

		local b = library.borrow("Clean Code")
		print(b.title, b.borrower)

		local _, err = library.borrow("Clean Code", "bob")
		print(err)

		print(library.undo().available)
		print(library.redo().borrower)
		print(#library.history())
		print(library.history()[1])

		for _, b in ipairs(library.books()) do print(b.title) end
		print(#library.search("code"), library.find("missing"))
		local _, err = library.undo("bob")
		print(err)
	`, NewLibraryModule(lib, "ana"))

	assert.Equal(t, `book already in catalogue: "clean code"
Clean Code	ana
book already borrowed: "Clean Code"
true
ana
1
borrow book: Clean Code
Clean Code
Python Programming
1	nil
nothing to undo
`, out)
}

func TestLibraryModuleRejectsBlankMember(t *testing.T) {
	lib := library.New()
	_, err := lib.Add("Clean Code", "Robert C. Martin")
	require.NoError(t, err)

	out := run(t, `
		print(library.borrow("Clean Code", ""))
		print(library.undo("  "))
		print(library.history(""))
		print(library.find("Clean Code").available)
	`, NewLibraryModule(lib, "ana"))

	assert.Equal(t, `nil	member name is empty
nil	member name is empty
nil	member name is empty
true
`, out)
}

func TestRouteModule(t *testing.T) {
	r := route.NewCircular(
		route.Station{Name: "North", MinutesToNext: 4},
		route.Station{Name: "East", MinutesToNext: 3},
		route.Station{Name: "South", MinutesToNext: 5},
		route.Station{Name: "West", MinutesToNext: 2},
	)
	out := run(t, `
		print(route.current().name)
		print(route.next().name, route.next(2).name)
		print(route.prev().name)
		print(route.jump("West"), route.jump("Central"))
		print(route.eta("South"), route.eta("Central"))
		print(route.moves())
		print(route.back().name)
		print(route.forward().name)
		local _, err = route.forward()
		print(err)
		print(route.show())
	`, NewRouteModule(route.NewCursor(r, "North")))

	assert.Equal(t, `North
East	West
South
true	false
9	nil
4
South
West
no move to redo
North <-> East <-> South <-> West  (loops)
`, out)
}

func TestChatModule(t *testing.T) {
	m := chat.NewManager()
	s, err := m.Session("ana")
	require.NoError(t, err)

	out := run(t, `
		print(chat.state())
		chat.send("Hi")
		chat.send("Bye")
		print(chat.undo().text)
		print(chat.state())
		print(chat.redo().text)
		local _, err = chat.redo()
		print(err)
		print(chat.deliver("ben", "yo").direction)
		print(chat.receive())
		print(#chat.transcript())
		local _, err = chat.send("  ")
		print(err)
	`, NewChatModule(m, s))

	assert.Equal(t, `empty
Bye
has-both
Bye
no unsent message to redo
in
1
3
message is empty
`, out)
}
