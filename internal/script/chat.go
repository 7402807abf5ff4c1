package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/actionlog/internal/chat"
)

// ChatModule exposes a chat session as the "chat" global.
type ChatModule struct {
	manager *chat.Manager
	session *chat.Session
}

// NewChatModule creates a chat module acting as the session's user.
func NewChatModule(manager *chat.Manager, session *chat.Session) *ChatModule {
	return &ChatModule{manager: manager, session: session}
}

// Name returns the module name.
func (m *ChatModule) Name() string {
	return "chat"
}

// Register installs the module.
func (m *ChatModule) Register(L *lua.LState) error {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"send":       m.send,
		"undo":       m.undo,
		"redo":       m.redo,
		"deliver":    m.deliver,
		"receive":    m.receive,
		"transcript": m.transcript,
		"state":      m.state,
	})
	L.SetGlobal(m.Name(), mod)
	return nil
}

// send(text) -> message | nil, err
func (m *ChatModule) send(L *lua.LState) int {
	return pushMessage(L)(m.session.Send(L.CheckString(1)))
}

// undo() -> message | nil, err
func (m *ChatModule) undo(L *lua.LState) int {
	return pushMessage(L)(m.session.Undo())
}

// redo() -> message | nil, err
func (m *ChatModule) redo(L *lua.LState) int {
	return pushMessage(L)(m.session.Redo())
}

// deliver(from, text) -> message | nil, err
// Queues an incoming message for this session.
func (m *ChatModule) deliver(L *lua.LState) int {
	return pushMessage(L)(m.manager.Deliver(L.CheckString(1), m.session.User(), L.CheckString(2)))
}

// receive() -> number of messages moved from the inbox
func (m *ChatModule) receive(L *lua.LState) int {
	L.Push(lua.LNumber(m.session.ReceiveAll()))
	return 1
}

// transcript() -> {"[hh:mm:ss] from: text"...}
func (m *ChatModule) transcript(L *lua.LState) int {
	t := L.NewTable()
	for _, msg := range m.session.Transcript() {
		t.Append(lua.LString(msg.String()))
	}
	L.Push(t)
	return 1
}

// state() -> "empty" | "has-applied" | "has-both" | "has-undone"
func (m *ChatModule) state(L *lua.LState) int {
	L.Push(lua.LString(m.session.State().String()))
	return 1
}

func pushMessage(L *lua.LState) func(chat.Message, error) int {
	return func(msg chat.Message, err error) int {
		if err != nil {
			return pushError(L, err)
		}
		t := L.NewTable()
		t.RawSetString("id", lua.LString(msg.ID.String()))
		t.RawSetString("from", lua.LString(msg.From))
		t.RawSetString("text", lua.LString(msg.Text))
		t.RawSetString("direction", lua.LString(msg.Direction.String()))
		L.Push(t)
		return 1
	}
}
