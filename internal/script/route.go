package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/actionlog/internal/route"
)

// RouteModule exposes a train cursor as the "route" global.
type RouteModule struct {
	cursor *route.Cursor
}

// NewRouteModule creates a route module driving cursor.
func NewRouteModule(cursor *route.Cursor) *RouteModule {
	return &RouteModule{cursor: cursor}
}

// Name returns the module name.
func (m *RouteModule) Name() string {
	return "route"
}

// Register installs the module.
func (m *RouteModule) Register(L *lua.LState) error {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"current": m.current,
		"next":    m.next,
		"prev":    m.prev,
		"jump":    m.jump,
		"eta":     m.eta,
		"back":    m.back,
		"forward": m.forward,
		"moves":   m.moves,
		"show":    m.show,
	})
	L.SetGlobal(m.Name(), mod)
	return nil
}

// current() -> station | nil
func (m *RouteModule) current(L *lua.LState) int {
	return pushStation(L)(m.cursor.Current())
}

// next([steps]) -> station | nil
func (m *RouteModule) next(L *lua.LState) int {
	return pushStation(L)(m.cursor.Next(L.OptInt(1, 1)))
}

// prev([steps]) -> station | nil
func (m *RouteModule) prev(L *lua.LState) int {
	return pushStation(L)(m.cursor.Prev(L.OptInt(1, 1)))
}

// jump(name) -> bool
func (m *RouteModule) jump(L *lua.LState) int {
	L.Push(lua.LBool(m.cursor.JumpTo(L.CheckString(1))))
	return 1
}

// eta(name) -> minutes | nil
func (m *RouteModule) eta(L *lua.LState) int {
	minutes, ok := m.cursor.ETA(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(minutes))
	return 1
}

// back() -> station | nil, err
func (m *RouteModule) back(L *lua.LState) int {
	st, err := m.cursor.UndoMove()
	if err != nil {
		return pushError(L, err)
	}
	L.Push(stationTable(L, st))
	return 1
}

// forward() -> station | nil, err
func (m *RouteModule) forward(L *lua.LState) int {
	st, err := m.cursor.RedoMove()
	if err != nil {
		return pushError(L, err)
	}
	L.Push(stationTable(L, st))
	return 1
}

// moves() -> number of undoable moves
func (m *RouteModule) moves(L *lua.LState) int {
	L.Push(lua.LNumber(m.cursor.Moves()))
	return 1
}

// show() -> string
func (m *RouteModule) show(L *lua.LState) int {
	L.Push(lua.LString(m.cursor.Route().String()))
	return 1
}

func stationTable(L *lua.LState, st route.Station) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("name", lua.LString(st.Name))
	t.RawSetString("minutes", lua.LNumber(st.MinutesToNext))
	return t
}

func pushStation(L *lua.LState) func(route.Station, bool) int {
	return func(st route.Station, ok bool) int {
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(stationTable(L, st))
		return 1
	}
}
