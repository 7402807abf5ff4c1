package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func newTestState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	s := NewState(opts...)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDoString(t *testing.T) {
	s := newTestState(t)

	require.NoError(t, s.DoString(context.Background(), `x = 1 + 1`))
	assert.Equal(t, lua.LNumber(2), s.GetGlobal("x"))
}

func TestDoStringSyntaxError(t *testing.T) {
	s := newTestState(t)
	assert.Error(t, s.DoString(context.Background(), `invalid lua code !!!`))
}

func TestPrintWritesToOutput(t *testing.T) {
	var out bytes.Buffer
	s := newTestState(t, WithOutput(&out))

	require.NoError(t, s.DoString(context.Background(), `print("a", 1, true)`))
	assert.Equal(t, "a\t1\ttrue\n", out.String())
}

func TestUnsafeLibrariesClosed(t *testing.T) {
	s := newTestState(t)

	for _, name := range []string{"io", "os", "debug", "package", "dofile", "loadfile", "require"} {
		assert.Equal(t, lua.LNil, s.GetGlobal(name), name)
	}
	assert.NotEqual(t, lua.LNil, s.GetGlobal("string"))
	assert.NotEqual(t, lua.LNil, s.GetGlobal("table"))
	assert.NotEqual(t, lua.LNil, s.GetGlobal("math"))
}

func TestTimeoutInterruptsScript(t *testing.T) {
	s := newTestState(t, WithTimeout(50*time.Millisecond))

	err := s.DoString(context.Background(), `while true do end`)
	require.Error(t, err)
	assert.True(t, IsInterrupted(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	// The state stays usable after an interrupted run.
	require.NoError(t, s.DoString(context.Background(), `y = 3`))
	assert.Equal(t, lua.LNumber(3), s.GetGlobal("y"))
}

func TestCancelledContext(t *testing.T) {
	s := newTestState(t, WithTimeout(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.DoString(ctx, `while true do end`)
	assert.True(t, IsInterrupted(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDoFile(t *testing.T) {
	s := newTestState(t)

	path := filepath.Join(t.TempDir(), "script.lua")
	require.NoError(t, os.WriteFile(path, []byte("z = 'from file'\n"), 0o600))

	require.NoError(t, s.DoFile(context.Background(), path))
	assert.Equal(t, lua.LString("from file"), s.GetGlobal("z"))

	assert.Error(t, s.DoFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua")))
}

func TestCall(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.DoString(context.Background(), `
		function add(a, b) return a + b end
		function multi() return 1, "two", true end
		function boom() error("boom") end
		notfn = 5
	`))

	results, err := s.Call(context.Background(), "add", lua.LNumber(2), lua.LNumber(3))
	require.NoError(t, err)
	assert.Equal(t, []lua.LValue{lua.LNumber(5)}, results)

	results, err = s.Call(context.Background(), "multi")
	require.NoError(t, err)
	assert.Len(t, results, 3)

	_, err = s.Call(context.Background(), "boom")
	assert.ErrorContains(t, err, "boom")

	_, err = s.Call(context.Background(), "notfn")
	assert.ErrorContains(t, err, "not a function")

	_, err = s.Call(context.Background(), "missing")
	assert.Error(t, err)
}

type doubler struct{}

func (doubler) Name() string { return "util" }

func (doubler) Register(L *lua.LState) error {
	L.SetGlobal("util", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"double": func(L *lua.LState) int {
			L.Push(L.CheckNumber(1) * 2)
			return 1
		},
	}))
	return nil
}

func TestLoadModule(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.Load(doubler{}))

	require.NoError(t, s.DoString(context.Background(), `r = util.double(21)`))
	assert.Equal(t, lua.LNumber(42), s.GetGlobal("r"))
}

func TestCallTimeout(t *testing.T) {
	s := newTestState(t, WithTimeout(50*time.Millisecond))
	require.NoError(t, s.DoString(context.Background(), `function spin() while true do end end`))

	_, err := s.Call(context.Background(), "spin")
	assert.ErrorIs(t, err, ErrInterrupted)

	// The state stays usable after an interrupted call.
	require.NoError(t, s.DoString(context.Background(), `function one() return 1 end`))
	results, err := s.Call(context.Background(), "one")
	require.NoError(t, err)
	assert.Equal(t, []lua.LValue{lua.LNumber(1)}, results)
}

func TestClosedState(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.DoString(context.Background(), `x = 1`), ErrStateClosed)
	_, err := s.Call(context.Background(), "x")
	assert.ErrorIs(t, err, ErrStateClosed)
	assert.ErrorIs(t, s.Load(NewRouteModule(nil)), ErrStateClosed)
	assert.Equal(t, lua.LNil, s.GetGlobal("x"))
}
