// Package script runs Lua scripts against the library, route and chat
// domains. Each domain is exposed as a global module table.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/actionlog/internal/logging"
)

// DefaultTimeout bounds a single DoString or DoFile call.
const DefaultTimeout = 5 * time.Second

// Module is a Lua API module.
type Module interface {
	// Name returns the global the module is installed under.
	Name() string

	// Register installs the module's functions into the Lua state.
	Register(L *lua.LState) error
}

// State is a sandboxed Lua interpreter.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes calls from
// Go; a single script still runs on one goroutine.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	out     io.Writer
	logger  log.Logger
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout sets the per-call execution timeout. Zero disables it.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// WithOutput redirects print.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) StateOption {
	return func(s *State) {
		s.logger = logging.OrNop(logger)
	}
}

// NewState creates a Lua state with only the safe standard libraries open.
func NewState(opts ...StateOption) *State {
	s := &State{
		timeout: DefaultTimeout,
		out:     io.Discard,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.L.SetGlobal("print", s.L.NewFunction(s.print))
	return s
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// io, os, debug and package stay closed. The base library still
	// brings file loaders.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// print writes its arguments tab-separated, like Lua's print.
func (s *State) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(s.out, strings.Join(parts, "\t"))
	return 0
}

// Load registers modules.
func (s *State) Load(mods ...Module) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	for _, mod := range mods {
		if err := mod.Register(s.L); err != nil {
			return fmt.Errorf("registering module %q: %w", mod.Name(), err)
		}
		level.Debug(s.logger).Log("msg", "module registered", "module", mod.Name())
	}
	return nil
}

// DoString executes Lua source. It blocks until the script finishes, fails,
// or ctx (bounded by the state's timeout) is done.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.run(ctx, "string", func() error {
		return s.L.DoString(code)
	})
}

// DoFile executes a Lua file.
func (s *State) DoFile(ctx context.Context, path string) error {
	return s.run(ctx, path, func() error {
		return s.L.DoFile(path)
	})
}

func (s *State) run(ctx context.Context, source string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	start := time.Now()
	err := doWithRecovery(fn)
	if err != nil && ctx.Err() != nil {
		err = fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}
	if err != nil {
		level.Warn(s.logger).Log("msg", "script failed", "source", source, "err", err)
		return err
	}
	level.Debug(s.logger).Log("msg", "script finished", "source", source, "took", time.Since(start))
	return nil
}

// doWithRecovery runs fn, turning a panic into an error.
func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Call calls a global Lua function under the same timeout as DoString and
// returns its results.
func (s *State) Call(ctx context.Context, fn string, args ...lua.LValue) ([]lua.LValue, error) {
	var results []lua.LValue
	err := s.run(ctx, fn, func() error {
		fnVal := s.L.GetGlobal(fn)
		if fnVal.Type() != lua.LTFunction {
			return fmt.Errorf("%q is not a function (got %s)", fn, fnVal.Type())
		}

		top := s.L.GetTop()
		s.L.Push(fnVal)
		for _, arg := range args {
			s.L.Push(arg)
		}
		if err := s.L.PCall(len(args), lua.MultRet, nil); err != nil {
			s.L.SetTop(top)
			return err
		}

		n := s.L.GetTop() - top
		results = make([]lua.LValue, n)
		for i := range n {
			results[i] = s.L.Get(top + i + 1)
		}
		s.L.Pop(n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}

// IsInterrupted reports whether err came from a cancelled or timed-out script.
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted)
}
