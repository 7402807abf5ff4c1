package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/actionlog/internal/script"
)

// runScript executes a Lua file with the library, route and chat modules
// loaded. code, if set, runs instead of the file.
func (a *App) runScript(ctx context.Context, out io.Writer, path, code string) error {
	lib, err := a.Library()
	if err != nil {
		return err
	}
	cursor, err := a.Cursor("", "")
	if err != nil {
		return err
	}
	mgr := a.Chat()
	sess, err := mgr.Session(a.cfg.Chat.User)
	if err != nil {
		return err
	}

	state := script.NewState(
		script.WithOutput(out),
		script.WithTimeout(a.cfg.Script.Timeout.Duration),
		script.WithLogger(log.With(a.logger, "component", "script")),
	)
	defer state.Close()

	if err := state.Load(
		script.NewLibraryModule(lib, a.cfg.Library.Member),
		script.NewRouteModule(cursor),
		script.NewChatModule(mgr, sess),
	); err != nil {
		return err
	}

	if code != "" {
		err = state.DoString(ctx, code)
	} else {
		err = state.DoFile(ctx, path)
	}
	if err != nil {
		return err
	}

	// A script may define main() instead of running at load time. Its
	// results are printed like print would.
	if state.GetGlobal("main").Type() != lua.LTFunction {
		return nil
	}
	results, err := state.Call(ctx, "main")
	if err != nil {
		return err
	}
	if len(results) > 0 {
		parts := make([]string, len(results))
		for i, v := range results {
			parts[i] = v.String()
		}
		fmt.Fprintln(out, strings.Join(parts, "\t"))
	}
	return nil
}
