package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/actionlog/internal/logging"
)

// BuildInfo is version information set at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewCommand builds the actionlog command tree.
func NewCommand(info BuildInfo) *cobra.Command {
	var (
		opts Options
		app  *App
	)

	root := &cobra.Command{
		Use:   "actionlog",
		Short: "Undo and redo for a library, a train route and a chat",
		Long: `actionlog runs interactive sessions backed by an undo/redo action log.

Each session reads one command per line from standard input. Type "help"
inside a session for its commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			var err error
			app, err = New(opts, cmd.ErrOrStderr())
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if app == nil {
				return nil
			}
			return app.WriteStats(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "path to configuration file")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level ("+strings.Join(logging.Levels, ", ")+")")
	flags.BoolVar(&opts.Stats, "stats", false, "print operation counters when the session ends")

	root.AddCommand(
		newLibraryCommand(&app),
		newRouteCommand(&app),
		newChatCommand(&app),
		newScriptCommand(&app),
		newVersionCommand(info),
	)
	return root
}

func newLibraryCommand(app **App) *cobra.Command {
	var member string
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Borrow and return books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return (*app).runLibrary(cmd.InOrStdin(), cmd.OutOrStdout(), member, interactive(cmd.InOrStdin()))
		},
	}
	cmd.Flags().StringVarP(&member, "member", "m", "", "member name (default from config)")
	return cmd
}

func newRouteCommand(app **App) *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "route [name]",
		Short: "Move a train along a route",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			return (*app).runRoute(cmd.InOrStdin(), cmd.OutOrStdout(), name, start, interactive(cmd.InOrStdin()))
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "starting station (default from config)")
	return cmd
}

func newChatCommand(app **App) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send, unsend and resend messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return (*app).runChat(cmd.InOrStdin(), cmd.OutOrStdout(), user, interactive(cmd.InOrStdin()))
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "user name (default from config)")
	return cmd
}

func newScriptCommand(app **App) *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "script [file.lua]",
		Short: "Run a Lua script against all three domains",
		Long: `Run a Lua script with the globals "library", "route" and "chat".

Functions that can fail return nil and an error message. If the script
defines a global main function it is called after loading and its results
are printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if code == "" && len(args) == 0 {
				return errors.New("a script file or --exec is required")
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return (*app).runScript(cmd.Context(), cmd.OutOrStdout(), path, code)
		},
	}
	cmd.Flags().StringVarP(&code, "exec", "e", "", "run this Lua code instead of a file")
	return cmd
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "actionlog %s\n", info.Version)
			fmt.Fprintf(out, "Commit: %s\n", info.Commit)
			fmt.Fprintf(out, "Built: %s\n", info.Date)
		},
	}
}

// interactive reports whether in is a terminal, so sessions show a prompt.
func interactive(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
