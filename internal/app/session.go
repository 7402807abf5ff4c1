package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// command is one line command of an interactive session. args is the rest
// of the line after the command word, trimmed.
type command struct {
	usage string
	help  string
	run   func(args string) error
}

// session reads line commands and dispatches them. Command errors are
// printed and the loop continues; ErrQuit or end of input ends it.
type session struct {
	name     string
	in       io.Reader
	out      io.Writer
	prompt   bool
	commands map[string]command
}

func newSession(name string, in io.Reader, out io.Writer) *session {
	s := &session{
		name:     name,
		in:       in,
		out:      out,
		commands: make(map[string]command),
	}
	s.handle("help", "help", "list commands", func(string) error {
		s.printHelp()
		return nil
	})
	s.handle("quit", "quit", "end the session", func(string) error {
		return ErrQuit
	})
	return s
}

func (s *session) handle(name, usage, help string, run func(args string) error) {
	s.commands[name] = command{usage: usage, help: help, run: run}
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *session) printHelp() {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := s.commands[name]
		s.printf("  %-28s %s\n", c.usage, c.help)
	}
}

// run processes input until quit or EOF.
func (s *session) run() error {
	scanner := bufio.NewScanner(s.in)
	for {
		if s.prompt {
			s.printf("%s> ", s.name)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, args, _ := strings.Cut(line, " ")
		word = strings.ToLower(word)
		if word == "exit" {
			word = "quit"
		}

		c, ok := s.commands[word]
		if !ok {
			s.printf("unknown command %q (try help)\n", word)
			continue
		}
		if err := c.run(strings.TrimSpace(args)); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			s.printf("error: %v\n", err)
		}
	}
}

// splitPair splits "a | b" into its trimmed halves.
func splitPair(args string) (string, string, bool) {
	a, b, ok := strings.Cut(args, "|")
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a, b, ok && a != "" && b != ""
}
