package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dshills/actionlog/internal/route"
)

// runRoute drives a train cursor session.
func (a *App) runRoute(in io.Reader, out io.Writer, name, start string, prompt bool) error {
	c, err := a.Cursor(name, start)
	if err != nil {
		return err
	}

	s := newSession("route", in, out)
	s.prompt = prompt

	at := func(st route.Station, ok bool) error {
		if !ok {
			return fmt.Errorf("route is empty")
		}
		s.printf("At: %s\n", st.Name)
		return nil
	}
	steps := func(args string) (int, error) {
		if args == "" {
			return 1, nil
		}
		n, err := strconv.Atoi(args)
		if err != nil || n < 0 {
			return 0, usage("next|prev [steps]")
		}
		return n, nil
	}

	s.handle("show", "show", "draw the route", func(string) error {
		s.printf("%s\n", c.Route())
		return nil
	})
	s.handle("where", "where", "show the current station", func(string) error {
		return at(c.Current())
	})
	s.handle("next", "next [steps]", "move forward", func(args string) error {
		n, err := steps(args)
		if err != nil {
			return err
		}
		return at(c.Next(n))
	})
	s.handle("prev", "prev [steps]", "move backward", func(args string) error {
		n, err := steps(args)
		if err != nil {
			return err
		}
		return at(c.Prev(n))
	})
	s.handle("jump", "jump <station>", "move to a station", func(args string) error {
		if !c.JumpTo(args) {
			return fmt.Errorf("no station %q", args)
		}
		return at(c.Current())
	})
	s.handle("eta", "eta <station>", "minutes to a station ahead", func(args string) error {
		minutes, ok := c.ETA(args)
		if !ok {
			return fmt.Errorf("%q is not reachable ahead", args)
		}
		s.printf("ETA to %s: %d min\n", args, minutes)
		return nil
	})
	s.handle("back", "back", "undo the last move", func(string) error {
		st, err := c.UndoMove()
		if err != nil {
			return err
		}
		return at(st, true)
	})
	s.handle("forward", "forward", "redo an undone move", func(string) error {
		st, err := c.RedoMove()
		if err != nil {
			return err
		}
		return at(st, true)
	})

	return s.run()
}
