package route

import (
	"errors"
	"strings"

	"github.com/dshills/actionlog/internal/actionlog"
)

// KindMove tags cursor moves in the navigation log.
const KindMove actionlog.Kind = "move"

// Errors returned by cursor navigation history.
var (
	ErrNothingToUndo = errors.New("no move to undo")
	ErrNothingToRedo = errors.New("no move to redo")
	ErrStaleMove     = errors.New("station of the move was removed")
)

// Cursor is a train position on a route.
// Every move is recorded, so moves can be undone and redone.
type Cursor struct {
	route *Route
	cur   Stop
	moves *actionlog.Log[Stop]
}

// CursorOption configures a Cursor.
type CursorOption func(*Cursor)

// WithMoveObserver observes the cursor's navigation log.
func WithMoveObserver(obs actionlog.Observer[Stop]) CursorOption {
	return func(c *Cursor) {
		c.moves = actionlog.New(actionlog.WithObserver(obs))
	}
}

// NewCursor places a cursor on the station named start, or on the head if
// start is empty or not on the route.
func NewCursor(r *Route, start string, opts ...CursorOption) *Cursor {
	c := &Cursor{
		route: r,
		cur:   r.stop(r.head),
		moves: actionlog.New[Stop](),
	}
	for _, opt := range opts {
		opt(c)
	}
	if start != "" {
		if id, ok := r.Find(start); ok {
			c.cur = r.stop(id)
		}
	}
	return c
}

// Route returns the route the cursor runs on.
func (c *Cursor) Route() *Route {
	return c.route
}

// Current returns the station the cursor is on. It returns false if the
// route is empty or the station was removed from under the cursor.
func (c *Cursor) Current() (Station, bool) {
	if !c.route.resolves(c.cur) {
		return Station{}, false
	}
	return c.route.nodes[c.cur.ID].station, true
}

// Next moves up to steps stations forward. On a linear route the cursor
// stops at the tail. It returns the station it ends on.
func (c *Cursor) Next(steps int) (Station, bool) {
	return c.step(steps, c.route.Next)
}

// Prev moves up to steps stations backward. On a linear route the cursor
// stops at the head.
func (c *Cursor) Prev(steps int) (Station, bool) {
	return c.step(steps, c.route.Prev)
}

// JumpTo moves the cursor to the station named name.
func (c *Cursor) JumpTo(name string) bool {
	id, ok := c.route.Find(name)
	if !ok {
		return false
	}
	c.moveTo(id)
	return true
}

// ETA sums travel minutes from the current station forward to target.
// Linear routes give up at the tail; circular routes after one lap.
func (c *Cursor) ETA(target string) (int, bool) {
	if !c.route.resolves(c.cur) {
		return 0, false
	}
	id := c.cur.ID

	minutes := 0
	for visited := 0; visited <= c.route.size; visited++ {
		st := c.route.nodes[id].station
		if strings.EqualFold(st.Name, target) {
			return minutes, true
		}
		next, ok := c.route.Next(id)
		if !ok {
			return 0, false
		}
		minutes += st.MinutesToNext
		id = next
	}
	return 0, false
}

// UndoMove returns the cursor to where it was before its last move.
func (c *Cursor) UndoMove() (Station, error) {
	a, ok := c.moves.PeekUndo()
	if !ok {
		c.moves.Undo() // Counted by observers as an empty undo
		return Station{}, ErrNothingToUndo
	}
	if !c.route.resolves(a.Inverse) {
		return Station{}, ErrStaleMove
	}
	a, _ = c.moves.Undo()
	c.cur = a.Inverse
	return c.route.nodes[c.cur.ID].station, nil
}

// RedoMove repeats the last undone move.
func (c *Cursor) RedoMove() (Station, error) {
	a, ok := c.moves.PeekRedo()
	if !ok {
		c.moves.Redo() // Counted by observers as an empty redo
		return Station{}, ErrNothingToRedo
	}
	if !c.route.resolves(a.Forward) {
		return Station{}, ErrStaleMove
	}
	a, _ = c.moves.Redo()
	c.cur = a.Forward
	return c.route.nodes[c.cur.ID].station, nil
}

// Moves returns the number of moves that can be undone.
func (c *Cursor) Moves() int {
	return c.moves.UndoCount()
}

func (c *Cursor) step(steps int, advance func(NodeID) (NodeID, bool)) (Station, bool) {
	if !c.route.resolves(c.cur) {
		return Station{}, false
	}
	id := c.cur.ID
	for i := 0; i < steps; i++ {
		next, ok := advance(id)
		if !ok {
			break
		}
		id = next
	}
	c.moveTo(id)
	return c.route.nodes[id].station, true
}

// moveTo records a move unless the cursor stays put.
func (c *Cursor) moveTo(id NodeID) {
	to := c.route.stop(id)
	if to == c.cur {
		return
	}
	c.moves.Record(actionlog.NewAction(KindMove, to, c.cur))
	c.cur = to
}
