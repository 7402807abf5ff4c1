// Package route models train routes as doubly linked lists of stations.
//
// A route is either linear (head and tail are dead ends) or circular (the
// tail's next is the head and the head's prev is the tail). Nodes live in an
// arena and link by NodeID, so circular routes never form pointer cycles.
// Removed nodes go on a free list and their ids are reused by later inserts;
// a Stop remembers which use of an id it refers to.
package route

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrInvalidNode is returned for ids that do not address a live station.
var ErrInvalidNode = errors.New("invalid route node")

// Kind selects how a route behaves at its ends.
type Kind int

const (
	// Linear routes stop at the first and last station.
	Linear Kind = iota
	// Circular routes wrap from the last station back to the first.
	Circular
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Circular:
		return "circular"
	default:
		return "unknown"
	}
}

// NodeID addresses a station node in a route's arena.
type NodeID int

// None is the NodeID of no node.
const None NodeID = -1

// Station is a stop on a route.
type Station struct {
	Name          string
	MinutesToNext int // Travel time to the next station, used for ETAs
}

// Stop pins a node at one generation. It no longer resolves once the node
// is removed, even if a later insert reuses the id.
type Stop struct {
	ID  NodeID
	Gen uint32
}

type node struct {
	station Station
	prev    NodeID
	next    NodeID
	live    bool
	gen     uint32 // Bumped on every Remove
}

// Route is an ordered set of stations.
// It is not safe for concurrent use.
type Route struct {
	kind  Kind
	nodes []node
	free  []NodeID
	head  NodeID
	tail  NodeID
	size  int
}

// New creates a route of the given kind holding stations in order.
func New(kind Kind, stations ...Station) *Route {
	r := &Route{kind: kind, head: None, tail: None}
	for _, st := range stations {
		r.Append(st)
	}
	return r
}

// NewLinear creates a linear route.
func NewLinear(stations ...Station) *Route {
	return New(Linear, stations...)
}

// NewCircular creates a circular route.
func NewCircular(stations ...Station) *Route {
	return New(Circular, stations...)
}

// Kind returns the route kind.
func (r *Route) Kind() Kind {
	return r.kind
}

// Len returns the number of stations.
func (r *Route) Len() int {
	return r.size
}

// Head returns the first station's node, or None if the route is empty.
func (r *Route) Head() NodeID {
	return r.head
}

// Tail returns the last station's node, or None if the route is empty.
func (r *Route) Tail() NodeID {
	return r.tail
}

// Station returns the station at id.
func (r *Route) Station(id NodeID) (Station, bool) {
	if !r.valid(id) {
		return Station{}, false
	}
	return r.nodes[id].station, true
}

// Next returns the node after id. On a linear route the tail has no next.
func (r *Route) Next(id NodeID) (NodeID, bool) {
	if !r.valid(id) || r.nodes[id].next == None {
		return None, false
	}
	return r.nodes[id].next, true
}

// Prev returns the node before id. On a linear route the head has no prev.
func (r *Route) Prev(id NodeID) (NodeID, bool) {
	if !r.valid(id) || r.nodes[id].prev == None {
		return None, false
	}
	return r.nodes[id].prev, true
}

// Append adds a station after the tail.
func (r *Route) Append(st Station) NodeID {
	id := r.alloc(st)
	if r.head == None {
		r.head, r.tail = id, id
	} else {
		r.nodes[id].prev = r.tail
		r.nodes[r.tail].next = id
		r.tail = id
	}
	r.size++
	r.closeLoop()
	return id
}

// InsertAfter adds a station directly after anchor.
func (r *Route) InsertAfter(anchor NodeID, st Station) (NodeID, error) {
	if !r.valid(anchor) {
		return None, fmt.Errorf("%w: %d", ErrInvalidNode, anchor)
	}
	if anchor == r.tail {
		return r.Append(st), nil
	}

	id := r.alloc(st)
	next := r.nodes[anchor].next
	r.nodes[id].prev = anchor
	r.nodes[id].next = next
	r.nodes[anchor].next = id
	r.nodes[next].prev = id
	r.size++
	return id, nil
}

// Remove deletes the station at id. Its id may be reused by later inserts.
func (r *Route) Remove(id NodeID) error {
	if !r.valid(id) {
		return fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}

	if r.size == 1 {
		r.head, r.tail = None, None
	} else {
		prev, next := r.nodes[id].prev, r.nodes[id].next
		if prev != None {
			r.nodes[prev].next = next
		}
		if next != None {
			r.nodes[next].prev = prev
		}
		if id == r.head {
			r.head = next
		}
		if id == r.tail {
			r.tail = prev
		}
		r.closeLoop()
	}

	r.nodes[id] = node{prev: None, next: None, gen: r.nodes[id].gen + 1}
	r.free = append(r.free, id)
	r.size--
	return nil
}

// Find returns the first station named name, ignoring case.
func (r *Route) Find(name string) (NodeID, bool) {
	for id, st := range r.Forward() {
		if strings.EqualFold(st.Name, name) {
			return id, true
		}
	}
	return None, false
}

// Forward iterates from head to tail. Circular routes are walked once.
func (r *Route) Forward() iter.Seq2[NodeID, Station] {
	return func(yield func(NodeID, Station) bool) {
		id := r.head
		for i := 0; i < r.size; i++ {
			if !yield(id, r.nodes[id].station) {
				return
			}
			id = r.nodes[id].next
		}
	}
}

// Backward iterates from tail to head. Circular routes are walked once.
func (r *Route) Backward() iter.Seq2[NodeID, Station] {
	return func(yield func(NodeID, Station) bool) {
		id := r.tail
		for i := 0; i < r.size; i++ {
			if !yield(id, r.nodes[id].station) {
				return
			}
			id = r.nodes[id].prev
		}
	}
}

// String draws the route, e.g. "A <-> B <-> C" or "A <-> B  (loops)".
func (r *Route) String() string {
	if r.size == 0 {
		return "(empty)"
	}
	names := make([]string, 0, r.size)
	for _, st := range r.Forward() {
		names = append(names, st.Name)
	}
	s := strings.Join(names, " <-> ")
	if r.kind == Circular {
		s += "  (loops)"
	}
	return s
}

func (r *Route) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(r.nodes) && r.nodes[id].live
}

// stop pins id at its current generation.
func (r *Route) stop(id NodeID) Stop {
	if !r.valid(id) {
		return Stop{ID: None}
	}
	return Stop{ID: id, Gen: r.nodes[id].gen}
}

// resolves reports whether s still addresses the node it was taken from.
func (r *Route) resolves(s Stop) bool {
	return r.valid(s.ID) && r.nodes[s.ID].gen == s.Gen
}

func (r *Route) alloc(st Station) NodeID {
	n := node{station: st, prev: None, next: None, live: true}
	if k := len(r.free); k > 0 {
		id := r.free[k-1]
		r.free = r.free[:k-1]
		n.gen = r.nodes[id].gen
		r.nodes[id] = n
		return id
	}
	r.nodes = append(r.nodes, n)
	return NodeID(len(r.nodes) - 1)
}

// closeLoop links tail and head on circular routes.
func (r *Route) closeLoop() {
	if r.kind != Circular || r.head == None {
		return
	}
	r.nodes[r.tail].next = r.head
	r.nodes[r.head].prev = r.tail
}
