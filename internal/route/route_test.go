package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearFixture() *Route {
	return NewLinear(
		Station{"Alpha", 3},
		Station{"Bravo", 5},
		Station{"Charlie", 2},
		Station{"Delta", 4},
	)
}

func loopFixture() *Route {
	return NewCircular(
		Station{"North", 4},
		Station{"East", 3},
		Station{"South", 5},
		Station{"West", 2},
	)
}

func names(seq func(func(NodeID, Station) bool)) []string {
	var out []string
	for _, st := range seq {
		out = append(out, st.Name)
	}
	return out
}

func TestLinearRoute(t *testing.T) {
	r := linearFixture()

	assert.Equal(t, "Alpha <-> Bravo <-> Charlie <-> Delta", r.String())
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, []string{"Delta", "Charlie", "Bravo", "Alpha"}, names(r.Backward()))

	_, ok := r.Next(r.Tail())
	assert.False(t, ok, "linear tail has no next")
	_, ok = r.Prev(r.Head())
	assert.False(t, ok, "linear head has no prev")
}

func TestCircularRoute(t *testing.T) {
	r := loopFixture()

	assert.Equal(t, "North <-> East <-> South <-> West  (loops)", r.String())
	next, ok := r.Next(r.Tail())
	require.True(t, ok)
	assert.Equal(t, r.Head(), next)
	prev, ok := r.Prev(r.Head())
	require.True(t, ok)
	assert.Equal(t, r.Tail(), prev)

	assert.Equal(t, []string{"North", "East", "South", "West"}, names(r.Forward()))
}

func TestEmptyRoute(t *testing.T) {
	for _, r := range []*Route{NewLinear(), NewCircular()} {
		assert.Equal(t, "(empty)", r.String())
		assert.Equal(t, None, r.Head())
		assert.Empty(t, names(r.Forward()))
		_, ok := r.Find("anything")
		assert.False(t, ok)
	}
}

func TestFind(t *testing.T) {
	r := linearFixture()

	id, ok := r.Find("charlie")
	require.True(t, ok)
	st, ok := r.Station(id)
	require.True(t, ok)
	assert.Equal(t, "Charlie", st.Name)

	_, ok = r.Find("Echo")
	assert.False(t, ok)
}

func TestInsertAfter(t *testing.T) {
	r := linearFixture()
	charlie, _ := r.Find("Charlie")

	_, err := r.InsertAfter(charlie, Station{"Echo", 6})
	require.NoError(t, err)
	assert.Equal(t, "Alpha <-> Bravo <-> Charlie <-> Echo <-> Delta", r.String())

	_, err = r.InsertAfter(r.Tail(), Station{"Foxtrot", 1})
	require.NoError(t, err)
	assert.Equal(t, "Foxtrot", must(r.Station(r.Tail())).Name)

	_, err = r.InsertAfter(NodeID(42), Station{"Nowhere", 0})
	assert.ErrorIs(t, err, ErrInvalidNode)
}

func TestInsertAfterCircularTail(t *testing.T) {
	r := loopFixture()
	_, err := r.InsertAfter(r.Tail(), Station{"Central", 1})
	require.NoError(t, err)

	assert.Equal(t, "North <-> East <-> South <-> West <-> Central  (loops)", r.String())
	next, _ := r.Next(r.Tail())
	assert.Equal(t, r.Head(), next)
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name     string
		route    func() *Route
		remove   string
		expected string
	}{
		{"linear head", linearFixture, "Alpha", "Bravo <-> Charlie <-> Delta"},
		{"linear middle", linearFixture, "Charlie", "Alpha <-> Bravo <-> Delta"},
		{"linear tail", linearFixture, "Delta", "Alpha <-> Bravo <-> Charlie"},
		{"loop head", loopFixture, "North", "East <-> South <-> West  (loops)"},
		{"loop middle", loopFixture, "South", "North <-> East <-> West  (loops)"},
		{"loop tail", loopFixture, "West", "North <-> East <-> South  (loops)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.route()
			id, ok := r.Find(tt.remove)
			require.True(t, ok)
			require.NoError(t, r.Remove(id))

			assert.Equal(t, tt.expected, r.String())
			assert.Equal(t, 3, r.Len())
			_, ok = r.Station(id)
			assert.False(t, ok)
			assert.ErrorIs(t, r.Remove(id), ErrInvalidNode)
		})
	}
}

func TestRemoveLastStation(t *testing.T) {
	r := NewCircular(Station{"Only", 1})
	require.NoError(t, r.Remove(r.Head()))
	assert.Equal(t, "(empty)", r.String())

	r.Append(Station{"Again", 1})
	next, ok := r.Next(r.Head())
	require.True(t, ok)
	assert.Equal(t, r.Head(), next, "single station loops to itself")
}

func TestRemovedIDsAreReused(t *testing.T) {
	r := linearFixture()
	bravo, _ := r.Find("Bravo")
	require.NoError(t, r.Remove(bravo))

	id := r.Append(Station{"Echo", 1})
	assert.Equal(t, bravo, id)
	assert.Equal(t, "Alpha <-> Charlie <-> Delta <-> Echo", r.String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "linear", Linear.String())
	assert.Equal(t, "circular", Circular.String())
	assert.Equal(t, "unknown", Kind(7).String())
}

func must(st Station, ok bool) Station {
	if !ok {
		panic("station not found")
	}
	return st
}
