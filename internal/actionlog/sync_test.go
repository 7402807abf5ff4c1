package actionlog

import (
	"sync"
	"testing"
)

func TestSynchronizedConcurrentRecord(t *testing.T) {
	s := NewSynchronized[int]()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Record(NewAction("step", g*100+i, 0))
			}
		}(g)
	}
	wg.Wait()

	if s.UndoCount() != 800 {
		t.Errorf("UndoCount() = %d, want 800", s.UndoCount())
	}

	count := 0
	for range s.History() {
		count++
	}
	if count != 800 {
		t.Errorf("History() yielded %d actions, want 800", count)
	}
}

func TestSynchronizedUndoRedo(t *testing.T) {
	s := NewSynchronized[string]()
	if _, ok := s.Undo(); ok {
		t.Error("Undo on empty log")
	}

	s.Record(sendAction("a", 1))
	s.Record(sendAction("b", 2))

	if a, ok := s.PeekUndo(); !ok || a.Forward != "b" {
		t.Errorf("PeekUndo() = %q, %v", a.Forward, ok)
	}
	if a, ok := s.Undo(); !ok || a.Forward != "b" {
		t.Errorf("Undo() = %q, %v", a.Forward, ok)
	}
	if s.State() != HasBoth {
		t.Errorf("State() = %v, want %v", s.State(), HasBoth)
	}
	if a, ok := s.PeekRedo(); !ok || a.Forward != "b" {
		t.Errorf("PeekRedo() = %q, %v", a.Forward, ok)
	}
	if a, ok := s.Redo(); !ok || a.Forward != "b" {
		t.Errorf("Redo() = %q, %v", a.Forward, ok)
	}
	if s.RedoCount() != 0 {
		t.Errorf("RedoCount() = %d, want 0", s.RedoCount())
	}

	s.Clear()
	if s.State() != Empty {
		t.Errorf("State() = %v, want %v", s.State(), Empty)
	}
}

func TestSynchronizedHistorySnapshot(t *testing.T) {
	s := NewSynchronized[string]()
	s.Record(sendAction("a", 1))
	s.Record(sendAction("b", 2))

	// Recording while ranging must not deadlock.
	n := 0
	for range s.History() {
		s.Record(sendAction("c", 3))
		n++
	}
	if n != 2 {
		t.Errorf("ranged over %d actions, want 2", n)
	}
	if s.UndoCount() != 4 {
		t.Errorf("UndoCount() = %d, want 4", s.UndoCount())
	}
}
