package store

import (
	"github.com/google/uuid"
)

// Collection names one of the two record collections.
type Collection string

const (
	MoodEntries  Collection = "mood_entries"
	Celebrations Collection = "celebrations"
)

type Op string

const (
	OpAdd        Op = "add"
	OpUpdate     Op = "update"
	OpDelete     Op = "delete"
	OpToggleStar Op = "toggle_star"
)

// Change describes one mutation that altered a collection. SaveErr is the
// result of the write that followed it; the in-memory change has happened
// either way.
type Change struct {
	Collection Collection
	Op         Op
	ID         uuid.UUID
	SaveErr    error
}

// Observer is called after each Change, outside the store's lock. It may
// call back into the store.
type Observer func(Change)

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.obsMu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = fn
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

func (s *Store) notify(change Change) {
	s.obsMu.Lock()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range observers {
		fn(change)
	}
}
