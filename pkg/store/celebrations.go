package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/unowned-ai/jubiland/pkg/journal"
)

// Celebrations returns a copy of the celebration collection in stored order.
func (s *Store) Celebrations() []journal.Celebration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCelebrations(s.celebrations)
}

// Celebration returns the first celebration with id.
func (s *Store) Celebration(id uuid.UUID) (journal.Celebration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.celebrations, id)
	if i < 0 {
		return journal.Celebration{}, ErrCelebrationNotFound
	}
	return copyCelebration(s.celebrations[i]), nil
}

func (s *Store) AddCelebration(c journal.Celebration) {
	c = copyCelebration(c)

	s.mu.Lock()
	s.celebrations = append(s.celebrations, c)
	err := s.saveCelebrationsLocked()
	s.mu.Unlock()

	s.notify(Change{Collection: Celebrations, Op: OpAdd, ID: c.ID, SaveErr: err})
}

// UpdateCelebration replaces the first celebration sharing c.ID. It reports
// false, without writing anything, when no such celebration exists.
func (s *Store) UpdateCelebration(c journal.Celebration) bool {
	c = copyCelebration(c)

	s.mu.Lock()
	i := indexOf(s.celebrations, c.ID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.celebrations[i] = c
	err := s.saveCelebrationsLocked()
	s.mu.Unlock()

	s.notify(Change{Collection: Celebrations, Op: OpUpdate, ID: c.ID, SaveErr: err})
	return true
}

// DeleteCelebration removes every celebration with id, rewrites the
// collection and returns how many were removed.
func (s *Store) DeleteCelebration(id uuid.UUID) int {
	s.mu.Lock()
	var removed int
	s.celebrations, removed = removeAll(s.celebrations, id)
	err := s.saveCelebrationsLocked()
	s.mu.Unlock()

	if removed > 0 {
		s.notify(Change{Collection: Celebrations, Op: OpDelete, ID: id, SaveErr: err})
	}
	return removed
}

// ToggleStarCelebration flips IsStarred on the first celebration with id and
// returns the updated record. Nothing is written when id is unknown.
func (s *Store) ToggleStarCelebration(id uuid.UUID) (journal.Celebration, bool) {
	s.mu.Lock()
	i := indexOf(s.celebrations, id)
	if i < 0 {
		s.mu.Unlock()
		return journal.Celebration{}, false
	}
	s.celebrations[i].IsStarred = !s.celebrations[i].IsStarred
	updated := copyCelebration(s.celebrations[i])
	err := s.saveCelebrationsLocked()
	s.mu.Unlock()

	s.notify(Change{Collection: Celebrations, Op: OpToggleStar, ID: id, SaveErr: err})
	return updated, true
}

// CelebrationsOn returns the celebrations dated on the same calendar day as
// date, in stored order.
func (s *Store) CelebrationsOn(date time.Time) []journal.Celebration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyCelebrations(filterRecords(s.celebrations, func(c journal.Celebration) bool {
		return journal.SameDay(c.Date, date, s.loc)
	}))
}

// StarredCelebrations returns the starred subset in stored order.
func (s *Store) StarredCelebrations() []journal.Celebration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyCelebrations(filterRecords(s.celebrations, func(c journal.Celebration) bool {
		return c.IsStarred
	}))
}
