package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/unowned-ai/jubiland/pkg/journal"
)

// MoodEntries returns a copy of the mood collection in stored order.
func (s *Store) MoodEntries() []journal.MoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMoodEntries(s.moodEntries)
}

// MoodEntry returns the first entry with id.
func (s *Store) MoodEntry(id uuid.UUID) (journal.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.moodEntries, id)
	if i < 0 {
		return journal.MoodEntry{}, ErrMoodEntryNotFound
	}
	return s.moodEntries[i], nil
}

// AddMoodEntry appends e and rewrites the collection. Duplicate ids are not
// detected.
func (s *Store) AddMoodEntry(e journal.MoodEntry) {
	e.Rating = journal.ClampRating(e.Rating)

	s.mu.Lock()
	s.moodEntries = append(s.moodEntries, e)
	err := s.saveMoodEntriesLocked()
	s.mu.Unlock()

	s.notify(Change{Collection: MoodEntries, Op: OpAdd, ID: e.ID, SaveErr: err})
}

// UpdateMoodEntry replaces the first entry sharing e.ID. It reports false,
// without writing anything, when no such entry exists.
func (s *Store) UpdateMoodEntry(e journal.MoodEntry) bool {
	e.Rating = journal.ClampRating(e.Rating)

	s.mu.Lock()
	i := indexOf(s.moodEntries, e.ID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.moodEntries[i] = e
	err := s.saveMoodEntriesLocked()
	s.mu.Unlock()

	s.notify(Change{Collection: MoodEntries, Op: OpUpdate, ID: e.ID, SaveErr: err})
	return true
}

// DeleteMoodEntry removes every entry with id, rewrites the collection and
// returns how many entries were removed.
func (s *Store) DeleteMoodEntry(id uuid.UUID) int {
	s.mu.Lock()
	var removed int
	s.moodEntries, removed = removeAll(s.moodEntries, id)
	err := s.saveMoodEntriesLocked()
	s.mu.Unlock()

	if removed > 0 {
		s.notify(Change{Collection: MoodEntries, Op: OpDelete, ID: id, SaveErr: err})
	}
	return removed
}

// MoodEntriesOn returns the entries recorded on the same calendar day as
// date, in stored order.
func (s *Store) MoodEntriesOn(date time.Time) []journal.MoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filterRecords(s.moodEntries, func(e journal.MoodEntry) bool {
		return journal.SameDay(e.Date, date, s.loc)
	})
}

// SaveMoodForDay records the mood for date's calendar day. The first entry
// already on that day gets the new rating and note; otherwise a new entry is
// added. The stored entry is returned.
func (s *Store) SaveMoodForDay(date time.Time, rating int, note string) journal.MoodEntry {
	s.mu.Lock()
	i := -1
	for j, e := range s.moodEntries {
		if journal.SameDay(e.Date, date, s.loc) {
			i = j
			break
		}
	}

	var (
		entry journal.MoodEntry
		op    Op
	)
	if i >= 0 {
		entry = s.moodEntries[i]
		entry.Rating = journal.ClampRating(rating)
		entry.Note = note
		s.moodEntries[i] = entry
		op = OpUpdate
	} else {
		entry = journal.NewMoodEntry(date, rating, note)
		s.moodEntries = append(s.moodEntries, entry)
		op = OpAdd
	}
	err := s.saveMoodEntriesLocked()
	s.mu.Unlock()

	s.notify(Change{Collection: MoodEntries, Op: op, ID: entry.ID, SaveErr: err})
	return entry
}
