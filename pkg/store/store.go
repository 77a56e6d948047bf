// Package store owns the mood-entry and celebration collections, mirrors
// them to a Backend after every mutation and answers date-based queries.
//
// Persistence failures never reach callers: a collection that cannot be
// loaded starts empty, and a failed save is logged while the in-memory state
// stays authoritative until the next successful write.
package store

import (
	"errors"
	"io/fs"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unowned-ai/jubiland/pkg/journal"
)

var (
	ErrMoodEntryNotFound   = errors.New("mood entry not found")
	ErrCelebrationNotFound = errors.New("celebration not found")
)

// Store is safe for concurrent use. Writers are serialized; observers run
// after the lock is released.
type Store struct {
	mu           sync.RWMutex
	moodEntries  []journal.MoodEntry
	celebrations []journal.Celebration

	backend Backend
	logger  *zap.Logger
	now     func() time.Time
	loc     *time.Location

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObsID int
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now as the reference point for time windows.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the calendar used for day matching. Defaults to
// time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New loads both collections from backend and returns the store.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		logger:    zap.NewNop(),
		now:       time.Now,
		loc:       time.Local,
		observers: make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("store")

	entries, err := backend.LoadMoodEntries()
	s.moodEntries = loadedOrEmpty(s.logger, MoodEntries, entries, err)

	celebrations, err := backend.LoadCelebrations()
	s.celebrations = loadedOrEmpty(s.logger, Celebrations, celebrations, err)

	return s
}

func loadedOrEmpty[T any](logger *zap.Logger, collection Collection, items []T, err error) []T {
	log := logger.With(zap.String("collection", string(collection)))
	switch {
	case err == nil:
		log.Debug("collection loaded", zap.Int("count", len(items)))
		return items
	case errors.Is(err, fs.ErrNotExist):
		log.Debug("no stored data, starting empty")
	default:
		log.Warn("failed to load collection, starting empty", zap.Error(err))
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Location returns the calendar used for day matching.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Now returns the store's current time in its location.
func (s *Store) Now() time.Time {
	return s.now().In(s.loc)
}

// saveMoodEntriesLocked writes the whole mood collection. Callers hold mu.
func (s *Store) saveMoodEntriesLocked() error {
	err := s.backend.SaveMoodEntries(copyMoodEntries(s.moodEntries))
	s.logSave(MoodEntries, len(s.moodEntries), err)
	return err
}

// saveCelebrationsLocked writes the whole celebration collection. Callers hold mu.
func (s *Store) saveCelebrationsLocked() error {
	err := s.backend.SaveCelebrations(copyCelebrations(s.celebrations))
	s.logSave(Celebrations, len(s.celebrations), err)
	return err
}

func (s *Store) logSave(collection Collection, count int, err error) {
	if err != nil {
		s.logger.Error("failed to save collection",
			zap.String("collection", string(collection)),
			zap.Int("count", count),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("collection saved",
		zap.String("collection", string(collection)),
		zap.Int("count", count),
	)
}

func copyMoodEntries(entries []journal.MoodEntry) []journal.MoodEntry {
	if entries == nil {
		return nil
	}
	return append([]journal.MoodEntry(nil), entries...)
}

func copyCelebrations(celebrations []journal.Celebration) []journal.Celebration {
	if celebrations == nil {
		return nil
	}
	out := make([]journal.Celebration, len(celebrations))
	for i, c := range celebrations {
		out[i] = copyCelebration(c)
	}
	return out
}

func copyCelebration(c journal.Celebration) journal.Celebration {
	c.MediaURLs = append([]string(nil), c.MediaURLs...)
	return c
}

// indexOf returns the position of the first record with id, or -1.
func indexOf[T journal.Record](items []T, id uuid.UUID) int {
	for i, item := range items {
		if item.RecordID() == id {
			return i
		}
	}
	return -1
}

// removeAll drops every record with id and reports how many were removed.
func removeAll[T journal.Record](items []T, id uuid.UUID) ([]T, int) {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if item.RecordID() != id {
			kept = append(kept, item)
		}
	}
	return kept, len(items) - len(kept)
}

func filterRecords[T journal.Record](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
