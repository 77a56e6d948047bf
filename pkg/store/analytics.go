package store

import (
	"time"

	"github.com/unowned-ai/jubiland/pkg/journal"
)

// Insights bundles the statistics shown for one time range.
type Insights struct {
	Range            journal.TimeRange `json:"range"`
	AverageMood      float64           `json:"average_mood"`
	MoodEntryCount   int               `json:"mood_entry_count"`
	Distribution     map[int]int       `json:"distribution"`
	CelebrationCount int               `json:"celebration_count"`
}

// MoodEntriesIn returns the entries inside r, evaluated against the current
// time.
func (s *Store) MoodEntriesIn(r journal.TimeRange) []journal.MoodEntry {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moodEntriesInLocked(r, now)
}

// CelebrationsIn returns the celebrations inside r, evaluated against the
// current time.
func (s *Store) CelebrationsIn(r journal.TimeRange) []journal.Celebration {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCelebrations(s.celebrationsInLocked(r, now))
}

func (s *Store) moodEntriesInLocked(r journal.TimeRange, now time.Time) []journal.MoodEntry {
	return filterRecords(s.moodEntries, func(e journal.MoodEntry) bool {
		return r.Contains(e.Date, now, s.loc)
	})
}

func (s *Store) celebrationsInLocked(r journal.TimeRange, now time.Time) []journal.Celebration {
	return filterRecords(s.celebrations, func(c journal.Celebration) bool {
		return r.Contains(c.Date, now, s.loc)
	})
}

// AverageMood is the mean rating inside r, or 0 when r holds no entries.
func (s *Store) AverageMood(r journal.TimeRange) float64 {
	return averageRating(s.MoodEntriesIn(r))
}

// MoodDistribution counts entries per rating inside r. All five ratings are
// always present.
func (s *Store) MoodDistribution(r journal.TimeRange) map[int]int {
	return distribution(s.MoodEntriesIn(r))
}

// CelebrationCount is the number of celebrations inside r.
func (s *Store) CelebrationCount(r journal.TimeRange) int {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.celebrationsInLocked(r, now))
}

// Insights computes every statistic for r against a single "now".
func (s *Store) Insights(r journal.TimeRange) Insights {
	now := s.now()

	s.mu.RLock()
	entries := s.moodEntriesInLocked(r, now)
	celebrations := len(s.celebrationsInLocked(r, now))
	s.mu.RUnlock()

	return Insights{
		Range:            r,
		AverageMood:      averageRating(entries),
		MoodEntryCount:   len(entries),
		Distribution:     distribution(entries),
		CelebrationCount: celebrations,
	}
}

func averageRating(entries []journal.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Rating
	}
	return float64(sum) / float64(len(entries))
}

func distribution(entries []journal.MoodEntry) map[int]int {
	counts := make(map[int]int, journal.MaxRating)
	for r := journal.MinRating; r <= journal.MaxRating; r++ {
		counts[r] = 0
	}
	for _, e := range entries {
		counts[e.Rating]++
	}
	return counts
}
