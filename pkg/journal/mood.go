package journal

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// ClampRating forces r into [MinRating, MaxRating]. Out-of-range ratings are
// clamped, never rejected.
func ClampRating(r int) int {
	return max(MinRating, min(MaxRating, r))
}

// NewMoodEntry creates an entry with a fresh ID and a clamped rating.
func NewMoodEntry(date time.Time, rating int, note string) MoodEntry {
	return MoodEntry{
		ID:     uuid.New(),
		Date:   date,
		Rating: ClampRating(rating),
		Note:   note,
	}
}
