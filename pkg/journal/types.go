package journal

import (
	"time"

	"github.com/google/uuid"
)

// MoodEntry is a single mood rating recorded for a day.
type MoodEntry struct {
	ID     uuid.UUID `json:"id"`
	Date   time.Time `json:"date"`
	Rating int       `json:"rating"` // 1-5, see ClampRating
	Note   string    `json:"note" validate:"max=4096"`
}

// Celebration records a win worth remembering.
type Celebration struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title" validate:"required,max=256"`
	Description string    `json:"description" validate:"max=4096"`
	Date        time.Time `json:"date"`
	Category    Category  `json:"category" validate:"required,category"`
	MediaURLs   []string  `json:"mediaURLs" validate:"dive,url"`
	IsStarred   bool      `json:"isStarred"`
}

// Record is implemented by both collection element types so the store can
// treat them uniformly.
type Record interface {
	RecordID() uuid.UUID
	RecordDate() time.Time
}

func (e MoodEntry) RecordID() uuid.UUID   { return e.ID }
func (e MoodEntry) RecordDate() time.Time { return e.Date }

func (c Celebration) RecordID() uuid.UUID   { return c.ID }
func (c Celebration) RecordDate() time.Time { return c.Date }
