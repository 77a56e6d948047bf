package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingID   = errors.New("record id is missing")
	ErrMissingDate = errors.New("record date is missing")
)

// referenceDate is the epoch of numeric dates written by the mobile app:
// seconds since 2001-01-01 UTC.
var referenceDate = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// FormatDate renders t the way dates are written to disk.
func FormatDate(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseDate reads a date written by FormatDate.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// wireDate accepts either an RFC 3339 string or a number of seconds since
// referenceDate, and always writes the string form.
type wireDate time.Time

func (d wireDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatDate(time.Time(d)))
}

func (d *wireDate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return ErrMissingDate
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		t, err := ParseDate(s)
		if err != nil {
			return err
		}
		*d = wireDate(t)
		return nil
	}

	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("invalid date %s: %w", b, err)
	}
	whole, frac := math.Modf(secs)
	offset := time.Duration(whole)*time.Second + time.Duration(math.Round(frac*float64(time.Second)))
	*d = wireDate(referenceDate.Add(offset))
	return nil
}

type moodEntryWire struct {
	ID     uuid.UUID `json:"id"`
	Date   wireDate  `json:"date"`
	Rating int       `json:"rating"`
	Note   string    `json:"note"`
}

func (e MoodEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(moodEntryWire{
		ID:     e.ID,
		Date:   wireDate(e.Date),
		Rating: e.Rating,
		Note:   e.Note,
	})
}

// UnmarshalJSON clamps the decoded rating so loaded entries keep the same
// invariant as constructed ones.
func (e *MoodEntry) UnmarshalJSON(b []byte) error {
	var w moodEntryWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if err := checkRequired(w.ID, w.Date); err != nil {
		return err
	}
	*e = MoodEntry{
		ID:     w.ID,
		Date:   time.Time(w.Date),
		Rating: ClampRating(w.Rating),
		Note:   w.Note,
	}
	return nil
}

type celebrationWire struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        wireDate  `json:"date"`
	Category    Category  `json:"category"`
	MediaURLs   []string  `json:"mediaURLs"`
	IsStarred   bool      `json:"isStarred"`
}

func (c Celebration) MarshalJSON() ([]byte, error) {
	media := c.MediaURLs
	if media == nil {
		media = []string{}
	}
	return json.Marshal(celebrationWire{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Date:        wireDate(c.Date),
		Category:    c.Category,
		MediaURLs:   media,
		IsStarred:   c.IsStarred,
	})
}

func (c *Celebration) UnmarshalJSON(b []byte) error {
	var w celebrationWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if err := checkRequired(w.ID, w.Date); err != nil {
		return err
	}
	if !w.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, w.Category)
	}
	var media []string
	if len(w.MediaURLs) > 0 {
		media = w.MediaURLs
	}
	*c = Celebration{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Date:        time.Time(w.Date),
		Category:    w.Category,
		MediaURLs:   media,
		IsStarred:   w.IsStarred,
	}
	return nil
}

// checkRequired rejects records whose id or date key was absent. Missing keys
// decode to zero values, which no stored record can hold.
func checkRequired(id uuid.UUID, date wireDate) error {
	if id == uuid.Nil {
		return ErrMissingID
	}
	if time.Time(date).IsZero() {
		return ErrMissingDate
	}
	return nil
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, b)
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
