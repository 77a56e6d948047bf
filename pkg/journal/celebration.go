package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCategory = errors.New("invalid celebration category")
)

// Category groups celebrations. The string value is the label stored on disk.
type Category string

const (
	CategoryPersonal     Category = "Personal"
	CategoryWork         Category = "Work"
	CategoryHealth       Category = "Health"
	CategoryRelationship Category = "Relationship"
	CategoryLearning     Category = "Learning"
	CategoryOther        Category = "Other"
)

var categories = []Category{
	CategoryPersonal,
	CategoryWork,
	CategoryHealth,
	CategoryRelationship,
	CategoryLearning,
	CategoryOther,
}

// Categories returns every category in declaration order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseCategory matches s against the category labels, ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// NewCelebration creates a celebration with a fresh ID. mediaURLs is copied.
func NewCelebration(title, description string, date time.Time, category Category, mediaURLs []string, starred bool) Celebration {
	return Celebration{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Date:        date,
		Category:    category,
		MediaURLs:   append([]string(nil), mediaURLs...),
		IsStarred:   starred,
	}
}
