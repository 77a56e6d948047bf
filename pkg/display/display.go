// Package display maps journal values to the icons, colors and labels used
// by the terminal surfaces. None of this is persisted.
package display

import (
	"github.com/unowned-ai/jubiland/pkg/journal"
)

// CategoryStyle describes how a celebration category is drawn.
type CategoryStyle struct {
	Symbol string // SF Symbols name used by the mobile app
	Emoji  string
	Color  string // hex
}

// MoodStyle describes how a rating is drawn.
type MoodStyle struct {
	Emoji       string
	Description string
	Color       string // hex
}

var categoryStyles = map[journal.Category]CategoryStyle{
	journal.CategoryPersonal:     {Symbol: "person.fill", Emoji: "👤", Color: "#0a84ff"},
	journal.CategoryWork:         {Symbol: "briefcase.fill", Emoji: "💼", Color: "#bf5af2"},
	journal.CategoryHealth:       {Symbol: "heart.fill", Emoji: "💚", Color: "#30d158"},
	journal.CategoryRelationship: {Symbol: "person.2.fill", Emoji: "💞", Color: "#ff375f"},
	journal.CategoryLearning:     {Symbol: "book.fill", Emoji: "📚", Color: "#ff9f0a"},
	journal.CategoryOther:        {Symbol: "star.fill", Emoji: "⭐", Color: "#8e8e93"},
}

var moodStyles = map[int]MoodStyle{
	1: {Emoji: "😔", Description: "Sad", Color: "#ff453a"},
	2: {Emoji: "😕", Description: "Down", Color: "#ff9f0a"},
	3: {Emoji: "😐", Description: "Neutral", Color: "#ffd60a"},
	4: {Emoji: "🙂", Description: "Good", Color: "#30d158"},
	5: {Emoji: "😊", Description: "Great", Color: "#0a84ff"},
}

// Category returns the style for c. Unknown categories are drawn as Other.
func Category(c journal.Category) CategoryStyle {
	if s, ok := categoryStyles[c]; ok {
		return s
	}
	return categoryStyles[journal.CategoryOther]
}

// Mood returns the style for a rating. Out-of-range ratings are drawn as
// neutral, with a gray color.
func Mood(rating int) MoodStyle {
	if s, ok := moodStyles[rating]; ok {
		return s
	}
	neutral := moodStyles[journal.DefaultRating]
	neutral.Color = "#8e8e93"
	return neutral
}
