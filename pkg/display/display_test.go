package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unowned-ai/jubiland/pkg/journal"
)

func TestEveryCategoryHasAStyle(t *testing.T) {
	for _, c := range journal.Categories() {
		_, ok := categoryStyles[c]
		assert.True(t, ok, "missing style for %s", c)
	}
	assert.Equal(t, "book.fill", Category(journal.CategoryLearning).Symbol)
	assert.Equal(t, Category(journal.CategoryOther), Category("Hobby"))
}

func TestMood(t *testing.T) {
	assert.Equal(t, "Sad", Mood(1).Description)
	assert.Equal(t, "Great", Mood(5).Description)
	assert.Equal(t, "😐", Mood(3).Emoji)

	fallback := Mood(0)
	assert.Equal(t, "Neutral", fallback.Description)
	assert.Equal(t, "#8e8e93", fallback.Color)
	assert.Equal(t, "#ffd60a", Mood(3).Color, "fallback must not change the real neutral style")
}
