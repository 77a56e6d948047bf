package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCelebration(t *testing.T) {
	valid := NewCelebration("Promotion", "Finally", time.Now(), CategoryWork, []string{"https://example.com/p.jpg"}, false)
	assert.NoError(t, ValidateCelebration(valid))

	missingTitle := valid
	missingTitle.Title = ""
	err := ValidateCelebration(missingTitle)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "title is required")

	badCategory := valid
	badCategory.Category = "Hobby"
	err = ValidateCelebration(badCategory)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "category must be one of")

	badMedia := valid
	badMedia.MediaURLs = []string{"not a url"}
	assert.ErrorIs(t, ValidateCelebration(badMedia), ErrValidation)
}

func TestValidateMoodEntry(t *testing.T) {
	assert.NoError(t, ValidateMoodEntry(NewMoodEntry(time.Now(), 12, "ratings are clamped, not rejected")))

	long := NewMoodEntry(time.Now(), 3, strings.Repeat("a", 5000))
	assert.ErrorIs(t, ValidateMoodEntry(long), ErrValidation)
}
