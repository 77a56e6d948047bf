package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unowned-ai/jubiland/pkg/journal"
	"github.com/unowned-ai/jubiland/pkg/store"
)

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 10))
	assert.Equal(t, "one two", truncateText("one\ntwo", 10))
	assert.Equal(t, "abcdefg...", truncateText("abcdefghijklmnop", 10))
}

func TestPrintInsights(t *testing.T) {
	var buf bytes.Buffer
	printInsights(&buf, store.Insights{
		Range:            journal.RangeWeek,
		AverageMood:      4,
		MoodEntryCount:   2,
		Distribution:     map[int]int{1: 0, 2: 0, 3: 1, 4: 0, 5: 1},
		CelebrationCount: 3,
	})

	out := buf.String()
	assert.Contains(t, out, "This Week")
	assert.Contains(t, out, "Average mood: 4.00")
	assert.Contains(t, out, "(2 entries)")
	assert.Contains(t, out, "Celebrations: 3")
}

func TestPrintInsightsWithoutEntries(t *testing.T) {
	var buf bytes.Buffer
	printInsights(&buf, store.Insights{Range: journal.RangeDay, Distribution: map[int]int{}})
	assert.Contains(t, buf.String(), "Average mood: no entries")
}

func TestPrintTablesWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	printMoodEntryTable(&buf, nil, time.UTC)
	printCelebrationTable(&buf, nil, time.UTC)
	assert.Equal(t, "No mood entries found.\nNo celebrations found.\n", buf.String())
}

func TestWatchSavesReportsWriteFailure(t *testing.T) {
	dir := t.TempDir()
	files, err := store.NewJSONFiles(dir)
	require.NoError(t, err)

	st := store.New(files)
	defer st.Close()

	saveErr := watchSaves(st)
	st.AddMoodEntry(journal.NewMoodEntry(time.Now(), 4, ""))
	assert.NoError(t, saveErr())

	// A directory where the file should be makes the next write fail.
	target := filepath.Join(dir, store.CelebrationsFile)
	require.NoError(t, os.RemoveAll(target))
	require.NoError(t, os.Mkdir(target, 0o755))

	st.AddCelebration(journal.NewCelebration("Shipped", "", time.Now(), journal.CategoryWork, nil, false))
	assert.Error(t, saveErr())
}
