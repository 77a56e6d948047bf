package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unowned-ai/jubiland/pkg/journal"
)

// memBackend keeps saved collections in memory and can be told to fail.
type memBackend struct {
	moodEntries  []journal.MoodEntry
	celebrations []journal.Celebration
	loadErr      error
	saveErr      error
	moodSaves    int
	celebSaves   int
}

func (b *memBackend) LoadMoodEntries() ([]journal.MoodEntry, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return b.moodEntries, nil
}

func (b *memBackend) SaveMoodEntries(entries []journal.MoodEntry) error {
	b.moodSaves++
	if b.saveErr != nil {
		return b.saveErr
	}
	b.moodEntries = entries
	return nil
}

func (b *memBackend) LoadCelebrations() ([]journal.Celebration, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return b.celebrations, nil
}

func (b *memBackend) SaveCelebrations(celebrations []journal.Celebration) error {
	b.celebSaves++
	if b.saveErr != nil {
		return b.saveErr
	}
	b.celebrations = celebrations
	return nil
}

func (b *memBackend) Close() error { return nil }

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T, backend Backend) *Store {
	t.Helper()
	s := New(backend, WithClock(func() time.Time { return testNow }), WithLocation(time.UTC))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddThenQueryByDay(t *testing.T) {
	backend := &memBackend{}
	s := setupTestStore(t, backend)

	entry := journal.NewMoodEntry(time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), 4, "good day")
	s.AddMoodEntry(entry)

	got := s.MoodEntriesOn(time.Date(2024, time.June, 10, 22, 45, 0, 0, time.UTC))
	require.Len(t, got, 1)
	assert.Equal(t, entry, got[0])

	assert.Empty(t, s.MoodEntriesOn(time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, backend.moodSaves, "add should write the collection once")
	assert.Equal(t, []journal.MoodEntry{entry}, backend.moodEntries)
}

func TestQueryByDayKeepsOrder(t *testing.T) {
	s := setupTestStore(t, &memBackend{})

	day := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	first := journal.NewMoodEntry(day.Add(20*time.Hour), 2, "evening")
	other := journal.NewMoodEntry(day.AddDate(0, 0, 1), 3, "")
	second := journal.NewMoodEntry(day.Add(8*time.Hour), 5, "morning")
	s.AddMoodEntry(first)
	s.AddMoodEntry(other)
	s.AddMoodEntry(second)

	assert.Equal(t, []journal.MoodEntry{first, second}, s.MoodEntriesOn(day))
}

func TestAddClampsRating(t *testing.T) {
	s := setupTestStore(t, &memBackend{})

	entry := journal.MoodEntry{ID: uuid.New(), Date: testNow, Rating: 11}
	s.AddMoodEntry(entry)

	got, err := s.MoodEntry(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)
}

func TestUpdateMoodEntry(t *testing.T) {
	backend := &memBackend{}
	s := setupTestStore(t, backend)

	entry := journal.NewMoodEntry(testNow, 2, "meh")
	s.AddMoodEntry(entry)

	entry.Rating = 4
	entry.Note = "better after lunch"
	assert.True(t, s.UpdateMoodEntry(entry))

	got, err := s.MoodEntry(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry, got)
	assert.Equal(t, 2, backend.moodSaves)
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	backend := &memBackend{}
	s := setupTestStore(t, backend)

	s.AddMoodEntry(journal.NewMoodEntry(testNow, 3, "a"))
	s.AddCelebration(journal.NewCelebration("b", "", testNow, journal.CategoryWork, nil, false))
	beforeMoods := s.MoodEntries()
	beforeCelebrations := s.Celebrations()

	assert.False(t, s.UpdateMoodEntry(journal.NewMoodEntry(testNow, 5, "stranger")))
	assert.False(t, s.UpdateCelebration(journal.NewCelebration("stranger", "", testNow, journal.CategoryOther, nil, true)))

	assert.Equal(t, beforeMoods, s.MoodEntries())
	assert.Equal(t, beforeCelebrations, s.Celebrations())
	assert.Equal(t, 1, backend.moodSaves, "no write for an unknown id")
	assert.Equal(t, 1, backend.celebSaves, "no write for an unknown id")
}

func TestUpdateReplacesFirstMatchOnly(t *testing.T) {
	s := setupTestStore(t, &memBackend{})

	entry := journal.NewMoodEntry(testNow, 1, "first")
	dup := entry
	dup.Note = "duplicate id"
	s.AddMoodEntry(entry)
	s.AddMoodEntry(dup)

	replacement := entry
	replacement.Rating = 5
	require.True(t, s.UpdateMoodEntry(replacement))

	all := s.MoodEntries()
	require.Len(t, all, 2)
	assert.Equal(t, 5, all[0].Rating)
	assert.Equal(t, "duplicate id", all[1].Note)
}

func TestDeleteRemovesOnlyMatching(t *testing.T) {
	backend := &memBackend{}
	s := setupTestStore(t, backend)

	keep1 := journal.NewMoodEntry(testNow, 2, "keep")
	target := journal.NewMoodEntry(testNow, 3, "target")
	keep2 := journal.NewMoodEntry(testNow, 4, "keep too")
	s.AddMoodEntry(keep1)
	s.AddMoodEntry(target)
	s.AddMoodEntry(keep2)
	s.AddMoodEntry(target)

	assert.Equal(t, 2, s.DeleteMoodEntry(target.ID))
	assert.Equal(t, []journal.MoodEntry{keep1, keep2}, s.MoodEntries())
	assert.Equal(t, []journal.MoodEntry{keep1, keep2}, backend.moodEntries)

	_, err := s.MoodEntry(target.ID)
	assert.ErrorIs(t, err, ErrMoodEntryNotFound)

	assert.Equal(t, 0, s.DeleteMoodEntry(uuid.New()))
	assert.Len(t, s.MoodEntries(), 2)
}

func TestDeleteCelebration(t *testing.T) {
	s := setupTestStore(t, &memBackend{})

	a := journal.NewCelebration("a", "", testNow, journal.CategoryWork, nil, false)
	b := journal.NewCelebration("b", "", testNow, journal.CategoryHealth, nil, false)
	s.AddCelebration(a)
	s.AddCelebration(b)

	assert.Equal(t, 1, s.DeleteCelebration(a.ID))
	assert.Equal(t, []journal.Celebration{b}, s.Celebrations())

	_, err := s.Celebration(a.ID)
	assert.ErrorIs(t, err, ErrCelebrationNotFound)
}

func TestToggleStarCelebration(t *testing.T) {
	backend := &memBackend{}
	s := setupTestStore(t, backend)

	c := journal.NewCelebration("Finished the Go course", "All 12 modules", testNow, journal.CategoryLearning, []string{"file:///cert.png"}, false)
	s.AddCelebration(c)

	updated, ok := s.ToggleStarCelebration(c.ID)
	require.True(t, ok)
	assert.True(t, updated.IsStarred)

	stored, err := s.Celebration(c.ID)
	require.NoError(t, err)

	want := c
	want.IsStarred = true
	assert.Equal(t, want, stored)
	assert.Equal(t, []journal.Celebration{want}, backend.celebrations)
	assert.Equal(t, []journal.Celebration{want}, s.StarredCelebrations())

	updated, ok = s.ToggleStarCelebration(c.ID)
	require.True(t, ok)
	assert.False(t, updated.IsStarred)
	assert.Empty(t, s.StarredCelebrations())

	_, ok = s.ToggleStarCelebration(uuid.New())
	assert.False(t, ok)
}

func TestCelebrationsOn(t *testing.T) {
	s := setupTestStore(t, &memBackend{})

	c := journal.NewCelebration("Anniversary", "", time.Date(2024, time.June, 1, 19, 0, 0, 0, time.UTC), journal.CategoryRelationship, nil, true)
	s.AddCelebration(c)
	s.AddCelebration(journal.NewCelebration("Other day", "", time.Date(2024, time.June, 2, 19, 0, 0, 0, time.UTC), journal.CategoryOther, nil, false))

	assert.Equal(t, []journal.Celebration{c}, s.CelebrationsOn(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := setupTestStore(t, &memBackend{})

	c := journal.NewCelebration("Photo day", "", testNow, journal.CategoryPersonal, []string{"file:///1.jpg"}, false)
	s.AddCelebration(c)

	snapshot := s.Celebrations()
	snapshot[0].Title = "changed"
	snapshot[0].MediaURLs[0] = "changed"

	stored, err := s.Celebration(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Photo day", stored.Title)
	assert.Equal(t, []string{"file:///1.jpg"}, stored.MediaURLs)
}

func TestSaveMoodForDay(t *testing.T) {
	s := setupTestStore(t, &memBackend{})

	morning := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)
	created := s.SaveMoodForDay(morning, 2, "groggy")
	assert.Equal(t, 2, created.Rating)
	require.Len(t, s.MoodEntries(), 1)

	evening := time.Date(2024, time.June, 15, 21, 0, 0, 0, time.UTC)
	updated := s.SaveMoodForDay(evening, 9, "great dinner")

	assert.Equal(t, created.ID, updated.ID, "same day updates the existing entry")
	assert.True(t, updated.Date.Equal(morning), "update keeps the original date")
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "great dinner", updated.Note)
	assert.Len(t, s.MoodEntries(), 1)

	next := s.SaveMoodForDay(morning.AddDate(0, 0, 1), 3, "")
	assert.NotEqual(t, created.ID, next.ID)
	assert.Len(t, s.MoodEntries(), 2)
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	backend := &memBackend{saveErr: errors.New("disk full")}
	s := setupTestStore(t, backend)

	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	entry := journal.NewMoodEntry(testNow, 3, "still here")
	s.AddMoodEntry(entry)

	assert.Equal(t, []journal.MoodEntry{entry}, s.MoodEntries())
	assert.Nil(t, backend.moodEntries)
	require.Len(t, changes, 1)
	assert.EqualError(t, changes[0].SaveErr, "disk full")

	// The next mutation retries with the full collection.
	backend.saveErr = nil
	second := journal.NewMoodEntry(testNow, 4, "")
	s.AddMoodEntry(second)
	assert.Equal(t, []journal.MoodEntry{entry, second}, backend.moodEntries)
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	s := setupTestStore(t, &memBackend{loadErr: errors.New("corrupt")})
	assert.Empty(t, s.MoodEntries())
	assert.Empty(t, s.Celebrations())
}

func TestSubscribe(t *testing.T) {
	s := setupTestStore(t, &memBackend{})

	var changes []Change
	unsubscribe := s.Subscribe(func(c Change) { changes = append(changes, c) })

	entry := journal.NewMoodEntry(testNow, 3, "")
	s.AddMoodEntry(entry)
	s.UpdateMoodEntry(entry)
	s.DeleteMoodEntry(entry.ID)
	s.DeleteMoodEntry(entry.ID) // nothing left to remove

	c := journal.NewCelebration("x", "", testNow, journal.CategoryOther, nil, false)
	s.AddCelebration(c)
	s.ToggleStarCelebration(c.ID)

	require.Len(t, changes, 5)
	assert.Equal(t, Change{Collection: MoodEntries, Op: OpAdd, ID: entry.ID}, changes[0])
	assert.Equal(t, OpUpdate, changes[1].Op)
	assert.Equal(t, OpDelete, changes[2].Op)
	assert.Equal(t, Change{Collection: Celebrations, Op: OpAdd, ID: c.ID}, changes[3])
	assert.Equal(t, OpToggleStar, changes[4].Op)

	unsubscribe()
	s.AddMoodEntry(journal.NewMoodEntry(testNow, 3, ""))
	assert.Len(t, changes, 5)
}

func TestConcurrentMutationsAndReads(t *testing.T) {
	backend := &memBackend{}
	s := setupTestStore(t, backend)

	var notified atomic.Int64
	s.Subscribe(func(c Change) {
		notified.Add(1)
		// Observers run outside the lock and may read back.
		_ = s.Insights(journal.RangeWeek)
	})

	const workers = 16
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			entry := journal.NewMoodEntry(testNow, i%5+1, "")
			s.AddMoodEntry(entry)
			entry.Note = "edited"
			assert.True(t, s.UpdateMoodEntry(entry))

			c := journal.NewCelebration("win", "", testNow, journal.CategoryWork, nil, false)
			s.AddCelebration(c)
			_, ok := s.ToggleStarCelebration(c.ID)
			assert.True(t, ok)

			_ = s.Insights(journal.RangeDay)
			_ = s.MoodEntriesOn(testNow)
			_ = s.StarredCelebrations()

			if i%2 == 0 {
				assert.Equal(t, 1, s.DeleteMoodEntry(entry.ID))
				assert.Equal(t, 1, s.DeleteCelebration(c.ID))
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.MoodEntries(), workers/2)
	assert.Len(t, s.Celebrations(), workers/2)
	assert.Len(t, s.StarredCelebrations(), workers/2)
	for _, e := range s.MoodEntries() {
		assert.Equal(t, "edited", e.Note)
	}
	// Four changes per worker, plus two deletes for every other worker.
	assert.Equal(t, int64(workers*4+workers), notified.Load())
	assert.Len(t, backend.moodEntries, workers/2)
}

func TestObserverCanReadStore(t *testing.T) {
	s := setupTestStore(t, &memBackend{})

	var seen int
	s.Subscribe(func(Change) { seen = len(s.MoodEntries()) })

	s.AddMoodEntry(journal.NewMoodEntry(testNow, 3, ""))
	assert.Equal(t, 1, seen)
}

func TestJSONFilesPersistAcrossStores(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	backend, err := NewJSONFiles(dir)
	require.NoError(t, err)

	s := setupTestStore(t, backend)
	entry := journal.NewMoodEntry(time.Date(2024, time.June, 14, 9, 0, 0, 0, time.UTC), 4, "saved")
	c := journal.NewCelebration("Saved", "to disk", time.Date(2024, time.June, 14, 10, 0, 0, 0, time.UTC), journal.CategoryWork, []string{"file:///x.png"}, true)
	s.AddMoodEntry(entry)
	s.AddCelebration(c)

	assert.FileExists(t, filepath.Join(dir, MoodEntriesFile))
	assert.FileExists(t, filepath.Join(dir, CelebrationsFile))

	reopened := setupTestStore(t, backend)
	assert.Equal(t, []journal.MoodEntry{entry}, reopened.MoodEntries())
	assert.Equal(t, []journal.Celebration{c}, reopened.Celebrations())
}

func TestJSONFilesCorruptOrMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, MoodEntriesFile), []byte(`[{"id": "broken"`), 0o644))

	backend, err := NewJSONFiles(dir)
	require.NoError(t, err)

	_, err = backend.LoadCelebrations()
	assert.ErrorIs(t, err, os.ErrNotExist)

	s := setupTestStore(t, backend)
	assert.Empty(t, s.MoodEntries())
	assert.Empty(t, s.Celebrations())

	// The next save overwrites the corrupt file.
	entry := journal.NewMoodEntry(testNow, 3, "")
	s.AddMoodEntry(entry)
	loaded, err := backend.LoadMoodEntries()
	require.NoError(t, err)
	assert.Equal(t, []journal.MoodEntry{entry}, loaded)
}

func TestJSONFilesWritesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewJSONFiles(dir)
	require.NoError(t, err)

	s := setupTestStore(t, backend)
	entry := journal.NewMoodEntry(testNow, 3, "")
	s.AddMoodEntry(entry)
	s.DeleteMoodEntry(entry.ID)

	data, err := os.ReadFile(filepath.Join(dir, MoodEntriesFile))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}
