package tui

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unowned-ai/jubiland/pkg/journal"
	"github.com/unowned-ai/jubiland/pkg/store"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func setupTestModel(t *testing.T) (model, *store.Store) {
	t.Helper()
	backend, err := store.NewJSONFiles(t.TempDir())
	require.NoError(t, err)

	st := store.New(backend, store.WithClock(func() time.Time { return testNow }), store.WithLocation(time.UTC))
	t.Cleanup(func() { st.Close() })

	m := initModel(st, "test")
	m.width, m.height = 120, 40

	// A blinking cursor returns timer commands that would stall send.
	m.moodNoteInput.Cursor.SetMode(cursor.CursorStatic)
	m.celebrationTitleInput.Cursor.SetMode(cursor.CursorStatic)
	m.celebrationDescInput.Cursor.SetMode(cursor.CursorStatic)
	m.celebrationCategoryInput.Cursor.SetMode(cursor.CursorStatic)
	return m, st
}

// send feeds msg to the model and then runs the returned command once,
// feeding its message back as the app loop would.
func send(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(model)
	if cmd != nil {
		if result := cmd(); result != nil {
			if _, isBatch := result.(tea.BatchMsg); !isBatch {
				next, _ = m.Update(result)
				m = next.(model)
			}
		}
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestLogMoodFromKeys(t *testing.T) {
	m, st := setupTestModel(t)

	m = send(t, m, key("4"))
	require.True(t, m.moodLogging)
	assert.Equal(t, 4, m.moodRating)

	m = send(t, m, key("up"))
	m = send(t, m, key("up"))
	assert.Equal(t, 5, m.moodRating, "rating stays within range")

	m = send(t, m, key("sunny walk"))
	m = send(t, m, key("enter"))

	assert.False(t, m.moodLogging)
	require.Len(t, m.moodEntries, 1)
	assert.Equal(t, 5, m.moodEntries[0].Rating)
	assert.Equal(t, "sunny walk", m.moodEntries[0].Note)

	// Logging again the same day updates the entry.
	m = send(t, m, key("2"))
	assert.Equal(t, "sunny walk", m.moodNoteInput.Value(), "today's note is prefilled")
	m = send(t, m, key("enter"))

	entries := st.MoodEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Rating)
}

func TestLogMoodForEarlierDay(t *testing.T) {
	m, st := setupTestModel(t)

	m = send(t, m, key("]"))
	assert.True(t, journal.SameDay(testNow, m.moodDay, time.UTC), "cannot move past today")

	m = send(t, m, key("["))
	m = send(t, m, key("["))
	yesterday := testNow.AddDate(0, 0, -1)

	m = send(t, m, key("]"))
	assert.True(t, journal.SameDay(yesterday, m.moodDay, time.UTC))

	m = send(t, m, key("3"))
	m = send(t, m, key("enter"))
	require.Len(t, st.MoodEntriesOn(yesterday), 1)
	assert.Empty(t, st.MoodEntriesOn(testNow))

	// The note of the selected day is prefilled, not today's.
	st.SaveMoodForDay(testNow, 5, "today")
	m = send(t, m, key("4"))
	assert.Equal(t, "", m.moodNoteInput.Value())
	m = send(t, m, key("esc"))

	m = send(t, m, key("t"))
	assert.True(t, journal.SameDay(testNow, m.moodDay, time.UTC))
	assert.Contains(t, m.View(), "Logging for today")
}

func TestCancelMoodLogging(t *testing.T) {
	m, st := setupTestModel(t)

	m = send(t, m, key("3"))
	m = send(t, m, key("esc"))

	assert.False(t, m.moodLogging)
	assert.Empty(t, st.MoodEntries())
}

func TestCreateStarAndDeleteCelebration(t *testing.T) {
	m, st := setupTestModel(t)

	m = send(t, m, key("tab"))
	require.Equal(t, tabCelebrations, m.tab)

	m = send(t, m, key("n"))
	require.True(t, m.celebrationCreating)

	m = send(t, m, key("enter"))
	assert.Equal(t, "Title cannot be empty", m.celebrationCreatingError)

	m = send(t, m, key("Ran 10k"))
	m = send(t, m, key("enter"))
	m = send(t, m, key("personal best"))
	m = send(t, m, key("enter"))
	m = send(t, m, key("hobby"))
	m = send(t, m, key("enter"))
	assert.True(t, m.celebrationCreating, "unknown category keeps the form open")

	m.celebrationCategoryInput.SetValue("HEALTH")
	m = send(t, m, key("enter"))

	assert.False(t, m.celebrationCreating)
	require.Len(t, m.celebrations, 1)
	c := m.celebrations[0]
	assert.Equal(t, "Ran 10k", c.Title)
	assert.Equal(t, "personal best", c.Description)
	assert.Equal(t, journal.CategoryHealth, c.Category)
	assert.True(t, c.Date.Equal(testNow))

	m = send(t, m, key("s"))
	require.Len(t, m.celebrations, 1)
	assert.True(t, m.celebrations[0].IsStarred)

	m = send(t, m, key("d"))
	require.True(t, m.deleting)
	m = send(t, m, key("enter")) // "No" is preselected
	assert.Len(t, st.Celebrations(), 1)

	m = send(t, m, key("d"))
	m = send(t, m, key("up"))
	m = send(t, m, key("enter"))
	assert.Empty(t, m.celebrations)
	assert.Empty(t, st.Celebrations())
}

func TestInsightsRangeCycling(t *testing.T) {
	m, st := setupTestModel(t)
	st.AddMoodEntry(journal.NewMoodEntry(testNow.AddDate(0, 0, -20), 5, ""))

	m.tab = tabInsights
	m = send(t, m, key("r"))
	assert.Equal(t, journal.RangeMonth, m.insightsRange)
	assert.Equal(t, 1, m.insights.MoodEntryCount)

	m = send(t, m, key("up"))
	assert.Equal(t, journal.RangeWeek, m.insightsRange)
	assert.Equal(t, 0, m.insights.MoodEntryCount)
}

func TestStoreChangeReloads(t *testing.T) {
	m, st := setupTestModel(t)

	st.AddCelebration(journal.NewCelebration("External", "", testNow, journal.CategoryWork, nil, false))
	m = send(t, m, storeChangedMsg{Collection: store.Celebrations, Op: store.OpAdd})

	require.Len(t, m.celebrations, 1)
	assert.Empty(t, m.status)
}

func TestViewRenders(t *testing.T) {
	m, st := setupTestModel(t)
	st.AddMoodEntry(journal.NewMoodEntry(testNow, 4, "fine"))
	m = send(t, m, listMoodEntries(st)())

	for _, tab := range []int{tabMood, tabCelebrations, tabInsights} {
		m.tab = tab
		assert.Contains(t, m.View(), "Jubiland")
	}
}
