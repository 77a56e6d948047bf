package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/unowned-ai/jubiland/pkg/journal"
	"github.com/unowned-ai/jubiland/pkg/store"
)

// storeChangedMsg is sent when the store reports a mutation.
type storeChangedMsg store.Change

type insightsMsg store.Insights

// List mood entries from the store and return tea data
func listMoodEntries(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		entries := st.MoodEntries()
		if entries == nil {
			entries = []journal.MoodEntry{}
		}
		return entries
	}
}

// List celebrations from the store and return tea data
func listCelebrations(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		celebrations := st.Celebrations()
		if celebrations == nil {
			celebrations = []journal.Celebration{}
		}
		return celebrations
	}
}

func loadInsights(st *store.Store, r journal.TimeRange) tea.Cmd {
	return func() tea.Msg {
		return insightsMsg(st.Insights(r))
	}
}

func saveMoodForDay(st *store.Store, date time.Time, rating int, note string) tea.Cmd {
	return func() tea.Msg {
		st.SaveMoodForDay(date, rating, note)
		return listMoodEntries(st)()
	}
}

func deleteMoodEntry(st *store.Store, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		st.DeleteMoodEntry(id)
		return listMoodEntries(st)()
	}
}

func addCelebration(st *store.Store, c journal.Celebration) tea.Cmd {
	return func() tea.Msg {
		st.AddCelebration(c)
		return listCelebrations(st)()
	}
}

func toggleStar(st *store.Store, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		st.ToggleStarCelebration(id)
		return listCelebrations(st)()
	}
}

func deleteCelebration(st *store.Store, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		st.DeleteCelebration(id)
		return listCelebrations(st)()
	}
}
