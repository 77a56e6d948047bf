package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unowned-ai/jubiland/pkg/display"
	"github.com/unowned-ai/jubiland/pkg/journal"
	"github.com/unowned-ai/jubiland/pkg/store"
)

const (
	tabMood = iota
	tabCelebrations
	tabInsights
)

var tabNames = []string{"Mood", "Celebrations", "Insights"}

type model struct {
	st          *store.Store
	storageInfo string

	tab      int // 0 = mood, 1 = celebrations, 2 = insights
	width    int // Current terminal width (for layout)
	height   int // Current terminal height
	err      error
	status   string // last persistence problem, shown in the info panel
	quitting bool

	moodEntries   []journal.MoodEntry
	moodCursor    int
	moodDay       time.Time // day the 1-5 keys log for; never after today
	moodLogging   bool
	moodRating    int
	moodNoteInput textinput.Model

	celebrations             []journal.Celebration
	celebrationCursor        int
	celebrationCreating      bool
	celebrationCreatingStep  int // 0 = title, 1 = description, 2 = category
	celebrationCreatingError string
	celebrationTitleInput    textinput.Model
	celebrationDescInput     textinput.Model
	celebrationCategoryInput textinput.Model

	deleting         bool
	deleteConfirmIdx int // 0 = "Yes" selected, 1 = "No"

	insightsRange journal.TimeRange
	insights      store.Insights
}

// Initialize TUI model
func initModel(st *store.Store, storageInfo string) model {
	note := textinput.New()
	note.Placeholder = "How was today? (optional)"
	note.CharLimit = 4096

	title := textinput.New()
	title.Placeholder = "What are you celebrating?"
	title.CharLimit = 256

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 4096

	category := textinput.New()
	category.Placeholder = strings.ToLower(categoryChoices()) + " (default other)"
	category.CharLimit = 32

	return model{
		st:          st,
		storageInfo: storageInfo,

		moodEntries:   []journal.MoodEntry{},
		moodDay:       st.Now(),
		moodRating:    journal.DefaultRating,
		moodNoteInput: note,

		celebrations:             []journal.Celebration{},
		celebrationTitleInput:    title,
		celebrationDescInput:     desc,
		celebrationCategoryInput: category,

		insightsRange: journal.RangeWeek,
	}
}

func categoryChoices() string {
	cats := journal.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Execute commands concurrently with no ordering guarantees during initialization
func (m model) Init() tea.Cmd {
	return tea.Batch(
		listMoodEntries(m.st),
		listCelebrations(m.st),
		loadInsights(m.st, m.insightsRange),
	)
}

// Processes events like window resize, errors, loaded data, and key presses
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case error:
		m.err = msg
		return m, nil

	case []journal.MoodEntry:
		m.moodEntries = msg
		m.moodCursor = clampCursor(m.moodCursor, len(m.moodEntries))
		return m, loadInsights(m.st, m.insightsRange)

	case []journal.Celebration:
		m.celebrations = msg
		m.celebrationCursor = clampCursor(m.celebrationCursor, len(m.celebrations))
		return m, loadInsights(m.st, m.insightsRange)

	case insightsMsg:
		m.insights = store.Insights(msg)
		return m, nil

	case storeChangedMsg:
		if msg.SaveErr != nil {
			m.status = fmt.Sprintf("%s not saved: %v", msg.Collection, msg.SaveErr)
		} else {
			m.status = ""
		}
		if msg.Collection == store.Celebrations {
			return m, listCelebrations(m.st)
		}
		return m, listMoodEntries(m.st)

	case tea.KeyMsg:
		if m.moodLogging {
			return m.updateMoodLogging(msg)
		}
		if m.celebrationCreating {
			return m.updateCelebrationCreating(msg)
		}
		if m.deleting {
			return m.updateDeleting(msg)
		}
		return m.updateRoot(msg)
	}

	return m, nil
}

func (m model) updateMoodLogging(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		cmd := saveMoodForDay(m.st, m.moodDay, m.moodRating, strings.TrimSpace(m.moodNoteInput.Value()))
		m.moodLogging = false
		m.moodNoteInput.Reset()
		m.moodNoteInput.Blur()
		return m, cmd

	case tea.KeyEsc:
		m.moodLogging = false
		m.moodNoteInput.Reset()
		m.moodNoteInput.Blur()
		return m, nil

	case tea.KeyUp:
		m.moodRating = journal.ClampRating(m.moodRating + 1)
		return m, nil

	case tea.KeyDown:
		m.moodRating = journal.ClampRating(m.moodRating - 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.moodNoteInput, cmd = m.moodNoteInput.Update(msg)
	return m, cmd
}

func (m model) updateCelebrationCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		switch m.celebrationCreatingStep {
		case 0:
			if strings.TrimSpace(m.celebrationTitleInput.Value()) == "" {
				m.celebrationCreatingError = "Title cannot be empty"
				return m, nil
			}
			m.celebrationCreatingError = ""
			m.celebrationCreatingStep = 1
			m.celebrationTitleInput.Blur()
			m.celebrationDescInput.Focus()
			return m, nil

		case 1:
			m.celebrationCreatingStep = 2
			m.celebrationDescInput.Blur()
			m.celebrationCategoryInput.Focus()
			return m, nil

		default:
			category := journal.CategoryOther
			if raw := strings.TrimSpace(m.celebrationCategoryInput.Value()); raw != "" {
				parsed, err := journal.ParseCategory(raw)
				if err != nil {
					m.celebrationCreatingError = "Category must be one of " + categoryChoices()
					return m, nil
				}
				category = parsed
			}

			c := journal.NewCelebration(
				strings.TrimSpace(m.celebrationTitleInput.Value()),
				strings.TrimSpace(m.celebrationDescInput.Value()),
				m.st.Now(), category, nil, false,
			)
			if err := journal.ValidateCelebration(c); err != nil {
				m.celebrationCreatingError = err.Error()
				return m, nil
			}

			m = m.resetCelebrationForm()
			m.celebrationCursor = len(m.celebrations) // highlight the new celebration once listed
			return m, addCelebration(m.st, c)
		}

	case tea.KeyEsc:
		return m.resetCelebrationForm(), nil
	}

	var cmd tea.Cmd
	switch m.celebrationCreatingStep {
	case 0:
		m.celebrationTitleInput, cmd = m.celebrationTitleInput.Update(msg)
	case 1:
		m.celebrationDescInput, cmd = m.celebrationDescInput.Update(msg)
	default:
		m.celebrationCategoryInput, cmd = m.celebrationCategoryInput.Update(msg)
	}
	return m, cmd
}

func (m model) resetCelebrationForm() model {
	m.celebrationCreating = false
	m.celebrationCreatingStep = 0
	m.celebrationCreatingError = ""
	m.celebrationTitleInput.Reset()
	m.celebrationDescInput.Reset()
	m.celebrationCategoryInput.Reset()
	m.celebrationTitleInput.Blur()
	m.celebrationDescInput.Blur()
	m.celebrationCategoryInput.Blur()
	return m
}

func (m model) updateDeleting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.deleteConfirmIdx = 0

	case "down", "j":
		m.deleteConfirmIdx = 1

	case "enter":
		m.deleting = false
		if m.deleteConfirmIdx != 0 {
			return m, nil
		}
		if m.tab == tabMood && len(m.moodEntries) > 0 {
			return m, deleteMoodEntry(m.st, m.moodEntries[m.moodCursor].ID)
		}
		if m.tab == tabCelebrations && len(m.celebrations) > 0 {
			return m, deleteCelebration(m.st, m.celebrations[m.celebrationCursor].ID)
		}

	case "esc":
		m.deleting = false
	}
	return m, nil
}

func (m model) updateRoot(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		// Exit alt screen before quitting so the goodbye message displays
		return m, tea.Sequence(tea.ExitAltScreen, tea.Quit)

	case "tab", "right", "l":
		m.tab = (m.tab + 1) % len(tabNames)

	case "shift+tab", "left", "h":
		m.tab = (m.tab + len(tabNames) - 1) % len(tabNames)

	case "up", "k":
		switch m.tab {
		case tabMood:
			if m.moodCursor > 0 {
				m.moodCursor--
			}
		case tabCelebrations:
			if m.celebrationCursor > 0 {
				m.celebrationCursor--
			}
		case tabInsights:
			return m.shiftRange(-1)
		}

	case "down", "j":
		switch m.tab {
		case tabMood:
			if m.moodCursor < len(m.moodEntries)-1 {
				m.moodCursor++
			}
		case tabCelebrations:
			if m.celebrationCursor < len(m.celebrations)-1 {
				m.celebrationCursor++
			}
		case tabInsights:
			return m.shiftRange(1)
		}

	case "1", "2", "3", "4", "5":
		if m.tab != tabMood {
			return m, nil
		}
		m.moodRating, _ = strconv.Atoi(msg.String())
		m.moodNoteInput.Reset()
		if onDay := m.st.MoodEntriesOn(m.moodDay); len(onDay) > 0 {
			m.moodNoteInput.SetValue(onDay[0].Note)
		}
		m.moodNoteInput.Focus()
		m.moodLogging = true

	case "[":
		if m.tab == tabMood {
			m.moodDay = m.moodDay.AddDate(0, 0, -1)
		}

	case "]":
		if m.tab == tabMood {
			m.moodDay = m.shiftDayForward()
		}

	case "t":
		if m.tab == tabMood {
			m.moodDay = m.st.Now()
		}

	case "n":
		if m.tab != tabCelebrations {
			return m, nil
		}
		m = m.resetCelebrationForm()
		m.celebrationTitleInput.Focus()
		m.celebrationCreating = true

	case "s":
		if m.tab == tabCelebrations && len(m.celebrations) > 0 {
			return m, toggleStar(m.st, m.celebrations[m.celebrationCursor].ID)
		}

	case "d":
		if (m.tab == tabMood && len(m.moodEntries) > 0) ||
			(m.tab == tabCelebrations && len(m.celebrations) > 0) {
			m.deleteConfirmIdx = 1
			m.deleting = true
		}

	case "r":
		if m.tab == tabInsights {
			return m.shiftRange(1)
		}
	}
	return m, nil
}

// shiftDayForward moves the mood day one day later, stopping at today.
func (m model) shiftDayForward() time.Time {
	now := m.st.Now()
	next := m.moodDay.AddDate(0, 0, 1)
	if next.After(now) || journal.SameDay(next, now, m.st.Location()) {
		return now
	}
	return next
}

func (m model) moodDayLabel() string {
	if journal.SameDay(m.moodDay, m.st.Now(), m.st.Location()) {
		return "today"
	}
	return m.moodDay.In(m.st.Location()).Format("Mon, Jan 2 2006")
}

// shiftRange moves the insights window by delta, wrapping around.
func (m model) shiftRange(delta int) (tea.Model, tea.Cmd) {
	ranges := journal.TimeRanges()
	idx := 0
	for i, r := range ranges {
		if r == m.insightsRange {
			idx = i
		}
	}
	m.insightsRange = ranges[(idx+delta+len(ranges))%len(ranges)]
	return m, loadInsights(m.st, m.insightsRange)
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// Assembles the UI string for each frame
func (m model) View() string {
	if m.quitting {
		return "Keep celebrating. See you tomorrow.\n"
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	titleBar := titleStyle.Width(m.width).Render("Jubiland - moods and celebrations")

	leftWidth, middleWidth, rightWidth := columnWidths(m.width)
	m.moodNoteInput.Width = rightWidth - bordersAndPaddingWidth
	m.celebrationTitleInput.Width = rightWidth - bordersAndPaddingWidth
	m.celebrationDescInput.Width = rightWidth - bordersAndPaddingWidth
	m.celebrationCategoryInput.Width = rightWidth - bordersAndPaddingWidth

	panelHeight := m.height - panelHeightPadding

	leftPanel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(0, 2).
		Width(leftWidth).Height(panelHeight).
		Render(m.viewTabs(leftWidth))

	middlePanel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(0, 2).
		Width(middleWidth).Height(panelHeight).
		Render(m.viewList(middleWidth))

	rightPanel := lipgloss.NewStyle().Padding(0, 2).
		Width(rightWidth).Height(panelHeight).
		Render(m.viewDetail(rightWidth))

	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, middlePanel, rightPanel)
	footerBar := footerStyle.Width(m.width).Render("\n" + m.footerText())

	return titleBar + "\n\n" + columns + footerBar
}

func (m model) viewTabs(width int) string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Width(width - bordersAndPaddingWidth).Render("  Jubiland"))
	b.WriteString("\n\n")

	for i, name := range tabNames {
		if i == m.tab {
			b.WriteString("> " + selectedStyle.Render(name) + "\n")
		} else {
			b.WriteString("  " + inactiveStyle.Render(name) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Storage: ") + TextStatusColorize(m.storageInfo, 1) + "\n")
	if m.status != "" {
		b.WriteString("\n" + TextStatusColorize(m.status, 2) + "\n")
	}
	return b.String()
}

func (m model) viewList(width int) string {
	var b strings.Builder
	available := width - bordersAndPaddingWidth - 2

	switch m.tab {
	case tabMood:
		b.WriteString(subtitleStyle.Render("  Mood entries") + "\n")
		b.WriteString(mutedStyle.Render("  Logging for "+m.moodDayLabel()) + "\n\n")
		if len(m.moodEntries) == 0 {
			b.WriteString("  No entries yet. Press 1-5 to log a mood.\n")
		}
		for i, e := range m.moodEntries {
			line := truncate(fmt.Sprintf("%s  %s", e.Date.In(m.st.Location()).Format("Mon Jan 2"), display.Mood(e.Rating).Emoji), available)
			b.WriteString(listLine(line, i == m.moodCursor))
		}

	case tabCelebrations:
		b.WriteString(subtitleStyle.Render("  Celebrations") + "\n\n")
		if len(m.celebrations) == 0 {
			b.WriteString("  Nothing yet. Press 'n' to add one.\n")
		}
		for i, c := range m.celebrations {
			line := truncate(fmt.Sprintf("%s %s", display.Category(c.Category).Emoji, c.Title), available-2)
			b.WriteString(starMark(c.IsStarred) + listLine(line, i == m.celebrationCursor))
		}

	case tabInsights:
		b.WriteString(subtitleStyle.Render("  Time range") + "\n\n")
		for _, r := range journal.TimeRanges() {
			b.WriteString(listLine(r.Description(), r == m.insightsRange))
		}
	}
	return b.String()
}

func listLine(text string, selected bool) string {
	if selected {
		return "> " + selectedStyle.Render(text) + "\n"
	}
	return "  " + inactiveStyle.Render(text) + "\n"
}

func (m model) viewDetail(width int) string {
	var b strings.Builder

	switch {
	case m.moodLogging:
		b.WriteString(subtitleStyle.Render("Log mood for "+m.moodDayLabel()) + "\n\n")
		b.WriteString(labelStyle.Render("Rating: ") + moodLabel(m.moodRating) + mutedStyle.Render("  (up/down to change)") + "\n\n")
		b.WriteString("Note: " + m.moodNoteInput.View() + "\n\n")
		b.WriteString("(enter to save, esc to cancel)")

	case m.celebrationCreating:
		b.WriteString(subtitleStyle.Render("New celebration") + "\n\n")
		b.WriteString("Title: " + m.celebrationTitleInput.View() + "\n")
		b.WriteString("Description: " + m.celebrationDescInput.View() + "\n")
		b.WriteString("Category: " + m.celebrationCategoryInput.View() + "\n\n")
		b.WriteString("(enter for next field, esc to cancel)")
		if m.celebrationCreatingError != "" {
			b.WriteString("\n\n" + errorStyle.Render(m.celebrationCreatingError) + "\n")
		}

	case m.deleting:
		if m.tab == tabMood {
			e := m.moodEntries[m.moodCursor]
			b.WriteString(subtitleStyle.Render("Delete mood entry") + "\n\n")
			b.WriteString("Date: " + errorStyle.Render(e.Date.In(m.st.Location()).Format("Monday, January 2 2006")) + "\n\n")
		} else {
			c := m.celebrations[m.celebrationCursor]
			b.WriteString(subtitleStyle.Render("Delete celebration") + "\n\n")
			b.WriteString("Title: " + errorStyle.Render(c.Title) + "\n\n")
		}
		b.WriteString(confirmOptions(m.deleteConfirmIdx))
		b.WriteString("(enter to confirm, esc to cancel, up/down to switch)")

	case m.tab == tabMood:
		b.WriteString(subtitleStyle.Render("Mood") + "\n\n")
		if len(m.moodEntries) == 0 {
			b.WriteString("Select an entry to view details.")
			break
		}
		e := m.moodEntries[m.moodCursor]
		b.WriteString(labelStyle.Render("Date: ") + e.Date.In(m.st.Location()).Format("Monday, January 2 2006 15:04") + "\n\n")
		b.WriteString(labelStyle.Render("Mood: ") + moodLabel(e.Rating) + "\n\n")
		if e.Note != "" {
			b.WriteString(inactiveStyle.Width(width - bordersAndPaddingWidth).Render(e.Note))
		}

	case m.tab == tabCelebrations:
		b.WriteString(subtitleStyle.Render("Celebration") + "\n\n")
		if len(m.celebrations) == 0 {
			b.WriteString("Select a celebration to view details.")
			break
		}
		c := m.celebrations[m.celebrationCursor]
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(labelStyle.Render("Title: ")+inactiveStyle.Render(c.Title)) + " " + starMark(c.IsStarred) + "\n\n")
		b.WriteString(labelStyle.Render("Category: ") + categoryLabel(c.Category) + "\n")
		b.WriteString(labelStyle.Render("Date: ") + c.Date.In(m.st.Location()).Format("Monday, January 2 2006") + "\n\n")
		if c.Description != "" {
			b.WriteString(inactiveStyle.Width(width-bordersAndPaddingWidth).Render(c.Description) + "\n\n")
		}
		if len(c.MediaURLs) > 0 {
			b.WriteString(labelStyle.Render("Media:") + "\n")
			for _, u := range c.MediaURLs {
				b.WriteString(mutedStyle.Render("  "+truncate(u, width-bordersAndPaddingWidth-2)) + "\n")
			}
		}

	case m.tab == tabInsights:
		b.WriteString(subtitleStyle.Render(m.insightsRange.Description()) + "\n\n")
		b.WriteString(m.viewInsights(width))
	}
	return b.String()
}

func (m model) viewInsights(width int) string {
	var b strings.Builder
	in := m.insights

	if in.MoodEntryCount == 0 {
		b.WriteString(labelStyle.Render("Average mood: ") + mutedStyle.Render("no entries") + "\n\n")
	} else {
		rounded := int(in.AverageMood + 0.5)
		b.WriteString(labelStyle.Render("Average mood: ") +
			fmt.Sprintf("%.1f ", in.AverageMood) + moodLabel(rounded) +
			mutedStyle.Render(fmt.Sprintf("  (%d entries)", in.MoodEntryCount)) + "\n\n")
	}

	barWidth := width - bordersAndPaddingWidth - 16
	for r := journal.MaxRating; r >= journal.MinRating; r-- {
		count := in.Distribution[r]
		b.WriteString(fmt.Sprintf("%s %s %d\n",
			display.Mood(r).Emoji,
			lipgloss.NewStyle().Foreground(lipgloss.Color(display.Mood(r).Color)).Render(distributionBar(count, in.MoodEntryCount, barWidth)),
			count))
	}

	b.WriteString("\n" + labelStyle.Render("Celebrations: ") + strconv.Itoa(in.CelebrationCount) + "\n")
	return b.String()
}

func (m model) footerText() string {
	switch m.tab {
	case tabMood:
		return "tab to switch • ↑/↓ to navigate • [/] to change day • t for today • 1-5 to log • d to delete • q to quit"
	case tabCelebrations:
		return "tab to switch • ↑/↓ to navigate • n to add • s to star • d to delete • q to quit"
	default:
		return "tab to switch • ↑/↓ or r to change range • q to quit"
	}
}

// ShowTUI runs the terminal UI until the user quits. storageInfo is shown in
// the info panel.
func ShowTUI(st *store.Store, storageInfo string) error {
	p := tea.NewProgram(initModel(st, storageInfo), tea.WithAltScreen())

	// Observers run on the mutating goroutine; Send must not block it.
	unsubscribe := st.Subscribe(func(c store.Change) {
		go p.Send(storeChangedMsg(c))
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}
