package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unowned-ai/jubiland/pkg/config"
	pkgdb "github.com/unowned-ai/jubiland/pkg/db"
	"github.com/unowned-ai/jubiland/pkg/display"
	"github.com/unowned-ai/jubiland/pkg/journal"
	"github.com/unowned-ai/jubiland/pkg/store"
	"github.com/unowned-ai/jubiland/pkg/utils"
)

// openStore builds the configured backend and loads the store from it. The
// returned description names where the data lives.
func openStore() (*store.Store, string, error) {
	dataDir, err := utils.ResolveAndEnsureDataDir(cfg.DataDir)
	if err != nil {
		return nil, "", err
	}

	var (
		backend store.Backend
		where   string
	)
	switch cfg.Backend {
	case config.BackendSQLite:
		dbPath, err := utils.ResolveAndEnsureDBPath(cfg.DBPath, dataDir)
		if err != nil {
			return nil, "", err
		}

		dbConn, err := pkgdb.OpenDBConnection(dbPath, cfg.WAL, cfg.Sync)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open database connection: %w", err)
		}

		// Automatically initialize or migrate the database schema.
		if err := pkgdb.UpgradeDB(dbConn, logger, dbPath, pkgdb.TargetSchemaVersion); err != nil {
			dbConn.Close()
			return nil, "", fmt.Errorf("failed to initialize/upgrade database schema for '%s': %w", dbPath, err)
		}

		backend = store.NewSQLite(dbConn)
		where = dbPath
	default:
		files, err := store.NewJSONFiles(dataDir)
		if err != nil {
			return nil, "", err
		}
		backend = files
		where = files.Dir()
	}

	return store.New(backend, store.WithLogger(logger)), where, nil
}

// watchSaves records the first failed write after a mutation. The store keeps
// the in-memory change even when the write fails, so commands report it here.
func watchSaves(st *store.Store) func() error {
	var saveErr error
	st.Subscribe(func(c store.Change) {
		if c.SaveErr != nil && saveErr == nil {
			saveErr = fmt.Errorf("failed to save %s: %w", c.Collection, c.SaveErr)
		}
	})
	return func() error { return saveErr }
}

func parseID(s, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID: %w", what, err)
	}
	return id, nil
}

// parseDateFlag parses an optional date flag, returning fallback when empty.
func parseDateFlag(value string, fallback time.Time, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	t, err := utils.ParseDateInput(value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %w", err)
	}
	return t, nil
}

func formatDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Mon, 02 Jan 2006 15:04")
}

func printMoodEntry(w io.Writer, e journal.MoodEntry, loc *time.Location) {
	mood := display.Mood(e.Rating)
	fmt.Fprintln(w, "Mood Entry Details:")
	fmt.Fprintf(w, "ID:     %s\n", e.ID)
	fmt.Fprintf(w, "Date:   %s\n", formatDay(e.Date, loc))
	fmt.Fprintf(w, "Rating: %d %s %s\n", e.Rating, mood.Emoji, mood.Description)
	if e.Note != "" {
		fmt.Fprintf(w, "Note:   %s\n", e.Note)
	}
}

func printMoodEntryTable(w io.Writer, entries []journal.MoodEntry, loc *time.Location) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No mood entries found.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-22s  %-12s  %s\n", "ID", "Date", "Mood", "Note")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, e := range entries {
		mood := display.Mood(e.Rating)
		fmt.Fprintf(w, "%-36s  %-22s  %d %-10s  %s\n", e.ID, formatDay(e.Date, loc), e.Rating, mood.Description, truncateText(e.Note, 40))
	}
}

func printCelebration(w io.Writer, c journal.Celebration, loc *time.Location) {
	style := display.Category(c.Category)
	fmt.Fprintln(w, "Celebration Details:")
	fmt.Fprintf(w, "ID:          %s\n", c.ID)
	fmt.Fprintf(w, "Title:       %s\n", c.Title)
	fmt.Fprintf(w, "Category:    %s %s\n", style.Emoji, c.Category)
	fmt.Fprintf(w, "Date:        %s\n", formatDay(c.Date, loc))
	fmt.Fprintf(w, "Starred:     %t\n", c.IsStarred)
	if len(c.MediaURLs) > 0 {
		fmt.Fprintf(w, "Media:       %s\n", strings.Join(c.MediaURLs, ", "))
	}
	if c.Description != "" {
		fmt.Fprintln(w, "\nDescription:")
		fmt.Fprintln(w, "------------------------------------------------------------")
		fmt.Fprintln(w, c.Description)
		fmt.Fprintln(w, "------------------------------------------------------------")
	}
}

func printCelebrationTable(w io.Writer, celebrations []journal.Celebration, loc *time.Location) {
	if len(celebrations) == 0 {
		fmt.Fprintln(w, "No celebrations found.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-22s  %-12s  %-4s  %s\n", "ID", "Date", "Category", "Star", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, c := range celebrations {
		star := ""
		if c.IsStarred {
			star = "*"
		}
		fmt.Fprintf(w, "%-36s  %-22s  %-12s  %-4s  %s\n", c.ID, formatDay(c.Date, loc), c.Category, star, truncateText(c.Title, 40))
	}
}

func printInsights(w io.Writer, in store.Insights) {
	fmt.Fprintf(w, "Insights: %s\n\n", in.Range.Description())

	if in.MoodEntryCount == 0 {
		fmt.Fprintln(w, "Average mood: no entries")
	} else {
		rounded := int(in.AverageMood + 0.5)
		fmt.Fprintf(w, "Average mood: %.2f %s (%d entries)\n", in.AverageMood, display.Mood(rounded).Emoji, in.MoodEntryCount)
	}

	fmt.Fprintln(w, "\nDistribution:")
	for r := journal.MaxRating; r >= journal.MinRating; r-- {
		mood := display.Mood(r)
		fmt.Fprintf(w, "  %d %-8s %s %d\n", r, mood.Description, strings.Repeat("#", in.Distribution[r]), in.Distribution[r])
	}

	fmt.Fprintf(w, "\nCelebrations: %d\n", in.CelebrationCount)
}

func truncateText(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
