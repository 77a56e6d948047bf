package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/jubiland/pkg/journal"
	"github.com/unowned-ai/jubiland/pkg/store"
)

var (
	moodRatingFlag int
	moodNoteFlag   string
	moodDateFlag   string
	moodRangeFlag  string
)

var moodCmd = &cobra.Command{
	Use:     "mood",
	Aliases: []string{"moods"},
	Short:   "Manage mood entries",
	Long:    `Log, list, update, and delete daily mood ratings (1-5).`,
}

var logMoodCmd = &cobra.Command{
	Use:   "log",
	Short: "Record the mood for a day",
	Long: `Record the mood for a day (today unless --date is given). If an entry already
exists on that day, its rating and note are replaced instead of adding another.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		date, err := parseDateFlag(moodDateFlag, st.Now(), st.Location())
		if err != nil {
			return err
		}

		if err := journal.ValidateMoodEntry(journal.NewMoodEntry(date, moodRatingFlag, moodNoteFlag)); err != nil {
			return err
		}

		saveErr := watchSaves(st)
		entry := st.SaveMoodForDay(date, moodRatingFlag, moodNoteFlag)
		if err := saveErr(); err != nil {
			return err
		}
		printMoodEntry(cmd.OutOrStdout(), entry, st.Location())
		return nil
	},
}

var addMoodCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new mood entry",
	Long:  `Add a new mood entry even if the day already has one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		date, err := parseDateFlag(moodDateFlag, st.Now(), st.Location())
		if err != nil {
			return err
		}

		entry := journal.NewMoodEntry(date, moodRatingFlag, moodNoteFlag)
		if err := journal.ValidateMoodEntry(entry); err != nil {
			return err
		}

		saveErr := watchSaves(st)
		st.AddMoodEntry(entry)
		if err := saveErr(); err != nil {
			return err
		}
		printMoodEntry(cmd.OutOrStdout(), entry, st.Location())
		return nil
	},
}

var listMoodCmd = &cobra.Command{
	Use:   "list",
	Short: "List mood entries",
	Long:  `List mood entries on one day (--date) or within a time range ending now (--range).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		var entries []journal.MoodEntry
		if moodDateFlag != "" {
			date, err := parseDateFlag(moodDateFlag, st.Now(), st.Location())
			if err != nil {
				return err
			}
			entries = st.MoodEntriesOn(date)
		} else {
			r, err := journal.ParseTimeRange(moodRangeFlag)
			if err != nil {
				return err
			}
			entries = st.MoodEntriesIn(r)
		}

		printMoodEntryTable(cmd.OutOrStdout(), entries, st.Location())
		return nil
	},
}

var updateMoodCmd = &cobra.Command{
	Use:   "update [entry-id]",
	Short: "Update a mood entry",
	Long:  `Update the rating, note, or date of a mood entry. Only the given flags are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "mood entry")
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if !flags.Changed("rating") && !flags.Changed("note") && !flags.Changed("date") {
			return errors.New("no update flags provided (use --rating, --note, or --date)")
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		entry, err := st.MoodEntry(id)
		if errors.Is(err, store.ErrMoodEntryNotFound) {
			return fmt.Errorf("mood entry not found: %s", id)
		}
		if err != nil {
			return fmt.Errorf("failed to get mood entry: %w", err)
		}

		if flags.Changed("rating") {
			entry.Rating = journal.ClampRating(moodRatingFlag)
		}
		if flags.Changed("note") {
			entry.Note = moodNoteFlag
		}
		if flags.Changed("date") {
			if entry.Date, err = parseDateFlag(moodDateFlag, entry.Date, st.Location()); err != nil {
				return err
			}
		}
		if err := journal.ValidateMoodEntry(entry); err != nil {
			return err
		}

		saveErr := watchSaves(st)
		if !st.UpdateMoodEntry(entry) {
			return fmt.Errorf("mood entry not found: %s", id)
		}
		if err := saveErr(); err != nil {
			return err
		}
		printMoodEntry(cmd.OutOrStdout(), entry, st.Location())
		return nil
	},
}

var deleteMoodCmd = &cobra.Command{
	Use:   "delete [entry-id]",
	Short: "Delete a mood entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "mood entry")
		if err != nil {
			return err
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		saveErr := watchSaves(st)
		if st.DeleteMoodEntry(id) == 0 {
			return fmt.Errorf("mood entry not found: %s", id)
		}
		if err := saveErr(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Mood entry %s deleted successfully.\n", id)
		return nil
	},
}

func initMoodCmd() {
	for _, c := range []*cobra.Command{logMoodCmd, addMoodCmd, updateMoodCmd} {
		c.Flags().IntVarP(&moodRatingFlag, "rating", "r", journal.DefaultRating, "Mood rating from 1 (awful) to 5 (great); out-of-range values are clamped")
		c.Flags().StringVarP(&moodNoteFlag, "note", "n", "", "Note about the day")
		c.Flags().StringVarP(&moodDateFlag, "date", "d", "", "Day as YYYY-MM-DD or RFC 3339 (default: now)")
	}
	logMoodCmd.MarkFlagRequired("rating")
	addMoodCmd.MarkFlagRequired("rating")

	listMoodCmd.Flags().StringVar(&moodRangeFlag, "range", string(journal.RangeAll), "Time range: day, week, month, year or all")
	listMoodCmd.Flags().StringVarP(&moodDateFlag, "date", "d", "", "Only list entries on this day (YYYY-MM-DD)")

	moodCmd.AddCommand(logMoodCmd, addMoodCmd, listMoodCmd, updateMoodCmd, deleteMoodCmd)
}
