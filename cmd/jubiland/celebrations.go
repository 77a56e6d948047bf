package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/jubiland/pkg/journal"
	"github.com/unowned-ai/jubiland/pkg/store"
	"github.com/unowned-ai/jubiland/pkg/utils"
)

var (
	celebrationTitleFlag       string
	celebrationDescriptionFlag string
	celebrationCategoryFlag    string
	celebrationDateFlag        string
	celebrationMediaFlag       string
	celebrationStarredFlag     bool
	celebrationRangeFlag       string
	celebrationStarredOnlyFlag bool
)

var celebrationsCmd = &cobra.Command{
	Use:     "celebrations",
	Aliases: []string{"celebration", "cel"},
	Short:   "Manage celebrations",
	Long:    `Add, list, update, star, and delete the wins you want to remember.`,
}

var addCelebrationCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new celebration",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := journal.ParseCategory(celebrationCategoryFlag)
		if err != nil {
			return fmt.Errorf("%w (valid: %s)", err, categoryNames())
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		date, err := parseDateFlag(celebrationDateFlag, st.Now(), st.Location())
		if err != nil {
			return err
		}

		c := journal.NewCelebration(
			strings.TrimSpace(celebrationTitleFlag),
			celebrationDescriptionFlag,
			date,
			category,
			utils.SplitList(celebrationMediaFlag),
			celebrationStarredFlag,
		)
		if err := journal.ValidateCelebration(c); err != nil {
			return err
		}

		saveErr := watchSaves(st)
		st.AddCelebration(c)
		if err := saveErr(); err != nil {
			return err
		}
		printCelebration(cmd.OutOrStdout(), c, st.Location())
		return nil
	},
}

var listCelebrationsCmd = &cobra.Command{
	Use:   "list",
	Short: "List celebrations",
	Long: `List celebrations on one day (--date), within a time range ending now (--range),
or only the starred ones (--starred).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		var celebrations []journal.Celebration
		switch {
		case celebrationDateFlag != "":
			date, err := parseDateFlag(celebrationDateFlag, st.Now(), st.Location())
			if err != nil {
				return err
			}
			celebrations = st.CelebrationsOn(date)
		case celebrationStarredOnlyFlag:
			celebrations = st.StarredCelebrations()
		default:
			r, err := journal.ParseTimeRange(celebrationRangeFlag)
			if err != nil {
				return err
			}
			celebrations = st.CelebrationsIn(r)
		}

		if celebrationDateFlag != "" && celebrationStarredOnlyFlag {
			starred := celebrations[:0]
			for _, c := range celebrations {
				if c.IsStarred {
					starred = append(starred, c)
				}
			}
			celebrations = starred
		}

		printCelebrationTable(cmd.OutOrStdout(), celebrations, st.Location())
		return nil
	},
}

var showCelebrationCmd = &cobra.Command{
	Use:   "show [celebration-id]",
	Short: "Show a celebration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "celebration")
		if err != nil {
			return err
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		c, err := st.Celebration(id)
		if errors.Is(err, store.ErrCelebrationNotFound) {
			return fmt.Errorf("celebration not found: %s", id)
		}
		if err != nil {
			return fmt.Errorf("failed to get celebration: %w", err)
		}
		printCelebration(cmd.OutOrStdout(), c, st.Location())
		return nil
	},
}

var updateCelebrationCmd = &cobra.Command{
	Use:   "update [celebration-id]",
	Short: "Update a celebration",
	Long:  `Update a celebration. Only the given flags are changed; --media replaces the whole list.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "celebration")
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		changed := false
		for _, name := range []string{"title", "description", "category", "date", "media", "starred"} {
			changed = changed || flags.Changed(name)
		}
		if !changed {
			return errors.New("no update flags provided (use --title, --description, --category, --date, --media, or --starred)")
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		c, err := st.Celebration(id)
		if errors.Is(err, store.ErrCelebrationNotFound) {
			return fmt.Errorf("celebration not found: %s", id)
		}
		if err != nil {
			return fmt.Errorf("failed to get celebration: %w", err)
		}

		if flags.Changed("title") {
			c.Title = strings.TrimSpace(celebrationTitleFlag)
		}
		if flags.Changed("description") {
			c.Description = celebrationDescriptionFlag
		}
		if flags.Changed("category") {
			if c.Category, err = journal.ParseCategory(celebrationCategoryFlag); err != nil {
				return fmt.Errorf("%w (valid: %s)", err, categoryNames())
			}
		}
		if flags.Changed("date") {
			if c.Date, err = parseDateFlag(celebrationDateFlag, c.Date, st.Location()); err != nil {
				return err
			}
		}
		if flags.Changed("media") {
			c.MediaURLs = utils.SplitList(celebrationMediaFlag)
		}
		if flags.Changed("starred") {
			c.IsStarred = celebrationStarredFlag
		}
		if err := journal.ValidateCelebration(c); err != nil {
			return err
		}

		saveErr := watchSaves(st)
		if !st.UpdateCelebration(c) {
			return fmt.Errorf("celebration not found: %s", id)
		}
		if err := saveErr(); err != nil {
			return err
		}
		printCelebration(cmd.OutOrStdout(), c, st.Location())
		return nil
	},
}

var starCelebrationCmd = &cobra.Command{
	Use:   "star [celebration-id]",
	Short: "Toggle the star on a celebration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "celebration")
		if err != nil {
			return err
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		saveErr := watchSaves(st)
		c, ok := st.ToggleStarCelebration(id)
		if !ok {
			return fmt.Errorf("celebration not found: %s", id)
		}
		if err := saveErr(); err != nil {
			return err
		}

		state := "unstarred"
		if c.IsStarred {
			state = "starred"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Celebration %q %s.\n", c.Title, state)
		return nil
	},
}

var deleteCelebrationCmd = &cobra.Command{
	Use:   "delete [celebration-id]",
	Short: "Delete a celebration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "celebration")
		if err != nil {
			return err
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		saveErr := watchSaves(st)
		if st.DeleteCelebration(id) == 0 {
			return fmt.Errorf("celebration not found: %s", id)
		}
		if err := saveErr(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Celebration %s deleted successfully.\n", id)
		return nil
	},
}

func categoryNames() string {
	names := make([]string, 0, len(journal.Categories()))
	for _, c := range journal.Categories() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

func initCelebrationsCmd() {
	for _, c := range []*cobra.Command{addCelebrationCmd, updateCelebrationCmd} {
		c.Flags().StringVarP(&celebrationTitleFlag, "title", "t", "", "Title of the celebration")
		c.Flags().StringVar(&celebrationDescriptionFlag, "description", "", "Longer description")
		c.Flags().StringVarP(&celebrationCategoryFlag, "category", "c", journal.CategoryPersonal.String(), "Category: "+categoryNames())
		c.Flags().StringVarP(&celebrationDateFlag, "date", "d", "", "Day as YYYY-MM-DD or RFC 3339 (default: now)")
		c.Flags().StringVar(&celebrationMediaFlag, "media", "", "Comma-separated media URLs")
		c.Flags().BoolVar(&celebrationStarredFlag, "starred", false, "Mark the celebration as starred")
	}
	addCelebrationCmd.MarkFlagRequired("title")

	listCelebrationsCmd.Flags().StringVar(&celebrationRangeFlag, "range", string(journal.RangeAll), "Time range: day, week, month, year or all")
	listCelebrationsCmd.Flags().StringVarP(&celebrationDateFlag, "date", "d", "", "Only list celebrations on this day (YYYY-MM-DD)")
	listCelebrationsCmd.Flags().BoolVar(&celebrationStarredOnlyFlag, "starred", false, "Only list starred celebrations")

	celebrationsCmd.AddCommand(
		addCelebrationCmd,
		listCelebrationsCmd,
		showCelebrationCmd,
		updateCelebrationCmd,
		starCelebrationCmd,
		deleteCelebrationCmd,
	)
}
