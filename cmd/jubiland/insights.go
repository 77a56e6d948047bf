package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/jubiland/pkg/journal"
)

var (
	insightsRangeFlag string
	insightsJSONFlag  bool
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Summarize moods and celebrations over a time range",
	Long: `Show the average mood, the rating distribution and the number of celebrations
within a time range ending now (day, week, month, year or all).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := journal.ParseTimeRange(insightsRangeFlag)
		if err != nil {
			return err
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		in := st.Insights(r)
		if insightsJSONFlag {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(in)
		}

		printInsights(cmd.OutOrStdout(), in)
		return nil
	},
}

func initInsightsCmd() {
	insightsCmd.Flags().StringVarP(&insightsRangeFlag, "range", "r", string(journal.RangeWeek), "Time range: day, week, month, year or all")
	insightsCmd.Flags().BoolVar(&insightsJSONFlag, "json", false, "Print the insights as JSON")
}
