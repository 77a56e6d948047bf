//go:build tui

package main

import (
	"github.com/spf13/cobra"

	"github.com/unowned-ai/jubiland/pkg/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Show terminal UI",
	Long:  `Display an interactive terminal UI for logging moods, browsing celebrations and viewing insights.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, where, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		return tui.ShowTUI(st, where)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
