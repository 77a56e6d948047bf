package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	jubiland "github.com/unowned-ai/jubiland/pkg"
	"github.com/unowned-ai/jubiland/pkg/config"
	pkgdb "github.com/unowned-ai/jubiland/pkg/db"
	"github.com/unowned-ai/jubiland/pkg/logging"
	"github.com/unowned-ai/jubiland/pkg/utils"
)

var (
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "jubiland",
	Short: "Track your daily mood and celebrate your wins.",
	Long: `Jubiland keeps a mood journal (one 1-5 rating per day, with an optional note)
and a list of celebrations, and summarizes both over time.

Data is stored as moodEntries.json and celebrations.json in the data directory,
or in a SQLite database when --backend sqlite is used.`,
	Version: fmt.Sprintf("v%s", jubiland.Version),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for jubiland.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(jubiland completion bash)

  Bash (persist):
    $ jubiland completion bash > /etc/bash_completion.d/jubiland

  Zsh:
    $ jubiland completion zsh > "${fpath[1]}/_jubiland"

  Fish:
    $ jubiland completion fish | source
    $ jubiland completion fish > ~/.config/fish/completions/jubiland.fish

  PowerShell:
    PS> jubiland completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	PersistentPreRunE:     func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print the version number of jubiland",
	Long:              `All software has versions. This is jubiland's`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), jubiland.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the jubiland SQLite database",
	Long:  `Provides commands for managing the SQLite storage backend, including schema upgrades.`,
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the database schema to the latest version",
	Long: `Connects to the SQLite database (--db, or jubiland.db in the data directory) and
applies any necessary schema migrations for the jubilanddb component. A missing
database is created and initialized with the latest schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := utils.ResolveAndEnsureDataDir(cfg.DataDir)
		if err != nil {
			return err
		}
		dbPath, err := utils.ResolveAndEnsureDBPath(cfg.DBPath, dataDir)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Upgrading jubilanddb component in database at: %s (WAL: %t, Sync: %s)\n", dbPath, cfg.WAL, cfg.Sync)

		dbConn, err := pkgdb.OpenDBConnection(dbPath, cfg.WAL, cfg.Sync)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		return pkgdb.UpgradeDB(dbConn, logger, dbPath, pkgdb.TargetSchemaVersion)
	},
}

func initCmd() {
	flags := rootCmd.PersistentFlags()
	flags.String("data-dir", "", "Directory holding the data files (default: system-specific jubiland directory)")
	flags.String("backend", config.BackendJSON, "Storage backend: json or sqlite")
	flags.String("db", "", "Path to the SQLite database file (default: jubiland.db in the data directory)")
	flags.Bool("wal", false, "Enable SQLite WAL (Write-Ahead Logging) mode")
	flags.String("sync", "FULL", "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA)")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "console", "Log format: console or json")

	for key, flag := range map[string]string{
		"data_dir":   "data-dir",
		"backend":    "backend",
		"db_path":    "db",
		"wal":        "wal",
		"sync":       "sync",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	dbCmd.AddCommand(dbUpgradeCmd)

	initMoodCmd()
	initCelebrationsCmd()
	initInsightsCmd()
	rootCmd.AddCommand(completionCmd, versionCmd, dbCmd, moodCmd, celebrationsCmd, insightsCmd, mcpCmd)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
