package cmd

import (
	"fmt"
	"os"

	"table-importer/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configDir     string
	dataDirFlag   string
	skipMalformed bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "table-importer",
	Short: "Spreadsheet table discovery",
	Long: `Table Importer scans a data directory for spreadsheet documents and derives
the table-import descriptors consumed by the schema and code generation pipeline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level gives ISO8601 timestamps for CLI errors
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing the .env file")
	RootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Data root to scan (overrides IMPORTER_DATA_DIR)")
	RootCmd.PersistentFlags().BoolVar(&skipMalformed, "skip-malformed", false, "Skip unreadable spreadsheets instead of failing")
}
