package cmd

import (
	"fmt"
	"os"

	"table-importer/feature/manifest"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	formatFlag     string
	outFlag        string
	publishFlag    bool
	publishFormats string
	saveFlag       bool
)

// discoverCmd scans the data root and prints the table manifest.
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover importable tables in the data directory",
	Long: `Scans the data directory for spreadsheets, derives a table-import descriptor for
every matching sheet group and writes the manifest to stdout or --out.

Examples:
  # Print the manifest as YAML
  discover --data-dir ./Datas --format yaml

  # Store the run in the history database and publish it to object storage
  discover --save --publish --publish-formats json,yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := manifest.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		s, err := bootstrap(bootstrapOptions{requireStorage: publishFlag, requireDatabase: saveFlag})
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		opts := manifest.RunOptions{Publish: publishFlag, Save: saveFlag}
		if publishFlag {
			list := publishFormats
			if list == "" {
				list = s.cfg.Manifest.PublishFormats
			}
			if opts.Formats, err = manifest.ParseFormats(list); err != nil {
				return err
			}
		}

		s.logger.Info("Discovering tables...", zap.String("data_root", s.tables.DataRoot()))
		report, err := s.manifest.Run(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("table discovery failed: %w", err)
		}

		data, err := manifest.Encode(report.Manifest, format)
		if err != nil {
			return err
		}

		if outFlag != "" {
			if err := os.WriteFile(outFlag, data, 0644); err != nil {
				return fmt.Errorf("failed to save manifest: %w", err)
			}
			s.logger.Info("Manifest saved", zap.String("file", outFlag), zap.Int("tables", len(report.Manifest.Tables)))
		} else {
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
		}

		if len(report.PrunedKeys) > 0 {
			s.logger.Info("Removed old published manifests", zap.Strings("keys", report.PrunedKeys))
		}
		if report.PreviousRunID != "" {
			logChanges(s.logger, report.PreviousRunID, report.Changes)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().StringVar(&formatFlag, "format", "json", "Output format: json, yaml or toml")
	discoverCmd.Flags().StringVarP(&outFlag, "out", "o", "", "Write the manifest to a file instead of stdout")
	discoverCmd.Flags().BoolVar(&publishFlag, "publish", false, "Upload the manifest to object storage")
	discoverCmd.Flags().StringVar(&publishFormats, "publish-formats", "", "Comma separated formats to publish (default from MANIFEST_PUBLISH_FORMATS)")
	discoverCmd.Flags().BoolVar(&saveFlag, "save", false, "Store the run in the history database")
}
