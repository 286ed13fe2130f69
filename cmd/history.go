package cmd

import (
	"fmt"

	"table-importer/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var historyLimit int

// historyCmd lists stored discovery runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored discovery runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := bootstrap(bootstrapOptions{requireDatabase: true})
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		runs, err := s.manifest.History(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "\n--- Discovery Runs ---")
		for _, r := range runs {
			fmt.Fprintf(out, "%s  %s  %4d tables  %s\n", r.ID, r.GeneratedAt.Format("2006-01-02 15:04:05"), r.TableCount, r.DataRoot)
		}
		fmt.Fprintln(out, "----------------------")
		return nil
	},
}

// historyDiffCmd compares two stored runs.
var historyDiffCmd = &cobra.Command{
	Use:   "diff [from-run] [to-run]",
	Short: "Show table changes between two stored runs (default: the two latest)",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return fmt.Errorf("diff needs both run IDs or none")
		}

		s, err := bootstrap(bootstrapOptions{requireDatabase: true})
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		var from, to string
		if len(args) == 2 {
			from, to = args[0], args[1]
		}
		changes, err := s.manifest.DiffRuns(cmd.Context(), from, to)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(changes) == 0 {
			fmt.Fprintln(out, "No table changes.")
			return nil
		}
		for _, c := range changes {
			fmt.Fprintf(out, "%-8s %s\n", c.Kind, c.Key)
			for _, m := range c.Mismatch {
				fmt.Fprintf(out, "         - %s\n", m)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyDiffCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Number of runs to list (default from MANIFEST_HISTORY_LIMIT)")
}

// logChanges reports the differences to the previous stored run.
func logChanges(l *zap.Logger, previousRunID string, changes []reconcile.Change) {
	if len(changes) == 0 {
		l.Info("No table changes since previous run", zap.String("previous_run", previousRunID))
		return
	}
	for _, c := range changes {
		l.Info("Table changed since previous run",
			zap.String("previous_run", previousRunID),
			zap.String("table", c.Key),
			zap.String("kind", string(c.Kind)),
			zap.Strings("mismatch", c.Mismatch),
		)
	}
}
