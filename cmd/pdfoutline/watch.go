package main

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/pdfoutline/internal/batch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process PDFs as they are dropped into the input directory",
	Long: `Process the PDFs already in the input directory, then keep watching it
and process every PDF that is created or replaced. A file is processed once it
has stopped changing for the debounce interval.

Stop with Ctrl+C or SIGTERM; documents in progress are abandoned.

Examples:
  pdfoutline watch -i ./inbox -o ./outlines
  pdfoutline watch --debounce 2s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		runner := batch.New(batch.OptionsFromConfig(cfg, logger))
		return runner.Watch(cmd.Context(), cfg.WatchDebounce)
	},
}

func init() {
	addBatchFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", 0, "quiet period before a changed file is processed (default: 500ms)")
	rootCmd.AddCommand(watchCmd)
}
