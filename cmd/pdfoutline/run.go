package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tsawler/pdfoutline/internal/batch"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract outlines for every PDF in the input directory",
	Long: `Process every *.pdf file in the input directory once and write one
<name>.json file per document to the output directory.

A document that cannot be read yields {"title": "", "outline": []} and a
warning in the log. The command fails when the input directory holds no PDF,
or when the directories cannot be used.

Examples:
  pdfoutline run                                  # /app/input -> /app/output
  pdfoutline run -i ./pdfs -o ./json              # Custom directories
  pdfoutline run --workers 2 --timeout 30s        # Limit parallelism and time`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		runner := batch.New(batch.OptionsFromConfig(cfg, logger))
		_, err = runner.Run(cmd.Context())
		if errors.Is(err, batch.ErrNoInput) {
			logger.Error("nothing to do", "input", cfg.Input, "error", err)
		}
		return err
	},
}

func init() {
	addBatchFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}
