package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tsawler/pdfoutline/internal/config"
	"github.com/tsawler/pdfoutline/version"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
)

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"input":      "input",
	"output":     "output",
	"workers":    "workers",
	"timeout":    "document_timeout",
	"validate":   "validate_output",
	"preflight":  "analysis.reader.preflight",
	"debounce":   "watch_debounce",
}

var rootCmd = &cobra.Command{
	Use:   "pdfoutline",
	Short: "Extract a title and H1-H3 outline from PDF documents",
	Long: `pdfoutline reads PDF files and writes, for each one, a JSON document with
its title and a flat outline of H1, H2 and H3 headings with page numbers.

Headings are recognised from typography alone:
  - Font size relative to the document's body text
  - Bold faces
  - Numbering patterns such as "2.3", "Chapter 4" or "Appendix A"
  - Running headers and footers are reported once`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./pdfoutline.yaml or ~/.pdfoutline/pdfoutline.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn or error",
	)
	rootCmd.PersistentFlags().StringVar(
		&logFormat, "log-format", "text", "log format: text or json",
	)

	rootCmd.AddCommand(versionCmd)
}

// addBatchFlags registers the directory and pool flags shared by run and watch
func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "directory of PDF files (default: /app/input)")
	cmd.Flags().StringP("output", "o", "", "directory for JSON results (default: /app/output)")
	cmd.Flags().IntP("workers", "w", 0, "documents processed in parallel (default: number of CPUs)")
	cmd.Flags().Duration("timeout", 0, "time budget per document (default: 60s)")
	cmd.Flags().Bool("validate", true, "validate each result against the output schema")
	cmd.Flags().Bool("preflight", true, "check each file with pdfcpu before extracting text")
}

// loadConfig builds the effective configuration for cmd: defaults, config
// file, environment, then the flags set on the command line
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.New(cfgFile)
	if err != nil {
		return nil, err
	}

	var bindErr error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(key, f)
	})
	if bindErr != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	return config.Load(v)
}

// setup loads the configuration and installs the logger it selects
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}
