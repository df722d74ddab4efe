package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/pdfoutline"
	"github.com/tsawler/pdfoutline/internal/batch"
	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/model"
)

var (
	inspectAll   bool
	inspectJSON  bool
	inspectPages []int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Show how a document's lines were scored and classified",
	Long: `Run the outline analysis on one PDF and print the font profile, the
running headers and footers, and every candidate line with its level, score,
score signals and, for rejected lines, the reason.

Use it to tune the analysis settings in the config file.

Examples:
  pdfoutline inspect report.pdf              # Headings and near misses
  pdfoutline inspect report.pdf --all        # Every line, body text included
  pdfoutline inspect report.pdf --pages 1,2  # Only the first two pages
  pdfoutline inspect report.pdf --json       # The JSON that run would write`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		ext := pdfoutline.Open(args[0]).
			WithConfig(cfg.Analysis).
			WithContext(cmd.Context())
		if len(inspectPages) > 0 {
			ext = ext.Pages(inspectPages...)
		}
		defer ext.Close()

		analysis, warnings, err := ext.Analyze()
		if err != nil {
			return err
		}
		for _, w := range warnings {
			logger.Warn("document warning", "page", w.Page, "message", w.Message)
		}

		out := cmd.OutOrStdout()
		if inspectJSON {
			data, err := batch.Encode(analysis.Result)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}
		return printAnalysis(out, analysis, inspectAll)
	},
}

func init() {
	inspectCmd.Flags().BoolVarP(&inspectAll, "all", "a", false, "include lines classified as body text")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print the outline JSON instead of diagnostics")
	inspectCmd.Flags().IntSliceVarP(&inspectPages, "pages", "p", nil, "pages to analyse, 1-indexed (default: all)")
	inspectCmd.Flags().Bool("preflight", true, "check the file with pdfcpu before extracting text")
	rootCmd.AddCommand(inspectCmd)
}

func printAnalysis(w io.Writer, a *pdfoutline.Analysis, all bool) error {
	p := a.Profile
	fmt.Fprintf(w, "Title:     %q\n", a.Result.Title)
	fmt.Fprintf(w, "Body size: %.1f (spans: %d, chars: %d, bold: %.0f%%)\n", p.BodySize, p.SpanCount, p.CharCount, p.BoldRatio*100)
	if p.Degenerate {
		fmt.Fprintln(w, "Profile:   degenerate, fallback body size used")
	}
	for i, t := range p.Tiers {
		fmt.Fprintf(w, "Tier %d:    %.1f-%.1f (%d chars)\n", i+1, t.Min, t.Max, t.Chars)
	}
	for _, r := range a.RunningText.Regions {
		fmt.Fprintf(w, "Running %s: %q on %d pages\n", r.Type, r.Text, len(r.Pages))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tTOP\tSIZE\tSTYLE\tLEVEL\tSCORE\tTEXT\tDETAILS")
	for _, c := range a.Candidates {
		if !all && !shown(c) {
			continue
		}
		fmt.Fprintf(tw, "%d\t%.1f\t%.1f\t%s\t%s\t%.2f\t%s\t%s\n",
			c.Page, c.BBox.Y, c.FontSize, style(c), c.Level, c.Score, truncate(c.Text, 60), details(c))
	}
	return tw.Flush()
}

// shown reports whether a candidate is interesting without --all: accepted
// lines plus the ones rejected for a reason other than being body text
func shown(c layout.Candidate) bool {
	if c.Level == model.LevelBody {
		return c.Reason != "" && c.Reason != layout.ReasonBody
	}
	return true
}

func style(c layout.Candidate) string {
	var parts []string
	if c.Bold {
		parts = append(parts, "bold")
	}
	if c.Italic {
		parts = append(parts, "italic")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

func details(c layout.Candidate) string {
	var parts []string
	if c.Running {
		parts = append(parts, "running")
	}
	if c.Match != nil {
		parts = append(parts, "pattern="+c.Match.PatternID)
	}
	if c.Lines > 1 {
		parts = append(parts, fmt.Sprintf("lines=%d", c.Lines))
	}
	for _, s := range c.Signals {
		parts = append(parts, s.String())
	}
	if c.Reason != "" {
		parts = append(parts, "rejected: "+c.Reason)
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
