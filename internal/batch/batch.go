// Package batch turns a directory of PDF files into a directory of outline
// JSON files.
//
// Documents are processed in parallel by a bounded pool. Each document runs
// under its own timeout and panic recovery; a document that cannot be read
// still produces an output file holding an empty outline.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pdfoutline"
	"github.com/tsawler/pdfoutline/internal/config"
	"github.com/tsawler/pdfoutline/model"
)

// ErrNoInput is returned when the input directory holds no PDF files
var ErrNoInput = errors.New("no PDF files found in input directory")

// Options configures a Runner
type Options struct {
	Input  string
	Output string

	Workers         int           // Number of documents processed at once (default: runtime.NumCPU())
	DocumentTimeout time.Duration // Time budget per document (default: 60s)
	ValidateOutput  bool          // Check results against the output schema before writing

	Analysis pdfoutline.Config
	Logger   *slog.Logger
}

// OptionsFromConfig maps the loaded configuration onto runner options
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	return Options{
		Input:           cfg.Input,
		Output:          cfg.Output,
		Workers:         cfg.Workers,
		DocumentTimeout: cfg.DocumentTimeout,
		ValidateOutput:  cfg.ValidateOutput,
		Analysis:        cfg.Analysis,
		Logger:          logger,
	}
}

// Outcome describes the processing of one document
type Outcome struct {
	File     string
	Output   string
	Pages    int
	Headings int
	Empty    bool
	Elapsed  time.Duration
	Warnings []pdfoutline.Warning

	// Err is the extraction error; the document was written with an empty
	// outline. WriteErr means no output file could be written.
	Err      error
	WriteErr error
}

// Failed reports whether the document did not yield its outline
func (o Outcome) Failed() bool {
	return o.Err != nil || o.WriteErr != nil
}

// Summary aggregates the outcomes of a run
type Summary struct {
	RunID     string
	Processed int
	Failed    int
	Empty     int
	Elapsed   time.Duration
	Outcomes  []Outcome
}

// extraction is the result of analysing one file
type extraction struct {
	result   model.DocumentResult
	pages    int
	warnings []pdfoutline.Warning
	err      error
}

// Runner processes documents from Options.Input into Options.Output
type Runner struct {
	opts   Options
	logger *slog.Logger

	// extract analyses one file; replaced in tests
	extract func(ctx context.Context, path string) extraction
}

// New creates a runner, filling unset options with defaults
func New(opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.DocumentTimeout <= 0 {
		opts.DocumentTimeout = 60 * time.Second
	}

	r := &Runner{
		opts:   opts,
		logger: opts.Logger,
	}
	r.extract = r.extractFile
	return r
}

// Run processes every PDF in the input directory once.
//
// Per-document failures are logged and reflected in the summary; the output
// for such documents is an empty outline. Run returns an error only when the
// directories are unusable, no PDF is found, outputs could not be written or
// ctx is canceled.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	summary := Summary{RunID: uuid.New().String()}
	logger := r.logger.With("run_id", summary.RunID)

	files, err := ListPDFs(r.opts.Input)
	if err != nil {
		return summary, err
	}
	if err := os.MkdirAll(r.opts.Output, 0o755); err != nil {
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}
	if len(files) == 0 {
		return summary, ErrNoInput
	}

	logger.Info("processing documents", "input", r.opts.Input, "output", r.opts.Output, "documents", len(files), "workers", r.opts.Workers)

	outputs := OutputPaths(r.opts.Output, files)
	for _, path := range files {
		if outputs[path] != OutputPath(r.opts.Output, path) {
			logger.Warn("output name collides with another document, keeping extension", "file", filepath.Base(path), "output", outputs[path])
		}
	}
	outcomes := make([]Outcome, len(files))
	var g errgroup.Group
	g.SetLimit(r.opts.Workers)

	scheduled := 0
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		scheduled++
		g.Go(func() error {
			outcomes[i] = r.process(ctx, logger, path, outputs[path])
			return nil
		})
	}
	_ = g.Wait()

	summary.Outcomes = outcomes[:scheduled]
	var writeErrs []error
	for _, o := range summary.Outcomes {
		summary.Processed++
		if o.Failed() {
			summary.Failed++
		}
		if o.Empty {
			summary.Empty++
		}
		if o.WriteErr != nil {
			writeErrs = append(writeErrs, o.WriteErr)
		}
	}
	summary.Elapsed = time.Since(start)

	logger.Info("batch complete",
		"processed", summary.Processed,
		"failed", summary.Failed,
		"empty", summary.Empty,
		"elapsed", summary.Elapsed)

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("run interrupted after %d of %d documents: %w", scheduled, len(files), err)
	}
	if len(writeErrs) > 0 {
		return summary, fmt.Errorf("failed to write %d outputs: %w", len(writeErrs), errors.Join(writeErrs...))
	}
	return summary, nil
}

// ProcessFile processes a single PDF and writes its JSON to the output
// directory
func (r *Runner) ProcessFile(ctx context.Context, path string) Outcome {
	return r.process(ctx, r.logger, path, r.outputFor(path))
}

// outputFor resolves the output path of one PDF against the other PDFs in
// the input directory
func (r *Runner) outputFor(path string) string {
	files, err := ListPDFs(r.opts.Input)
	if err != nil {
		files = nil
	}
	if !slices.Contains(files, path) {
		files = append(files, path)
	}
	return OutputPaths(r.opts.Output, files)[path]
}

func (r *Runner) process(ctx context.Context, logger *slog.Logger, path, output string) Outcome {
	start := time.Now()
	outcome := Outcome{
		File:   path,
		Output: output,
	}
	logger = logger.With("file", filepath.Base(path))

	docCtx, cancel := context.WithTimeout(ctx, r.opts.DocumentTimeout)
	defer cancel()

	x := r.isolated(docCtx, path)
	if err := ctx.Err(); err != nil {
		// Interrupted runs leave no output rather than an empty one.
		outcome.Err = fmt.Errorf("processing interrupted: %w", err)
		outcome.Elapsed = time.Since(start)
		logger.Warn("document interrupted", "error", err)
		return outcome
	}
	result := x.result
	if x.err != nil {
		outcome.Err = x.err
		result = model.EmptyResult()
		logger.Warn("failed to extract outline, writing empty result", "error", x.err)
	}
	for _, w := range x.warnings {
		logger.Debug("document warning", "page", w.Page, "message", w.Message)
	}

	if r.opts.ValidateOutput {
		if err := validate(result); err != nil {
			logger.Error("result failed schema validation, writing empty result", "error", err)
			outcome.Err = err
			result = model.EmptyResult()
		}
	}

	if err := writeResult(outcome.Output, result); err != nil {
		outcome.WriteErr = err
		logger.Error("failed to write output", "output", outcome.Output, "error", err)
	}

	outcome.Pages = x.pages
	outcome.Headings = len(result.Outline)
	outcome.Empty = result.IsEmpty()
	outcome.Warnings = x.warnings
	outcome.Elapsed = time.Since(start)

	logger.Info("processed document",
		"pages", outcome.Pages,
		"headings", outcome.Headings,
		"title", result.Title != "",
		"elapsed", outcome.Elapsed)
	return outcome
}

// isolated runs the extraction in its own goroutine so a timeout or a panic
// inside the PDF library cannot take the batch down
func (r *Runner) isolated(ctx context.Context, path string) extraction {
	done := make(chan extraction, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- extraction{err: fmt.Errorf("panic while processing %s: %v", filepath.Base(path), rec)}
			}
		}()
		done <- r.extract(ctx, path)
	}()

	select {
	case x := <-done:
		return x
	case <-ctx.Done():
		return extraction{err: fmt.Errorf("processing aborted: %w", ctx.Err())}
	}
}

func (r *Runner) extractFile(ctx context.Context, path string) extraction {
	ext := pdfoutline.Open(path).WithConfig(r.opts.Analysis).WithContext(ctx)
	defer ext.Close()

	pages, err := ext.PageCount()
	if err != nil {
		return extraction{err: err}
	}
	result, warnings, err := ext.Outline()
	return extraction{result: result, pages: pages, warnings: warnings, err: err}
}

// ListPDFs returns the PDF files directly inside dir, sorted by name. The
// .pdf suffix is matched case-insensitively.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !IsPDF(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// IsPDF reports whether name has a .pdf extension
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf") && !strings.HasPrefix(filepath.Base(name), ".")
}

// OutputPaths maps each PDF to its JSON path. Names are <stem>.json unless
// two files share a stem ignoring case, as a.pdf and a.PDF do; those keep
// their extension (a.pdf.json, a.PDF.json) so no output overwrites another.
func OutputPaths(outputDir string, files []string) map[string]string {
	stems := make(map[string]int, len(files))
	for _, f := range files {
		stems[strings.ToLower(OutputPath(outputDir, f))]++
	}

	out := make(map[string]string, len(files))
	for _, f := range files {
		path := OutputPath(outputDir, f)
		if stems[strings.ToLower(path)] > 1 {
			path = filepath.Join(outputDir, filepath.Base(f)+".json")
		}
		out[f] = path
	}
	return out
}

// OutputPath returns the JSON path for a PDF: <output>/<stem>.json
func OutputPath(outputDir, pdfPath string) string {
	base := filepath.Base(pdfPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+".json")
}
