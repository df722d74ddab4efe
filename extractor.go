package pdfoutline

import (
	"context"
	"errors"
	"fmt"

	"github.com/tsawler/pdfoutline/font"
	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/reader"
)

// Extractor provides a fluent interface for extracting outlines.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source: a file, an open reader or an in-memory document
	filename string
	reader   *reader.Reader
	document *model.Document

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		reader:       e.reader,
		document:     e.document,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		options:      e.options.clone(),
		err:          e.err,
		warnings:     append([]Warning(nil), e.warnings...),
	}
}

// ensureReader opens the reader if not already open.
func (e *Extractor) ensureReader() error {
	if e.readerOpened || e.document != nil {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	r, err := reader.OpenWithConfig(e.filename, e.options.config.Reader)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	e.reader = r
	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// WithConfig replaces the pipeline configuration.
//
// Example:
//
//	cfg := pdfoutline.DefaultConfig()
//	cfg.Title.MaxMergedLines = 2
//	result, _, err := pdfoutline.Open("doc.pdf").WithConfig(cfg).Outline()
func (e *Extractor) WithConfig(config Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = config
	return newExt
}

// WithContext sets the context checked while pages are read.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//	result, _, err := pdfoutline.Open("doc.pdf").WithContext(ctx).Outline()
func (e *Extractor) WithContext(ctx context.Context) *Extractor {
	newExt := e.clone()
	if ctx == nil {
		newExt.err = errors.New("nil context")
		return newExt
	}
	newExt.options.ctx = ctx
	return newExt
}

// Pages restricts extraction to the given pages (1-indexed). Page numbers
// in the outline are unaffected. Multiple calls are cumulative.
//
// Example:
//
//	result, _, err := pdfoutline.Open("doc.pdf").Pages(1, 3, 5).Outline()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange restricts extraction to a range of pages (1-indexed, inclusive).
//
// Example:
//
//	result, _, err := pdfoutline.Open("doc.pdf").PageRange(5, 10).Outline()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Config returns the pipeline configuration
func (e *Extractor) Config() Config {
	return e.options.config
}

// ============================================================================
// Terminal Methods
// ============================================================================

// PageCount returns the number of pages in the document.
// Note: This does NOT close the reader, allowing further operations.
//
// Example:
//
//	ext := pdfoutline.Open("document.pdf")
//	defer ext.Close()
//	count, err := ext.PageCount()
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureReader(); err != nil {
		return 0, err
	}
	if e.document != nil {
		return e.document.PageCount(), nil
	}
	return e.reader.PageCount(), nil
}

// Document reads the selected pages into a model.Document.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	doc, err := e.loadDocument()
	if err != nil {
		return nil, e.warnings, err
	}
	return doc, e.warnings, nil
}

// Analyze runs the pipeline and returns the outline with its intermediate
// values. This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	analysis, _, err := pdfoutline.Open("document.pdf").Analyze()
//	fmt.Println("body size:", analysis.Profile.BodySize)
func (e *Extractor) Analyze() (*Analysis, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}
	analysis := Analyze(doc, e.options.config)
	return analysis, append(warnings, analysis.warnings(doc)...), nil
}

// Outline extracts the title and headings.
// This is a terminal operation that closes the underlying reader.
//
// Returns the outline, any warnings encountered during processing, and an
// error if extraction failed. Warnings indicate non-fatal issues (e.g., a
// page that could not be decoded) where extraction succeeded but results
// may be incomplete.
//
// Example:
//
//	result, warnings, err := pdfoutline.Open("document.pdf").Outline()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdfoutline.FormatWarnings(warnings))
//	}
func (e *Extractor) Outline() (model.DocumentResult, []Warning, error) {
	analysis, warnings, err := e.Analyze()
	if err != nil {
		return model.EmptyResult(), warnings, err
	}
	return analysis.Result, warnings, nil
}

// Candidates returns every line candidate after classification, with
// scores, signals and rejection reasons.
// This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	cands, _, err := pdfoutline.Open("document.pdf").Candidates()
//	for _, c := range cands {
//	    fmt.Printf("%-5s %.2f %q\n", c.Level, c.Score, c.Text)
//	}
func (e *Extractor) Candidates() ([]layout.Candidate, []Warning, error) {
	analysis, warnings, err := e.Analyze()
	if err != nil {
		return nil, warnings, err
	}
	return analysis.Candidates, warnings, nil
}

// Profile returns the document font profile.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) Profile() (font.Profile, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return font.Profile{}, warnings, err
	}
	return font.NewProfilerWithConfig(e.options.config.Font).Profile(doc.Spans()), warnings, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// loadDocument returns the selected pages as a document. Unselected pages
// are kept empty so page numbers are preserved.
func (e *Extractor) loadDocument() (*model.Document, error) {
	count := 0
	if e.document != nil {
		count = e.document.PageCount()
	} else {
		count = e.reader.PageCount()
	}
	selected, err := e.resolvePages(count)
	if err != nil {
		return nil, err
	}

	if e.document != nil {
		return e.selectPages(selected), nil
	}

	ctx := e.options.ctx
	if len(e.options.pages) == 0 {
		doc, pageErrs, err := e.reader.Document(ctx)
		if err != nil {
			return nil, err
		}
		for _, pe := range pageErrs {
			e.warnings = append(e.warnings, Warning{Page: pe.Page, Message: pe.Err.Error()})
		}
		return doc, nil
	}

	doc := model.NewDocument(e.reader.Filename())
	for n := 1; n <= count; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !selected[n] {
			doc.AddPage(model.Page{})
			continue
		}
		page, err := e.reader.Page(n)
		if err != nil {
			e.warnings = append(e.warnings, Warning{Page: n, Message: pageErrorMessage(err)})
		}
		doc.AddPage(page)
	}
	return doc, nil
}

func pageErrorMessage(err error) string {
	var pe *reader.PageError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}

// selectPages copies the in-memory document, emptying unselected pages
func (e *Extractor) selectPages(selected map[int]bool) *model.Document {
	if len(e.options.pages) == 0 {
		return e.document
	}
	doc := model.NewDocument(e.document.Source)
	for _, p := range e.document.Pages {
		page := model.Page{Width: p.Width, Height: p.Height}
		if selected[p.Number] {
			page.Spans = append([]model.TextSpan(nil), p.Spans...)
		}
		doc.AddPage(page)
	}
	return doc
}

// resolvePages validates the requested page numbers. If no pages are
// specified, every page is selected.
func (e *Extractor) resolvePages(pageCount int) (map[int]bool, error) {
	selected := make(map[int]bool)
	if len(e.options.pages) == 0 {
		for i := 1; i <= pageCount; i++ {
			selected[i] = true
		}
		return selected, nil
	}

	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		selected[p] = true
	}
	return selected, nil
}
