// Package pdfoutline extracts a document outline from PDF files: the title
// plus an ordered list of H1, H2 and H3 headings with their page numbers.
//
// Basic usage:
//
//	result, warnings, err := pdfoutline.Open("document.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdfoutline.FormatWarnings(warnings))
//	}
//
// With options:
//
//	cfg := pdfoutline.DefaultConfig()
//	cfg.Heading.Threshold = 0.8
//	result, _, err := pdfoutline.Open("report.pdf").
//	    WithConfig(cfg).
//	    PageRange(1, 20).
//	    Outline()
//
// Documents that were already read, or built in memory, go through
// [FromDocument]. [Analyze] runs the same pipeline as a pure function.
package pdfoutline

import (
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/reader"
)

// Open opens a PDF file and returns an Extractor for fluent configuration.
// The file is read lazily by the first terminal operation, which also
// closes it.
//
// Example:
//
//	result, warnings, err := pdfoutline.Open("document.pdf").Outline()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened reader.Reader.
// Note: The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	result, warnings, err := pdfoutline.FromReader(r).Outline()
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// FromDocument creates an Extractor over a document that is already in
// memory. No file is opened.
//
// Example:
//
//	result, _, err := pdfoutline.FromDocument(doc).Outline()
func FromDocument(doc *model.Document) *Extractor {
	return &Extractor{
		document: doc,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pdfoutline.Must(pdfoutline.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustOutline is a helper that wraps a call to Outline() or Candidates()
// and panics if the error is non-nil. It discards warnings and returns just
// the value.
//
// Example:
//
//	result := pdfoutline.MustOutline(pdfoutline.Open("document.pdf").Outline())
func MustOutline[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
