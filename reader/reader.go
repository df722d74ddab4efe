package reader

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/text"
)

var (
	// ErrUnreadable is returned for files that cannot be parsed as a PDF,
	// including encrypted and corrupt files
	ErrUnreadable = errors.New("unreadable pdf")

	// ErrNoPages is returned for PDFs without pages
	ErrNoPages = errors.New("pdf has no pages")
)

// Config holds configuration for the reader
type Config struct {
	// Assembler configures how glyphs are folded into spans
	Assembler text.AssemblerConfig `mapstructure:"assembler" yaml:"assembler"`

	// Preflight runs pdfcpu over the file before parsing it
	// Default: true
	Preflight bool `mapstructure:"preflight" yaml:"preflight"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Assembler: text.DefaultAssemblerConfig(),
		Preflight: true,
	}
}

// Reader reads the text layer of a PDF file
type Reader struct {
	filename  string
	file      *os.File
	pdf       *pdf.Reader
	pageCount int
	assembler *text.Assembler
}

// Open opens a PDF file with default configuration
func Open(filename string) (*Reader, error) {
	return OpenWithConfig(filename, DefaultConfig())
}

// OpenWithConfig opens a PDF file. Files that fail preflight or parsing
// return an error wrapping ErrUnreadable.
func OpenWithConfig(filename string, config Config) (*Reader, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	if err := SniffFile(filename); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	if config.Preflight {
		if _, err := Preflight(filename); err != nil {
			return nil, err
		}
	}

	file, r, err := openPDF(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	reader := &Reader{
		filename:  filename,
		file:      file,
		pdf:       r,
		pageCount: r.NumPage(),
		assembler: text.NewAssemblerWithConfig(config.Assembler),
	}
	if reader.pageCount == 0 {
		reader.Close()
		return nil, ErrNoPages
	}
	return reader, nil
}

// openPDF opens the file for the pdf package, which panics on some
// malformed files
func openPDF(filename string) (file *os.File, r *pdf.Reader, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while opening: %v", rec)
		}
		if err != nil {
			f.Close()
			file, r = nil, nil
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	r, err = pdf.NewReader(f, info.Size())
	return f, r, err
}

// Close closes the underlying file
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// Filename returns the path the reader was opened with
func (r *Reader) Filename() string {
	return r.filename
}

// PageCount returns the number of pages
func (r *Reader) PageCount() int {
	return r.pageCount
}

// PageError records a page whose text could not be extracted
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// Page extracts the spans of a page (1-indexed)
func (r *Reader) Page(number int) (model.Page, error) {
	if number < 1 || number > r.pageCount {
		return model.Page{}, fmt.Errorf("page %d out of range (1-%d)", number, r.pageCount)
	}

	p := r.pdf.Page(number)
	if p.V.IsNull() {
		return model.Page{Number: number}, &PageError{Page: number, Err: errors.New("missing page object")}
	}

	box := mediaBox(p)
	texts, err := pageTexts(p)
	page := model.Page{
		Number: number,
		Width:  box.width(),
		Height: box.height(),
	}
	if err != nil {
		return page, &PageError{Page: number, Err: err}
	}

	page.Spans = r.assembler.Assemble(number, toGlyphs(texts, box))
	return page, nil
}

// Document extracts every page. Pages that fail are kept empty so page
// numbers stay aligned and are reported in the returned slice. The error is
// non-nil only when ctx is done.
func (r *Reader) Document(ctx context.Context) (*model.Document, []*PageError, error) {
	doc := model.NewDocument(r.filename)
	var pageErrs []*PageError
	for n := 1; n <= r.pageCount; n++ {
		if err := ctx.Err(); err != nil {
			return nil, pageErrs, err
		}
		page, err := r.Page(n)
		if err != nil {
			var pe *PageError
			if !errors.As(err, &pe) {
				pe = &PageError{Page: n, Err: err}
			}
			pageErrs = append(pageErrs, pe)
		}
		doc.AddPage(page)
	}
	return doc, pageErrs, nil
}

// pageTexts returns the positioned glyphs of a page
func pageTexts(p pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			texts, err = nil, fmt.Errorf("panic while reading content: %v", rec)
		}
	}()
	if p.V.Key("Contents").Kind() == pdf.Null {
		return nil, nil
	}
	return p.Content().Text, nil
}

// toGlyphs converts glyphs from PDF user space, with the origin at the
// bottom left and Y at the baseline, to top-origin page coordinates
func toGlyphs(texts []pdf.Text, box rect) []text.Glyph {
	glyphs := make([]text.Glyph, 0, len(texts))
	for _, t := range texts {
		size := math.Abs(t.FontSize)
		if t.S == "" || size == 0 {
			continue
		}
		glyphs = append(glyphs, text.Glyph{
			Text:     t.S,
			FontName: t.Font,
			FontSize: size,
			X:        t.X - box.llx,
			Y:        box.ury - t.Y - size,
			Width:    math.Abs(t.W),
			Height:   size,
		})
	}
	return glyphs
}

// rect is a PDF rectangle [llx lly urx ury]
type rect struct {
	llx, lly, urx, ury float64
}

// letter is used when a page has no usable media box
var letter = rect{0, 0, 612, 792}

func (r rect) width() float64  { return r.urx - r.llx }
func (r rect) height() float64 { return r.ury - r.lly }

// newRect normalizes the corners of a rectangle and reports whether it has
// a positive area
func newRect(coords [4]float64) (rect, bool) {
	r := rect{
		llx: math.Min(coords[0], coords[2]),
		lly: math.Min(coords[1], coords[3]),
		urx: math.Max(coords[0], coords[2]),
		ury: math.Max(coords[1], coords[3]),
	}
	return r, r.width() > 0 && r.height() > 0
}

// mediaBox returns the page's media box, inherited from the page tree if
// needed
func mediaBox(p pdf.Page) (box rect) {
	defer func() {
		if rec := recover(); rec != nil {
			box = letter
		}
	}()
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		mb := v.Key("MediaBox")
		if mb.Kind() != pdf.Array || mb.Len() != 4 {
			continue
		}
		var coords [4]float64
		for i := range coords {
			coords[i] = mb.Index(i).Float64()
		}
		if r, ok := newRect(coords); ok {
			return r
		}
	}
	return letter
}
