package model

import "slices"

// Document is the per-file input to the outline pipeline.
type Document struct {
	// Source is the file name the document was read from, if any
	Source string

	// Pages in document order
	Pages []Page
}

// Page represents a single page of extracted text
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points
	Spans  []TextSpan
}

// NewDocument creates a new empty document
func NewDocument(source string) *Document {
	return &Document{
		Source: source,
		Pages:  make([]Page, 0),
	}
}

// AddPage appends a page, numbering it after the existing pages. The number
// is also stamped onto a copy of the page's spans; the caller's slice is left
// as it was.
func (d *Document) AddPage(page Page) {
	page.Number = len(d.Pages) + 1
	page.Spans = slices.Clone(page.Spans)
	for i := range page.Spans {
		page.Spans[i].Page = page.Number
	}
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by number (1-indexed)
func (d *Document) GetPage(number int) *Page {
	if d == nil || number < 1 || number > len(d.Pages) {
		return nil
	}
	return &d.Pages[number-1]
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// Spans returns every span of the document in reading order
func (d *Document) Spans() []TextSpan {
	if d == nil {
		return nil
	}
	var n int
	for _, p := range d.Pages {
		n += len(p.Spans)
	}
	spans := make([]TextSpan, 0, n)
	for _, p := range d.Pages {
		spans = append(spans, p.Spans...)
	}
	return spans
}

// IsEmpty reports whether the document has no text at all
func (d *Document) IsEmpty() bool {
	if d == nil {
		return true
	}
	for _, p := range d.Pages {
		for _, s := range p.Spans {
			if s.CharCount() > 0 {
				return false
			}
		}
	}
	return true
}
