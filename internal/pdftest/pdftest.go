// Package pdftest builds small, valid PDF files for tests.
//
// The generated files use the standard Helvetica fonts with fixed widths
// and uncompressed content streams, one text object per line.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Page size of generated documents (US letter)
const (
	PageWidth  = 612.0
	PageHeight = 792.0
)

// glyphWidth is the advance of every character, in 1/1000 em
const glyphWidth = 500

// Line is one line of text on a page
type Line struct {
	Text string
	X    float64
	Top  float64 // distance from the top of the page to the top of the line
	Size float64
	Bold bool
}

// Baseline returns the line's baseline in PDF user space
func (l Line) Baseline() float64 {
	return PageHeight - l.Top - l.Size
}

// Page is the content of one page
type Page struct {
	Lines []Line
}

// Text places a regular line at the left margin
func Text(s string, top, size float64) Line {
	return Line{Text: s, X: 72, Top: top, Size: size}
}

// Bold places a bold line at the left margin
func Bold(s string, top, size float64) Line {
	return Line{Text: s, X: 72, Top: top, Size: size, Bold: true}
}

// Build returns a PDF with one page per element of pages
func Build(pages ...Page) []byte {
	w := &writer{}
	w.buf.WriteString("%PDF-1.4\n")

	widths := strings.TrimSpace(strings.Repeat(fmt.Sprintf("%d ", glyphWidth), 95))
	font := func(name string) string {
		return fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [%s] >>", name, widths)
	}

	// Objects 1-4 are fixed; each page adds a page and a content object.
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 5+2*i)
	}
	w.object("<< /Type /Catalog /Pages 2 0 R >>")
	w.object(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	w.object(font("Helvetica"))
	w.object(font("Helvetica-Bold"))

	for i, p := range pages {
		content := contentStream(p)
		w.object(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Resources << /Font << /F1 3 0 R /F2 4 0 R >> >> /Contents %d 0 R >>",
			PageWidth, PageHeight, 6+2*i))
		w.object(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	w.trailer()
	return w.buf.Bytes()
}

// WriteFile writes a generated PDF to path
func WriteFile(path string, pages ...Page) error {
	return os.WriteFile(path, Build(pages...), 0644)
}

func contentStream(p Page) string {
	var sb strings.Builder
	for _, l := range p.Lines {
		font := "F1"
		if l.Bold {
			font = "F2"
		}
		fmt.Fprintf(&sb, "BT /%s %g Tf %g %g Td (%s) Tj ET\n", font, l.Size, l.X, l.Baseline(), escape(l.Text))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

type writer struct {
	buf     bytes.Buffer
	offsets []int
}

func (w *writer) object(body string) {
	w.offsets = append(w.offsets, w.buf.Len())
	fmt.Fprintf(&w.buf, "%d 0 obj\n%s\nendobj\n", len(w.offsets), body)
}

func (w *writer) trailer() {
	xref := w.buf.Len()
	fmt.Fprintf(&w.buf, "xref\n0 %d\n", len(w.offsets)+1)
	w.buf.WriteString("0000000000 65535 f \n")
	for _, off := range w.offsets {
		fmt.Fprintf(&w.buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&w.buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(w.offsets)+1, xref)
}
