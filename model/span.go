package model

import "unicode"

// TextSpan is a contiguous run of text sharing one font size and style, as
// reported by the PDF reader.
type TextSpan struct {
	Text     string
	FontSize float64
	FontName string
	Bold     bool
	Italic   bool

	// Page is the 1-indexed page the span appears on
	Page int

	// X, Y locate the top-left corner of the span; Y grows downward
	X, Y   float64
	Width  float64
	Height float64
}

// BBox returns the bounding box of the span
func (s TextSpan) BBox() BBox {
	return BBox{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// CharCount returns the number of non-space characters in the span
func (s TextSpan) CharCount() int {
	n := 0
	for _, r := range s.Text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
