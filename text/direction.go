package text

import "unicode"

// Direction is the writing direction of a run of text
type Direction int

const (
	// LTR is left-to-right (Latin, Cyrillic, CJK, ...)
	LTR Direction = iota
	// RTL is right-to-left (Arabic, Hebrew, ...)
	RTL
	// Neutral covers digits, punctuation and whitespace
	Neutral
)

// String returns a string representation of the direction
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

var rtlScripts = []*unicode.RangeTable{
	unicode.Arabic,
	unicode.Hebrew,
	unicode.Syriac,
	unicode.Thaana,
	unicode.Nko,
}

// CharDirection returns the inherent direction of r
func CharDirection(r rune) Direction {
	if !unicode.IsLetter(r) && !unicode.IsMark(r) {
		return Neutral
	}
	if unicode.In(r, rtlScripts...) {
		return RTL
	}
	return LTR
}

// DetectDirection returns the dominant direction of s, or Neutral when s has
// no strongly directional characters
func DetectDirection(s string) Direction {
	ltr, rtl := 0, 0
	for _, r := range s {
		switch CharDirection(r) {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}

	switch {
	case ltr == 0 && rtl == 0:
		return Neutral
	case rtl > ltr:
		return RTL
	default:
		return LTR
	}
}
