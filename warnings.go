package pdfoutline

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal issue found while processing a document. The
// outline is still produced but may be incomplete.
type Warning struct {
	// Page is the 1-indexed page the warning refers to; 0 for the whole
	// document
	Page int

	// Message describes the issue
	Message string
}

// String returns the warning with its page, if any
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return w.Message
}

// FormatWarnings joins warnings into a single line
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

const (
	warnNoText     = "no text layer found; scanned or image-only documents are not supported"
	warnDegenerate = "too little text for font statistics; using the fallback body size"
)
