package layout

import (
	"sort"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/text"
)

// Normalizer turns classified headings into the final outline
type Normalizer struct{}

// NewNormalizer creates a new normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize cleans the title and headings and builds the document result.
// Entries are sorted by page, then vertical and horizontal position. Empty
// and stopword-only entries are dropped, running text is kept only at its
// first occurrence and consecutive duplicates are collapsed.
func (n *Normalizer) Normalize(title Title, headings []Candidate) model.DocumentResult {
	result := model.EmptyResult()
	result.Title = text.Clean(title.Text)

	sorted := make([]Candidate, 0, len(headings))
	for _, h := range headings {
		if h.IsHeading() {
			sorted = append(sorted, h)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.BBox.Y != b.BBox.Y {
			return a.BBox.Y < b.BBox.Y
		}
		return a.BBox.X < b.BBox.X
	})

	seenRunning := make(map[string]bool)
	var prevKey string
	var prevLevel model.Level
	for _, h := range sorted {
		cleaned := text.Clean(h.Text)
		if cleaned == "" || text.IsStopwordOnly(cleaned) {
			continue
		}

		key := text.Key(cleaned)
		// Running text repeats verbatim; "Part 2" under a running "Part 1"
		// is a different heading and stays.
		if h.Running {
			if seenRunning[key] {
				continue
			}
			seenRunning[key] = true
		}
		if len(result.Outline) > 0 && key == prevKey && h.Level == prevLevel {
			continue
		}

		result.Outline = append(result.Outline, model.OutlineEntry{
			Level: h.Level,
			Text:  cleaned,
			Page:  h.Page,
		})
		prevKey, prevLevel = key, h.Level
	}
	return result
}
