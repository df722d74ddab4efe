package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/pdfoutline/font"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/pattern"
)

// Candidate is one line-level run of text that may become a heading or part
// of the title. It is built from one or more spans on the same line.
type Candidate struct {
	// Text is the assembled text of the merged spans
	Text string

	// Spans are the source spans, left to right
	Spans []model.TextSpan

	// Index is the candidate's position in document reading order (0-based)
	Index int

	// Page is the 1-indexed page number
	Page int

	// BBox is the union of the span boxes
	BBox model.BBox

	// FontSize is the character-weighted average size of the spans
	FontSize float64

	// Bold and Italic are set when most characters use such a face
	Bold   bool
	Italic bool

	// Level is the classification: LevelBody for provisional body text,
	// LevelTitle once consumed by the title, H1-H3 once accepted
	Level model.Level

	// Score is the heading score assigned by the classifier
	Score float64

	// Signals are the score contributions behind Score
	Signals []Signal

	// Match is the structural pattern the text matched, if any
	Match *pattern.Match

	// Running is set for text repeated in the header or footer zone
	Running bool

	// Lines is the number of physical lines merged into this candidate
	Lines int

	// Reason explains why the classifier rejected the candidate
	Reason string
}

// WordCount returns the number of words in the candidate text
func (c *Candidate) WordCount() int {
	return len(strings.Fields(c.Text))
}

// IsHeading reports whether the candidate was accepted as a heading
func (c *Candidate) IsHeading() bool {
	return c.Level.IsHeading()
}

// CandidateConfig holds configuration for candidate extraction
type CandidateConfig struct {
	// LineTolerance is the baseline difference, as a fraction of span height,
	// within which spans share a line
	// Default: 0.5
	LineTolerance float64 `mapstructure:"line_tolerance" yaml:"line_tolerance"`

	// MaxGapRatio is the largest horizontal gap, as a fraction of the font
	// size, between two spans that are merged
	// Default: 1.5
	MaxGapRatio float64 `mapstructure:"max_gap_ratio" yaml:"max_gap_ratio"`

	// SpaceRatio is the gap, as a fraction of the font size, above which a
	// space separates merged spans
	// Default: 0.15
	SpaceRatio float64 `mapstructure:"space_ratio" yaml:"space_ratio"`

	// SizeTolerance is the largest size difference, in points, between two
	// spans that are merged
	// Default: 1.0
	SizeTolerance float64 `mapstructure:"size_tolerance" yaml:"size_tolerance"`
}

// DefaultCandidateConfig returns sensible default configuration
func DefaultCandidateConfig() CandidateConfig {
	return CandidateConfig{
		LineTolerance: 0.5,
		MaxGapRatio:   1.5,
		SpaceRatio:    0.15,
		SizeTolerance: 1.0,
	}
}

// CandidateExtractor groups a document's spans into heading candidates
type CandidateExtractor struct {
	config CandidateConfig
}

// NewCandidateExtractor creates a new extractor with default configuration
func NewCandidateExtractor() *CandidateExtractor {
	return &CandidateExtractor{
		config: DefaultCandidateConfig(),
	}
}

// NewCandidateExtractorWithConfig creates an extractor with custom
// configuration
func NewCandidateExtractorWithConfig(config CandidateConfig) *CandidateExtractor {
	return &CandidateExtractor{
		config: config,
	}
}

// Extract returns the candidates of every page in reading order. Candidates
// that are body-sized and not bold are tagged LevelBody.
func (e *CandidateExtractor) Extract(doc *model.Document, prof font.Profile) []Candidate {
	if doc == nil {
		return nil
	}

	var cands []Candidate
	for _, page := range doc.Pages {
		for _, line := range e.groupIntoLines(page.Spans) {
			cands = append(cands, e.foldLine(line)...)
		}
	}

	for i := range cands {
		cands[i].Index = i
		if !cands[i].Bold && prof.IsBodySize(cands[i].FontSize) {
			cands[i].Level = model.LevelBody
		}
	}
	return cands
}

// groupIntoLines groups spans by baseline and returns the lines top to
// bottom, each sorted left to right
func (e *CandidateExtractor) groupIntoLines(spans []model.TextSpan) [][]model.TextSpan {
	type lineGroup struct {
		baseline float64
		height   float64
		spans    []model.TextSpan
	}

	var groups []*lineGroup
	for _, s := range spans {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		baseline := s.Y + s.Height

		var found *lineGroup
		for _, g := range groups {
			tol := e.config.LineTolerance * math.Min(g.height, s.Height)
			if math.Abs(g.baseline-baseline) <= tol {
				found = g
				break
			}
		}
		if found == nil {
			groups = append(groups, &lineGroup{baseline: baseline, height: s.Height, spans: []model.TextSpan{s}})
			continue
		}
		found.spans = append(found.spans, s)
		if s.Height > found.height {
			found.height = s.Height
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].baseline < groups[j].baseline
	})

	lines := make([][]model.TextSpan, len(groups))
	for i, g := range groups {
		sort.SliceStable(g.spans, func(a, b int) bool {
			return g.spans[a].X < g.spans[b].X
		})
		lines[i] = g.spans
	}
	return lines
}

// foldLine merges contiguous spans of comparable size into candidates. Font
// weight is ignored so that partially bold headings stay whole.
func (e *CandidateExtractor) foldLine(line []model.TextSpan) []Candidate {
	var (
		cands []Candidate
		group []model.TextSpan
	)
	for _, s := range line {
		if len(group) > 0 {
			prev := group[len(group)-1]
			gap := s.X - (prev.X + prev.Width)
			size := math.Max(prev.FontSize, s.FontSize)
			if gap > e.config.MaxGapRatio*size || math.Abs(prev.FontSize-s.FontSize) > e.config.SizeTolerance {
				cands = append(cands, e.buildCandidate(group))
				group = nil
			}
		}
		group = append(group, s)
	}
	if len(group) > 0 {
		cands = append(cands, e.buildCandidate(group))
	}
	return cands
}

// buildCandidate creates a candidate from spans on one line
func (e *CandidateExtractor) buildCandidate(spans []model.TextSpan) Candidate {
	c := Candidate{
		Spans: spans,
		Page:  spans[0].Page,
		BBox:  spans[0].BBox(),
		Lines: 1,
	}

	var (
		sb                    strings.Builder
		chars, bold, italic   int
		weightedSize, sizeSum float64
	)
	for i, s := range spans {
		if i > 0 {
			prev := spans[i-1]
			gap := s.X - (prev.X + prev.Width)
			if gap > e.config.SpaceRatio*math.Max(prev.FontSize, s.FontSize) {
				sb.WriteByte(' ')
			}
			c.BBox = c.BBox.Union(s.BBox())
		}
		sb.WriteString(strings.TrimSpace(s.Text))

		n := s.CharCount()
		chars += n
		weightedSize += s.FontSize * float64(n)
		sizeSum += s.FontSize
		if s.Bold {
			bold += n
		}
		if s.Italic {
			italic += n
		}
	}

	c.Text = sb.String()
	if chars > 0 {
		c.FontSize = weightedSize / float64(chars)
	} else {
		c.FontSize = sizeSum / float64(len(spans))
	}
	c.Bold = bold*2 > chars
	c.Italic = italic*2 > chars
	return c
}

// mergeCandidates joins candidates that continue each other onto new lines
func mergeCandidates(first, second Candidate) Candidate {
	merged := first
	merged.Text = first.Text + " " + second.Text
	merged.Spans = append(append([]model.TextSpan(nil), first.Spans...), second.Spans...)
	merged.BBox = first.BBox.Union(second.BBox)
	merged.Lines = first.Lines + second.Lines
	return merged
}
