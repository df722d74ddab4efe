package layout

import (
	"math"
	"strings"

	"github.com/tsawler/pdfoutline/font"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/pattern"
	"github.com/tsawler/pdfoutline/text"
)

// TitleConfig holds configuration for title extraction
type TitleConfig struct {
	// MaxLines is the number of candidates per page considered
	// Default: 15
	MaxLines int `mapstructure:"max_lines" yaml:"max_lines"`

	// SparseLines: when page 1 has fewer candidates than this and none of
	// them carries text (only page numbers, dates and similar noise), page 2
	// is scanned too. A page 1 with any real text keeps the scan to page 1,
	// so headings on page 2 are never taken as the title.
	// Default: 3
	SparseLines int `mapstructure:"sparse_lines" yaml:"sparse_lines"`

	// MaxWords is the maximum word count of a title line
	// Default: 20
	MaxWords int `mapstructure:"max_words" yaml:"max_words"`

	// SizeWeight scales the size signal: SizeWeight * (size/body - 1)
	// Default: 2.0
	SizeWeight float64 `mapstructure:"size_weight" yaml:"size_weight"`

	// BoldBonus is added for bold lines
	// Default: 0.5
	BoldBonus float64 `mapstructure:"bold_bonus" yaml:"bold_bonus"`

	// PositionBonus is the bonus of the first line on page 1; it decays
	// linearly to zero at MaxLines
	// Default: 1.0
	PositionBonus float64 `mapstructure:"position_bonus" yaml:"position_bonus"`

	// WordBonus is added for lines of 2-12 words; single words get
	// SingleWordBonus
	// Default: 0.5, 0.2
	WordBonus       float64 `mapstructure:"word_bonus" yaml:"word_bonus"`
	SingleWordBonus float64 `mapstructure:"single_word_bonus" yaml:"single_word_bonus"`

	// ProximityBonus is added when a neighbouring line of comparable size is
	// within the merge gap
	// Default: 0.3
	ProximityBonus float64 `mapstructure:"proximity_bonus" yaml:"proximity_bonus"`

	// MinScore is the score a seed must reach
	// Default: 1.0
	MinScore float64 `mapstructure:"min_score" yaml:"min_score"`

	// MergeGapRatio is the largest vertical gap, as a fraction of the seed
	// size, between merged title lines
	// Default: 1.0
	MergeGapRatio float64 `mapstructure:"merge_gap_ratio" yaml:"merge_gap_ratio"`

	// MergeScoreFraction is the fraction of the seed score a neighbour needs
	// to be merged
	// Default: 0.6
	MergeScoreFraction float64 `mapstructure:"merge_score_fraction" yaml:"merge_score_fraction"`

	// MaxMergedLines is the maximum number of lines in the title
	// Default: 4
	MaxMergedLines int `mapstructure:"max_merged_lines" yaml:"max_merged_lines"`

	// SizeTolerance is the size difference, in points, within which two
	// lines count as comparable
	// Default: 2.0
	SizeTolerance float64 `mapstructure:"size_tolerance" yaml:"size_tolerance"`
}

// DefaultTitleConfig returns sensible default configuration
func DefaultTitleConfig() TitleConfig {
	return TitleConfig{
		MaxLines:           15,
		SparseLines:        3,
		MaxWords:           20,
		SizeWeight:         2.0,
		BoldBonus:          0.5,
		PositionBonus:      1.0,
		WordBonus:          0.5,
		SingleWordBonus:    0.2,
		ProximityBonus:     0.3,
		MinScore:           1.0,
		MergeGapRatio:      1.0,
		MergeScoreFraction: 0.6,
		MaxMergedLines:     4,
		SizeTolerance:      2.0,
	}
}

// Title is the extracted document title
type Title struct {
	// Text is the cleaned title text; empty when no title qualified
	Text string

	// Page is the page the title was found on
	Page int

	// Score is the seed's score
	Score float64

	// Indices are the Candidate.Index values of the merged lines
	Indices []int
}

// IsEmpty reports whether no title was found
func (t Title) IsEmpty() bool {
	return t.Text == ""
}

// TitleExtractor picks the title from the first page(s)
type TitleExtractor struct {
	config TitleConfig
}

// NewTitleExtractor creates a new extractor with default configuration
func NewTitleExtractor() *TitleExtractor {
	return &TitleExtractor{
		config: DefaultTitleConfig(),
	}
}

// NewTitleExtractorWithConfig creates an extractor with custom configuration
func NewTitleExtractorWithConfig(config TitleConfig) *TitleExtractor {
	return &TitleExtractor{
		config: config,
	}
}

// titleLine is a scored candidate in the scan window
type titleLine struct {
	cand     Candidate
	position int // index within the page window
	score    float64
	eligible bool
}

// Extract selects a seed line among the early candidates and merges its
// neighbours into the title. cands must be in reading order.
func (e *TitleExtractor) Extract(cands []Candidate, prof font.Profile) Title {
	pages := e.scanPages(cands, prof)
	if len(pages) == 0 {
		return Title{}
	}

	seedIdx := -1
	var (
		seedPage []titleLine
		best     float64
	)
	for _, lines := range pages {
		for i := range lines {
			l := lines[i]
			if !l.eligible || l.score < e.config.MinScore {
				continue
			}
			// Ties keep the earlier line.
			if seedIdx < 0 || l.score > best {
				seedPage, seedIdx, best = lines, i, l.score
			}
		}
	}
	if seedIdx < 0 {
		return Title{}
	}

	lo, hi := e.merge(seedPage, seedIdx)

	var parts []string
	title := Title{
		Page:  seedPage[seedIdx].cand.Page,
		Score: best,
	}
	for _, l := range seedPage[lo : hi+1] {
		parts = append(parts, l.cand.Text)
		title.Indices = append(title.Indices, l.cand.Index)
	}
	title.Text = text.Clean(strings.Join(parts, " "))
	if title.Text == "" {
		return Title{}
	}
	return title
}

// scanPages returns the scored scan window of page 1, and of page 2 when
// page 1 is sparse and blank
func (e *TitleExtractor) scanPages(cands []Candidate, prof font.Profile) [][]titleLine {
	byPage := make(map[int][]Candidate)
	first := 0
	for _, c := range cands {
		if first == 0 || c.Page < first {
			first = c.Page
		}
		byPage[c.Page] = append(byPage[c.Page], c)
	}
	if first == 0 {
		return nil
	}

	pages := []int{first}
	if len(byPage[first]) < e.config.SparseLines && blankPage(byPage[first]) {
		pages = append(pages, first+1)
	}

	var out [][]titleLine
	for n, page := range pages {
		window := byPage[page]
		if e.config.MaxLines > 0 && len(window) > e.config.MaxLines {
			window = window[:e.config.MaxLines]
		}
		if len(window) == 0 {
			continue
		}
		out = append(out, e.scoreWindow(window, prof, n == 0))
	}
	return out
}

// blankPage reports whether cands hold nothing but noise
func blankPage(cands []Candidate) bool {
	for _, c := range cands {
		cleaned := text.Clean(c.Text)
		if cleaned != "" && !pattern.IsTitleNoise(cleaned) {
			return false
		}
	}
	return true
}

// scoreWindow scores the lines of one page window. Position bonuses only
// apply on the first scanned page.
func (e *TitleExtractor) scoreWindow(window []Candidate, prof font.Profile, firstPage bool) []titleLine {
	lines := make([]titleLine, len(window))
	for i, c := range window {
		lines[i] = titleLine{cand: c, position: i, eligible: e.eligible(c)}
	}
	for i := range lines {
		lines[i].score = e.score(lines, i, prof, firstPage)
	}
	return lines
}

// eligible reports whether c may seed or join a title
func (e *TitleExtractor) eligible(c Candidate) bool {
	if c.Level == model.LevelBody || c.Running {
		return false
	}
	cleaned := text.Clean(c.Text)
	if cleaned == "" || len([]rune(cleaned)) < 3 || pattern.IsTitleNoise(cleaned) {
		return false
	}
	return e.config.MaxWords <= 0 || c.WordCount() <= e.config.MaxWords
}

// score computes the title score of the line at i
func (e *TitleExtractor) score(lines []titleLine, i int, prof font.Profile, firstPage bool) float64 {
	c := lines[i].cand

	var signals []Signal
	signals = appendSignal(signals, SignalFontSize, e.config.SizeWeight*math.Max(0, prof.Ratio(c.FontSize)-1))
	if c.Bold {
		signals = appendSignal(signals, SignalFontWeight, e.config.BoldBonus)
	}
	if firstPage && e.config.MaxLines > 0 {
		decay := 1 - float64(lines[i].position)/float64(e.config.MaxLines)
		signals = appendSignal(signals, SignalPosition, e.config.PositionBonus*math.Max(0, decay))
	}
	switch words := c.WordCount(); {
	case words >= 2 && words <= 12:
		signals = appendSignal(signals, SignalLength, e.config.WordBonus)
	case words == 1:
		signals = appendSignal(signals, SignalLength, e.config.SingleWordBonus)
	}
	if e.hasComparableNeighbour(lines, i) {
		signals = appendSignal(signals, SignalProximity, e.config.ProximityBonus)
	}
	return Reduce(signals)
}

func (e *TitleExtractor) hasComparableNeighbour(lines []titleLine, i int) bool {
	c := lines[i].cand
	for _, j := range []int{i - 1, i + 1} {
		if j < 0 || j >= len(lines) || !lines[j].eligible {
			continue
		}
		n := lines[j].cand
		if math.Abs(n.FontSize-c.FontSize) <= e.config.SizeTolerance && c.BBox.VerticalGap(n.BBox) <= e.config.MergeGapRatio*c.FontSize {
			return true
		}
	}
	return false
}

// merge folds neighbours of the seed into the title, upward then downward,
// and returns the inclusive window bounds
func (e *TitleExtractor) merge(lines []titleLine, seed int) (lo, hi int) {
	lo, hi = seed, seed
	seedLine := lines[seed]
	maxGap := e.config.MergeGapRatio * seedLine.cand.FontSize
	minScore := e.config.MergeScoreFraction * seedLine.score

	joins := func(j int, group model.BBox) bool {
		l := lines[j]
		return l.eligible &&
			l.score >= minScore &&
			group.VerticalGap(l.cand.BBox) <= maxGap
	}

	for lo > 0 && e.room(lo, hi) {
		if !joins(lo-1, lines[lo].cand.BBox) {
			break
		}
		lo--
	}
	for hi < len(lines)-1 && e.room(lo, hi) {
		if !joins(hi+1, lines[hi].cand.BBox) {
			break
		}
		hi++
	}
	return lo, hi
}

func (e *TitleExtractor) room(lo, hi int) bool {
	return e.config.MaxMergedLines <= 0 || hi-lo+1 < e.config.MaxMergedLines
}
