package layout

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/tsawler/pdfoutline/font"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/pattern"
	"github.com/tsawler/pdfoutline/text"
)

// HeadingConfig holds configuration for heading classification
type HeadingConfig struct {
	// SizeWeight scales the size signal: SizeWeight * (size/body - 1)
	// Default: 2.0
	SizeWeight float64 `mapstructure:"size_weight" yaml:"size_weight"`

	// BoldBonus is added for bold candidates
	// Default: 0.4
	BoldBonus float64 `mapstructure:"bold_bonus" yaml:"bold_bonus"`

	// PatternBonus is added, scaled by the match weight, for candidates that
	// match a structural pattern
	// Default: 0.5
	PatternBonus float64 `mapstructure:"pattern_bonus" yaml:"pattern_bonus"`

	// Threshold is the score a candidate must exceed to be a heading
	// Default: 0.5
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`

	// MinChars and MaxChars bound the length of heading text
	// Default: 2, 150
	MinChars int `mapstructure:"min_chars" yaml:"min_chars"`
	MaxChars int `mapstructure:"max_chars" yaml:"max_chars"`

	// MaxWords is the maximum word count of a heading
	// Default: 15
	MaxWords int `mapstructure:"max_words" yaml:"max_words"`

	// WrapGapRatio is the largest vertical gap, as a fraction of the font
	// size, between two lines of one wrapped heading
	// Default: 0.6
	WrapGapRatio float64 `mapstructure:"wrap_gap_ratio" yaml:"wrap_gap_ratio"`

	// MaxWrapLines is the maximum number of lines merged into one heading
	// Default: 3
	MaxWrapLines int `mapstructure:"max_wrap_lines" yaml:"max_wrap_lines"`
}

// DefaultHeadingConfig returns sensible default configuration
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		SizeWeight:   2.0,
		BoldBonus:    0.4,
		PatternBonus: 0.5,
		Threshold:    0.5,
		MinChars:     2,
		MaxChars:     150,
		MaxWords:     15,
		WrapGapRatio: 0.6,
		MaxWrapLines: 3,
	}
}

// Reasons a candidate is rejected
const (
	ReasonBody      = "body text"
	ReasonNoise     = "noise"
	ReasonTooShort  = "too short"
	ReasonTooLong   = "too long"
	ReasonTooWordy  = "too many words"
	ReasonProse     = "reads like prose"
	ReasonLowercase = "starts lowercase"
	ReasonLowScore  = "score below threshold"
)

// HeadingClassifier scores candidates and assigns heading levels
type HeadingClassifier struct {
	config  HeadingConfig
	matcher *pattern.Matcher
}

// NewHeadingClassifier creates a new classifier with default configuration
func NewHeadingClassifier() *HeadingClassifier {
	return &HeadingClassifier{
		config:  DefaultHeadingConfig(),
		matcher: pattern.NewMatcher(),
	}
}

// NewHeadingClassifierWithConfig creates a classifier with custom
// configuration. A nil matcher uses the default patterns.
func NewHeadingClassifierWithConfig(config HeadingConfig, matcher *pattern.Matcher) *HeadingClassifier {
	if matcher == nil {
		matcher = pattern.NewMatcher()
	}
	return &HeadingClassifier{
		config:  config,
		matcher: matcher,
	}
}

// Classify scores every candidate and returns the candidates in reading
// order with scores, matches and levels set. Wrapped headings are merged, so
// the result may be shorter than the input. Title candidates pass through
// unchanged.
func (c *HeadingClassifier) Classify(cands []Candidate, prof font.Profile) []Candidate {
	out := make([]Candidate, len(cands))
	copy(out, cands)

	for i := range out {
		cand := &out[i]
		if cand.Level == model.LevelTitle {
			continue
		}
		c.score(cand, prof)
	}

	out = c.mergeWrapped(out)
	c.assignLevels(out, prof)
	return out
}

// score sets the signals and score of a candidate and marks it accepted
// (LevelH1 placeholder) or rejected
func (c *HeadingClassifier) score(cand *Candidate, prof font.Profile) {
	cleaned := text.Clean(cand.Text)
	if m, ok := c.matcher.Match(cleaned); ok {
		cand.Match = &m
	}

	var signals []Signal
	ratio := prof.Ratio(cand.FontSize)
	signals = appendSignal(signals, SignalFontSize, c.config.SizeWeight*math.Max(0, ratio-1))
	if cand.Bold {
		signals = appendSignal(signals, SignalFontWeight, c.config.BoldBonus)
	}
	if cand.Match != nil {
		signals = appendSignal(signals, SignalPattern, c.config.PatternBonus*cand.Match.Weight())
	}
	cand.Signals = signals
	cand.Score = Reduce(signals)

	if reason := c.rejectReason(cand, cleaned); reason != "" {
		cand.Reason = reason
		if cand.Level != model.LevelBody {
			cand.Level = model.LevelNone
		}
		return
	}

	if cand.Score <= c.config.Threshold {
		cand.Reason = ReasonLowScore
		cand.Level = model.LevelNone
		return
	}
	cand.Reason = ""
	cand.Level = model.LevelH1
}

// rejectReason applies the text filters that run before scoring
func (c *HeadingClassifier) rejectReason(cand *Candidate, cleaned string) string {
	n := utf8.RuneCountInString(cleaned)
	switch {
	case cand.Level == model.LevelBody:
		return ReasonBody
	case pattern.IsNoise(cleaned):
		return ReasonNoise
	case n < c.config.MinChars:
		return ReasonTooShort
	case n > c.config.MaxChars:
		return ReasonTooLong
	case c.config.MaxWords > 0 && cand.WordCount() > c.config.MaxWords:
		return ReasonTooWordy
	case pattern.LooksLikeProse(cleaned):
		return ReasonProse
	case cand.Match == nil && pattern.StartsLowercase(cleaned):
		return ReasonLowercase
	}
	return ""
}

// mergeWrapped joins accepted headings that wrap onto a second line. The
// second line must share the first one's page, size and weight, follow it
// closely and carry no pattern of its own.
func (c *HeadingClassifier) mergeWrapped(cands []Candidate) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, cand := range cands {
		if n := len(out); n > 0 && c.continues(out[n-1], cand) {
			merged := mergeCandidates(out[n-1], cand)
			merged.Score = math.Max(out[n-1].Score, cand.Score)
			out[n-1] = merged
			continue
		}
		out = append(out, cand)
	}
	return out
}

func (c *HeadingClassifier) continues(prev, next Candidate) bool {
	if !prev.IsHeading() || !next.IsHeading() || next.Match != nil {
		return false
	}
	if prev.Page != next.Page || prev.Bold != next.Bold || prev.Running || next.Running {
		return false
	}
	if c.config.MaxWrapLines > 0 && prev.Lines+next.Lines > c.config.MaxWrapLines {
		return false
	}
	if font.RoundSize(prev.FontSize, 0.5) != font.RoundSize(next.FontSize, 0.5) {
		return false
	}
	gap := next.BBox.Top() - prev.BBox.Bottom()
	// Tight leading can make consecutive line boxes overlap slightly.
	return gap >= -0.2*prev.FontSize && gap <= c.config.WrapGapRatio*prev.FontSize
}

// assignLevels ranks the occupied heading tiers and maps accepted
// candidates to H1-H3. A numbering depth overrides the size rank.
func (c *HeadingClassifier) assignLevels(cands []Candidate, prof font.Profile) {
	occupied := make(map[int]bool)
	for _, cand := range cands {
		if cand.IsHeading() {
			if tier := prof.TierIndex(cand.FontSize); tier >= 0 {
				occupied[tier] = true
			}
		}
	}
	tiers := make([]int, 0, len(occupied))
	for t := range occupied {
		tiers = append(tiers, t)
	}
	sort.Ints(tiers)

	rank := make(map[int]int, len(tiers))
	for i, t := range tiers {
		rank[t] = i
	}

	for i := range cands {
		cand := &cands[i]
		if !cand.IsHeading() {
			continue
		}
		if cand.Match != nil && cand.Match.HasDepth() {
			cand.Level = model.HeadingLevel(cand.Match.Depth)
			continue
		}
		r := len(tiers)
		if tier := prof.TierIndex(cand.FontSize); tier >= 0 {
			r = rank[tier]
		}
		cand.Level = model.HeadingLevel(r + 1)
	}
}

// Headings returns the accepted candidates of a classified slice
func Headings(cands []Candidate) []Candidate {
	var out []Candidate
	for _, c := range cands {
		if c.IsHeading() {
			out = append(out, c)
		}
	}
	return out
}
