// Package pattern matches heading fragments against fixed structural
// patterns, independent of font metrics.
//
// A [Matcher] holds an ordered list of patterns; the first one that matches
// wins. Numbered sections come first, then chapter and appendix labels,
// heading keywords, and finally list items:
//
//	m := pattern.NewMatcher()
//	if match, ok := m.Match("2.3.1 Sampling"); ok {
//	    fmt.Println(match.Kind, match.Depth) // numbered 3
//	}
//
// Matchers are immutable and safe for concurrent use.
package pattern

import (
	"regexp"
	"strings"
)

// Kind classifies what a pattern recognises
type Kind int

const (
	KindNone Kind = iota
	KindNumbered
	KindChapter
	KindAppendix
	KindRoman
	KindKeyword
	KindList
)

// String returns a string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNumbered:
		return "numbered"
	case KindChapter:
		return "chapter"
	case KindAppendix:
		return "appendix"
	case KindRoman:
		return "roman"
	case KindKeyword:
		return "keyword"
	case KindList:
		return "list"
	default:
		return "none"
	}
}

// Weight scales the pattern bonus of a match by how strongly its kind
// indicates a heading
func (k Kind) Weight() float64 {
	switch k {
	case KindNumbered, KindChapter, KindAppendix:
		return 1.0
	case KindRoman:
		return 0.9
	case KindKeyword:
		return 0.8
	case KindList:
		return 0.2
	default:
		return 0
	}
}

// Pattern is one structural rule
type Pattern struct {
	ID   string
	Kind Kind
	re   *regexp.Regexp

	// depth returns the numbering depth from the submatches; nil means the
	// pattern carries a fixed depth
	depth      func(sub []string) (int, string)
	fixedDepth int
}

// Match is the result of a successful match
type Match struct {
	// PatternID identifies the pattern that matched
	PatternID string

	// Kind of the matching pattern
	Kind Kind

	// Priority is the pattern's position in the matcher (0 = highest)
	Priority int

	// Depth is the numbering depth hint ("2.3.1" -> 3); 0 when the pattern
	// carries no numbering
	Depth int

	// Number is the matched section number or label, if any
	Number string
}

// Weight returns the bonus scale of the match
func (m Match) Weight() float64 {
	return m.Kind.Weight()
}

// HasDepth reports whether the match carries a numbering depth hint
func (m Match) HasDepth() bool {
	return m.Depth > 0
}

// Keywords are the heading words recognised by the keyword pattern
var Keywords = []string{
	"abstract",
	"acknowledgements",
	"acknowledgments",
	"appendix",
	"background",
	"bibliography",
	"conclusion",
	"conclusions",
	"contents",
	"discussion",
	"foreword",
	"glossary",
	"index",
	"introduction",
	"methodology",
	"methods",
	"overview",
	"preface",
	"references",
	"results",
	"revision history",
	"summary",
	"table of contents",
}

func numberedDepth(sub []string) (int, string) {
	number := strings.TrimSuffix(sub[1], ".")
	return strings.Count(number, ".") + 1, number
}

// DefaultPatterns returns the built-in patterns in priority order
func DefaultPatterns() []Pattern {
	keywordAlt := strings.Join(Keywords, "|")
	return []Pattern{
		{
			ID:    "numbered-section",
			Kind:  KindNumbered,
			re:    regexp.MustCompile(`^(\d{1,3}(?:\.\d{1,3}){0,5})\.?\s+(\S.*)$`),
			depth: numberedDepth,
		},
		{
			ID:         "chapter",
			Kind:       KindChapter,
			re:         regexp.MustCompile(`(?i)^(?:chapter|section|part)\s+(\d+|[ivxlcdm]+)\b`),
			fixedDepth: 1,
		},
		{
			ID:         "appendix",
			Kind:       KindAppendix,
			re:         regexp.MustCompile(`(?i)^appendix\s+([a-z]|\d+)\b`),
			fixedDepth: 1,
		},
		{
			ID:         "roman-section",
			Kind:       KindRoman,
			re:         regexp.MustCompile(`^([IVXLCDM]+)\.\s+\S`),
			fixedDepth: 1,
		},
		{
			ID:   "keyword",
			Kind: KindKeyword,
			re:   regexp.MustCompile(`(?i)^(?:(\d+)\.?\s+)?(?:` + keywordAlt + `)\s*:?\s*$`),
		},
		{
			ID:   "list-bullet",
			Kind: KindList,
			re:   regexp.MustCompile(`^[•▪◦‣●○■□\-\*–]\s+\S`),
		},
		{
			ID:   "list-lettered",
			Kind: KindList,
			re:   regexp.MustCompile(`^(?:\(?[a-z]\)|[a-z]\.)\s+\S`),
		},
	}
}

// Matcher applies patterns in priority order
type Matcher struct {
	patterns []Pattern
}

// NewMatcher creates a matcher with the default patterns
func NewMatcher() *Matcher {
	return &Matcher{patterns: DefaultPatterns()}
}

// NewMatcherWithPatterns creates a matcher with custom patterns. The slice
// order is the priority order.
func NewMatcherWithPatterns(patterns []Pattern) *Matcher {
	return &Matcher{patterns: append([]Pattern(nil), patterns...)}
}

// Patterns returns the matcher's patterns in priority order
func (m *Matcher) Patterns() []Pattern {
	return append([]Pattern(nil), m.patterns...)
}

// Match returns the first pattern that matches text
func (m *Matcher) Match(text string) (Match, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Match{}, false
	}

	for i, p := range m.patterns {
		sub := p.re.FindStringSubmatch(text)
		if sub == nil {
			continue
		}

		match := Match{
			PatternID: p.ID,
			Kind:      p.Kind,
			Priority:  i,
			Depth:     p.fixedDepth,
		}
		switch {
		case p.depth != nil:
			match.Depth, match.Number = p.depth(sub)
		case len(sub) > 1:
			match.Number = sub[1]
		}
		return match, true
	}
	return Match{}, false
}

// NewPattern builds a custom pattern with a fixed depth hint
func NewPattern(id string, kind Kind, expr string, depth int) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{ID: id, Kind: kind, re: re, fixedDepth: depth}, nil
}
