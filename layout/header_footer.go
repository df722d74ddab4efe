package layout

import (
	"math"
	"regexp"
	"sort"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/text"
)

// RegionType indicates whether a region is a header or footer
type RegionType int

const (
	Header RegionType = iota
	Footer
)

func (r RegionType) String() string {
	if r == Header {
		return "header"
	}
	return "footer"
}

// RunningTextConfig holds configuration for running header/footer detection
type RunningTextConfig struct {
	// HeaderRegionHeight is the height from top of page to consider as header zone
	// Default: 72 points (1 inch)
	HeaderRegionHeight float64 `mapstructure:"header_region_height" yaml:"header_region_height"`

	// FooterRegionHeight is the height from bottom of page to consider as footer zone
	// Default: 72 points (1 inch)
	FooterRegionHeight float64 `mapstructure:"footer_region_height" yaml:"footer_region_height"`

	// MinOccurrenceRatio is the minimum fraction of pages a text must appear on
	// to be considered running text (0.0 to 1.0)
	// Default: 0.5 (50% of pages)
	MinOccurrenceRatio float64 `mapstructure:"min_occurrence_ratio" yaml:"min_occurrence_ratio"`

	// PositionTolerance is the maximum Y difference for text to be considered same position
	// Default: 5 points
	PositionTolerance float64 `mapstructure:"position_tolerance" yaml:"position_tolerance"`

	// MinPages is the minimum number of pages required for detection
	// Default: 2
	MinPages int `mapstructure:"min_pages" yaml:"min_pages"`
}

// DefaultRunningTextConfig returns sensible default configuration
func DefaultRunningTextConfig() RunningTextConfig {
	return RunningTextConfig{
		HeaderRegionHeight: 72.0, // 1 inch
		FooterRegionHeight: 72.0, // 1 inch
		MinOccurrenceRatio: 0.5,  // 50% of pages
		PositionTolerance:  5.0,  // 5 points
		MinPages:           2,
	}
}

// RunningRegion is text that repeats in the header or footer zone
type RunningRegion struct {
	// Type indicates if this is a header or footer
	Type RegionType

	// Text is the text of the first occurrence
	Text string

	// Key is the comparison key, with digit runs replaced by a placeholder
	Key string

	// Offset is the distance from the page edge of the first occurrence
	Offset float64

	// Pages lists the pages the text appears on
	Pages []int
}

// RunningText is the result of running text detection
type RunningText struct {
	Regions []RunningRegion

	pageHeights map[int]float64
	config      RunningTextConfig
}

// RunningTextDetector finds headers and footers repeated across pages
type RunningTextDetector struct {
	config RunningTextConfig
}

// NewRunningTextDetector creates a new detector with default configuration
func NewRunningTextDetector() *RunningTextDetector {
	return &RunningTextDetector{
		config: DefaultRunningTextConfig(),
	}
}

// NewRunningTextDetectorWithConfig creates a detector with custom configuration
func NewRunningTextDetectorWithConfig(config RunningTextConfig) *RunningTextDetector {
	return &RunningTextDetector{
		config: config,
	}
}

// zoneCandidate is a candidate inside a header or footer zone
type zoneCandidate struct {
	text   string
	offset float64
	page   int
}

// Detect analyzes the candidates of a document to find running text
func (d *RunningTextDetector) Detect(doc *model.Document, cands []Candidate) RunningText {
	result := RunningText{
		pageHeights: pageHeights(doc, cands),
		config:      d.config,
	}
	if len(result.pageHeights) < d.config.MinPages {
		return result
	}

	headers := make(map[string][]zoneCandidate)
	footers := make(map[string][]zoneCandidate)
	for _, c := range cands {
		region, offset, ok := result.zone(c)
		if !ok {
			continue
		}
		key := normalizeForComparison(c.Text)
		zc := zoneCandidate{text: c.Text, offset: offset, page: c.Page}
		if region == Header {
			headers[key] = append(headers[key], zc)
		} else {
			footers[key] = append(footers[key], zc)
		}
	}

	total := len(result.pageHeights)
	result.Regions = append(result.Regions, d.findRepeatingPatterns(headers, total, Header)...)
	result.Regions = append(result.Regions, d.findRepeatingPatterns(footers, total, Footer)...)
	return result
}

// pageHeights returns the height of every page that has candidates. Pages
// without a media box use the bottom of their lowest candidate.
func pageHeights(doc *model.Document, cands []Candidate) map[int]float64 {
	heights := make(map[int]float64)
	for _, c := range cands {
		if c.BBox.Bottom() > heights[c.Page] {
			heights[c.Page] = c.BBox.Bottom()
		}
	}
	if doc != nil {
		for _, p := range doc.Pages {
			if _, ok := heights[p.Number]; ok && p.Height > 0 {
				heights[p.Number] = p.Height
			}
		}
	}
	return heights
}

// findRepeatingPatterns finds text that repeats across pages
func (d *RunningTextDetector) findRepeatingPatterns(groups map[string][]zoneCandidate, totalPages int, regionType RegionType) []RunningRegion {
	minOccurrences := int(float64(totalPages) * d.config.MinOccurrenceRatio)
	if minOccurrences < d.config.MinPages {
		minOccurrences = d.config.MinPages
	}

	var regions []RunningRegion
	for key, group := range groups {
		// Single letters/characters are likely fragments of larger text
		if len([]rune(key)) <= 2 {
			continue
		}

		pageSet := make(map[int]bool)
		for _, c := range group {
			pageSet[c.page] = true
		}
		if len(pageSet) < minOccurrences {
			continue
		}
		if !d.hasConsistentPosition(group) {
			continue
		}

		var pages []int
		for p := range pageSet {
			pages = append(pages, p)
		}
		sort.Ints(pages)

		first := group[0]
		for _, c := range group[1:] {
			if c.page < first.page {
				first = c
			}
		}
		regions = append(regions, RunningRegion{
			Type:   regionType,
			Text:   first.text,
			Key:    key,
			Offset: first.offset,
			Pages:  pages,
		})
	}

	sort.Slice(regions, func(i, j int) bool {
		if len(regions[i].Pages) != len(regions[j].Pages) {
			return len(regions[i].Pages) > len(regions[j].Pages)
		}
		return regions[i].Key < regions[j].Key
	})
	return regions
}

// hasConsistentPosition checks if candidates appear at consistent positions
func (d *RunningTextDetector) hasConsistentPosition(group []zoneCandidate) bool {
	if len(group) < 2 {
		return false
	}
	ref := group[0].offset
	for _, c := range group[1:] {
		if math.Abs(c.offset-ref) > d.config.PositionTolerance {
			return false
		}
	}
	return true
}

// zone returns the region a candidate lies in and its distance from that
// page edge
func (r RunningText) zone(c Candidate) (RegionType, float64, bool) {
	height, ok := r.pageHeights[c.Page]
	if !ok {
		return Header, 0, false
	}
	if top := c.BBox.Top(); top < r.config.HeaderRegionHeight {
		return Header, top, true
	}
	if fromBottom := height - c.BBox.Bottom(); fromBottom < r.config.FooterRegionHeight {
		return Footer, fromBottom, true
	}
	return Header, 0, false
}

// Contains reports whether c is an occurrence of detected running text
func (r RunningText) Contains(c Candidate) bool {
	if len(r.Regions) == 0 {
		return false
	}
	region, offset, ok := r.zone(c)
	if !ok {
		return false
	}
	key := normalizeForComparison(c.Text)
	for _, reg := range r.Regions {
		if reg.Type != region || reg.Key != key {
			continue
		}
		if math.Abs(reg.Offset-offset) <= r.config.PositionTolerance {
			return true
		}
	}
	return false
}

// Mark sets Running on every candidate that is an occurrence of running text
func (r RunningText) Mark(cands []Candidate) {
	for i := range cands {
		cands[i].Running = r.Contains(cands[i])
	}
}

// HasHeaders returns true if any headers were detected
func (r RunningText) HasHeaders() bool {
	for _, reg := range r.Regions {
		if reg.Type == Header {
			return true
		}
	}
	return false
}

// HasFooters returns true if any footers were detected
func (r RunningText) HasFooters() bool {
	for _, reg := range r.Regions {
		if reg.Type == Footer {
			return true
		}
	}
	return false
}

var digitRun = regexp.MustCompile(`\d+`)

// normalizeForComparison normalizes text for comparison by replacing numbers
// with a placeholder and case folding
func normalizeForComparison(s string) string {
	return text.Key(digitRun.ReplaceAllString(s, "#"))
}
