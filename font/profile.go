package font

import (
	"math"
	"sort"

	"github.com/tsawler/pdfoutline/model"
)

// Config holds configuration for font profiling
type Config struct {
	// MinSpans is the minimum number of non-empty spans needed for stable
	// statistics. Smaller documents get a degenerate profile.
	// Default: 3
	MinSpans int `mapstructure:"min_spans" yaml:"min_spans"`

	// FallbackBodySize is the body size used by degenerate profiles
	// Default: 12.0
	FallbackBodySize float64 `mapstructure:"fallback_body_size" yaml:"fallback_body_size"`

	// SizePrecision is the bucket width, in points, sizes are rounded to
	// Default: 0.1
	SizePrecision float64 `mapstructure:"size_precision" yaml:"size_precision"`

	// TierEpsilon is the fraction above the body size a size must exceed to
	// count as a heading tier
	// Default: 0.05
	TierEpsilon float64 `mapstructure:"tier_epsilon" yaml:"tier_epsilon"`

	// TierTolerance collapses heading sizes closer than this many points into
	// one tier
	// Default: 0.5
	TierTolerance float64 `mapstructure:"tier_tolerance" yaml:"tier_tolerance"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		MinSpans:         3,
		FallbackBodySize: 12.0,
		SizePrecision:    0.1,
		TierEpsilon:      0.05,
		TierTolerance:    0.5,
	}
}

// SizeStat aggregates the spans set at one rounded font size
type SizeStat struct {
	Size      float64
	Spans     int
	Chars     int
	BoldChars int
}

// Tier is a band of heading font sizes
type Tier struct {
	Max   float64 // largest size in the tier
	Min   float64 // smallest size in the tier
	Chars int     // characters set in this tier
}

// Profile is the document-wide font baseline
type Profile struct {
	// BodySize is the character-weighted mode of span sizes
	BodySize float64

	// Sizes is the size histogram, largest size first
	Sizes []SizeStat

	// Tiers are the heading size bands above the body size, largest first
	Tiers []Tier

	// BoldRatio is the fraction of spans set in a bold face
	BoldRatio float64

	SpanCount int
	CharCount int

	// Degenerate is set when the document was too small to profile
	Degenerate bool

	epsilon   float64
	tolerance float64
	precision float64
}

// Profiler computes font profiles
type Profiler struct {
	config Config
}

// NewProfiler creates a profiler with default configuration
func NewProfiler() *Profiler {
	return &Profiler{config: DefaultConfig()}
}

// NewProfilerWithConfig creates a profiler with custom configuration.
// Zero fields fall back to their defaults.
func NewProfilerWithConfig(config Config) *Profiler {
	def := DefaultConfig()
	if config.MinSpans <= 0 {
		config.MinSpans = def.MinSpans
	}
	if config.FallbackBodySize <= 0 {
		config.FallbackBodySize = def.FallbackBodySize
	}
	if config.SizePrecision <= 0 {
		config.SizePrecision = def.SizePrecision
	}
	if config.TierEpsilon < 0 {
		config.TierEpsilon = def.TierEpsilon
	}
	if config.TierTolerance < 0 {
		config.TierTolerance = def.TierTolerance
	}
	return &Profiler{config: config}
}

// Config returns the profiler's configuration
func (p *Profiler) Config() Config {
	return p.config
}

// Profile computes the font profile of a document's spans
func (p *Profiler) Profile(spans []model.TextSpan) Profile {
	prof := Profile{
		epsilon:   p.config.TierEpsilon,
		tolerance: p.config.TierTolerance,
		precision: p.config.SizePrecision,
	}

	stats := make(map[int64]*SizeStat)
	boldSpans := 0
	for _, s := range spans {
		chars := s.CharCount()
		if chars == 0 || s.FontSize <= 0 {
			continue
		}
		prof.SpanCount++
		prof.CharCount += chars

		size := RoundSize(s.FontSize, p.config.SizePrecision)
		key := int64(math.Round(size / p.config.SizePrecision))
		st, ok := stats[key]
		if !ok {
			st = &SizeStat{Size: size}
			stats[key] = st
		}
		st.Spans++
		st.Chars += chars
		if s.Bold {
			st.BoldChars += chars
			boldSpans++
		}
	}

	for _, st := range stats {
		prof.Sizes = append(prof.Sizes, *st)
	}
	sort.Slice(prof.Sizes, func(i, j int) bool {
		return prof.Sizes[i].Size > prof.Sizes[j].Size
	})

	if prof.SpanCount > 0 {
		prof.BoldRatio = float64(boldSpans) / float64(prof.SpanCount)
	}

	if prof.SpanCount < p.config.MinSpans {
		prof.BodySize = p.config.FallbackBodySize
		prof.Degenerate = true
		return prof
	}

	prof.BodySize = weightedMode(prof.Sizes)
	prof.Tiers = p.buildTiers(prof.Sizes, prof.BodySize)
	return prof
}

// RoundSize rounds size to the nearest multiple of precision. Precisions
// that are unit fractions (0.1, 0.5) use division to keep results exact.
func RoundSize(size, precision float64) float64 {
	if precision <= 0 {
		return size
	}
	inv := 1 / precision
	if r := math.Round(inv); math.Abs(inv-r) < 1e-9 {
		return math.Round(size*r) / r
	}
	return math.Round(size/precision) * precision
}

// weightedMode returns the size carrying the most characters. Ties go to the
// smaller size. sizes must be sorted largest first.
func weightedMode(sizes []SizeStat) float64 {
	best := sizes[0]
	for _, st := range sizes[1:] {
		if st.Chars >= best.Chars {
			best = st
		}
	}
	return best.Size
}

// buildTiers groups sizes above the body threshold into bands
func (p *Profiler) buildTiers(sizes []SizeStat, body float64) []Tier {
	threshold := body * (1 + p.config.TierEpsilon)

	var tiers []Tier
	for _, st := range sizes {
		if st.Size <= threshold {
			continue
		}
		if n := len(tiers); n > 0 && tiers[n-1].Min-st.Size <= p.config.TierTolerance {
			tiers[n-1].Min = st.Size
			tiers[n-1].Chars += st.Chars
			continue
		}
		tiers = append(tiers, Tier{Max: st.Size, Min: st.Size, Chars: st.Chars})
	}
	return tiers
}

// HeadingTiers returns the representative (largest) size of every tier,
// largest first
func (p Profile) HeadingTiers() []float64 {
	out := make([]float64, len(p.Tiers))
	for i, t := range p.Tiers {
		out[i] = t.Max
	}
	return out
}

// Ratio returns size relative to the body size
func (p Profile) Ratio(size float64) float64 {
	if p.BodySize <= 0 {
		return 0
	}
	return size / p.BodySize
}

// IsBodySize reports whether size is within epsilon of the body size or
// smaller
func (p Profile) IsBodySize(size float64) bool {
	return size <= p.BodySize*(1+p.epsilon)
}

// TierIndex returns the index of the tier size belongs to, or -1 when size
// is body-sized. Sizes between tiers map to the nearest one.
func (p Profile) TierIndex(size float64) int {
	if p.IsBodySize(size) || len(p.Tiers) == 0 {
		return -1
	}
	size = RoundSize(size, p.precision)

	best, bestDist := -1, math.MaxFloat64
	for i, t := range p.Tiers {
		if size >= t.Min-p.tolerance/2 && size <= t.Max+p.tolerance/2 {
			return i
		}
		dist := math.Min(math.Abs(size-t.Min), math.Abs(size-t.Max))
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// Stat returns the histogram entry for a size, if present
func (p Profile) Stat(size float64) (SizeStat, bool) {
	for _, st := range p.Sizes {
		if math.Abs(st.Size-size) < p.precision/2 {
			return st, true
		}
	}
	return SizeStat{}, false
}
