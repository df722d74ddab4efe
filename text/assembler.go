package text

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/tsawler/pdfoutline/font"
	"github.com/tsawler/pdfoutline/model"
)

// Glyph is one positioned run of text as reported by the PDF parser. It is
// usually a single character. Y is the top of the glyph, measured from the
// top of the page.
type Glyph struct {
	Text     string
	FontName string
	FontSize float64
	X        float64
	Y        float64
	Width    float64
	Height   float64
}

// Baseline returns the bottom of the glyph
func (g Glyph) Baseline() float64 {
	return g.Y + g.Height
}

func (g Glyph) isSpace() bool {
	return strings.TrimSpace(g.Text) == ""
}

// AssemblerConfig holds configuration for span assembly
type AssemblerConfig struct {
	// RowTolerance is the baseline difference, as a fraction of the font
	// size, within which glyphs share a row
	// Default: 0.5
	RowTolerance float64 `mapstructure:"row_tolerance" yaml:"row_tolerance"`

	// SpaceRatio is the gap, as a fraction of the font size, above which a
	// space is inserted between glyphs
	// Default: 0.15
	SpaceRatio float64 `mapstructure:"space_ratio" yaml:"space_ratio"`

	// SplitRatio is the gap, as a fraction of the font size, above which a
	// new span is started
	// Default: 3.0
	SplitRatio float64 `mapstructure:"split_ratio" yaml:"split_ratio"`

	// SizeTolerance is the size difference, in points, within which glyphs
	// count as the same size
	// Default: 0.5
	SizeTolerance float64 `mapstructure:"size_tolerance" yaml:"size_tolerance"`
}

// DefaultAssemblerConfig returns sensible default configuration
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		RowTolerance:  0.5,
		SpaceRatio:    0.15,
		SplitRatio:    3.0,
		SizeTolerance: 0.5,
	}
}

// Assembler folds glyphs into spans
type Assembler struct {
	config AssemblerConfig
}

// NewAssembler creates an assembler with default configuration
func NewAssembler() *Assembler {
	return &Assembler{config: DefaultAssemblerConfig()}
}

// NewAssemblerWithConfig creates an assembler with custom configuration.
// Non-positive fields fall back to their defaults.
func NewAssemblerWithConfig(config AssemblerConfig) *Assembler {
	def := DefaultAssemblerConfig()
	if config.RowTolerance <= 0 {
		config.RowTolerance = def.RowTolerance
	}
	if config.SpaceRatio <= 0 {
		config.SpaceRatio = def.SpaceRatio
	}
	if config.SplitRatio <= 0 {
		config.SplitRatio = def.SplitRatio
	}
	if config.SizeTolerance <= 0 {
		config.SizeTolerance = def.SizeTolerance
	}
	return &Assembler{config: config}
}

// Config returns the assembler's configuration
func (a *Assembler) Config() AssemblerConfig {
	return a.config
}

// Assemble converts the glyphs of one page into spans in reading order.
// Glyphs without a usable size or position are skipped.
func (a *Assembler) Assemble(page int, glyphs []Glyph) []model.TextSpan {
	valid := make([]Glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if g.Text == "" || g.FontSize <= 0 || isBad(g.X) || isBad(g.Y) {
			continue
		}
		if g.Height <= 0 {
			g.Height = g.FontSize
		}
		valid = append(valid, g)
	}

	var spans []model.TextSpan
	for _, row := range a.groupRows(valid) {
		spans = append(spans, a.foldRow(page, row)...)
	}
	return spans
}

func isBad(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// groupRows buckets glyphs by baseline and returns the rows top to bottom
func (a *Assembler) groupRows(glyphs []Glyph) [][]Glyph {
	type rowBucket struct {
		baseline float64
		size     float64
		glyphs   []Glyph
	}

	var buckets []*rowBucket
	for _, g := range glyphs {
		var found *rowBucket
		for _, b := range buckets {
			tol := a.config.RowTolerance * math.Min(b.size, g.FontSize)
			if math.Abs(b.baseline-g.Baseline()) <= tol {
				found = b
				break
			}
		}
		if found == nil {
			buckets = append(buckets, &rowBucket{baseline: g.Baseline(), size: g.FontSize, glyphs: []Glyph{g}})
			continue
		}
		found.glyphs = append(found.glyphs, g)
		if g.FontSize > found.size {
			found.size = g.FontSize
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].baseline < buckets[j].baseline
	})

	rows := make([][]Glyph, len(buckets))
	for i, b := range buckets {
		rows[i] = b.glyphs
	}
	return rows
}

// foldRow orders a row and merges neighbouring glyphs into spans
func (a *Assembler) foldRow(page int, row []Glyph) []model.TextSpan {
	var sb strings.Builder
	for _, g := range row {
		sb.WriteString(g.Text)
	}
	rtl := DetectDirection(sb.String()) == RTL

	sort.SliceStable(row, func(i, j int) bool {
		if rtl {
			return row[i].X > row[j].X
		}
		return row[i].X < row[j].X
	})

	var (
		spans        []model.TextSpan
		cur          *spanBuilder
		pendingSpace bool
	)
	flush := func() {
		if cur != nil {
			if s, ok := cur.build(page); ok {
				spans = append(spans, s)
			}
			cur = nil
		}
		pendingSpace = false
	}

	for _, g := range row {
		if g.isSpace() {
			pendingSpace = cur != nil
			continue
		}
		if cur == nil {
			cur = newSpanBuilder(g)
			continue
		}

		gap := cur.gapTo(g, rtl)
		switch {
		case font.BaseName(g.FontName) != cur.fontName,
			math.Abs(g.FontSize-cur.size) > a.config.SizeTolerance,
			gap > a.config.SplitRatio*cur.size:
			flush()
			cur = newSpanBuilder(g)
		default:
			if pendingSpace || gap > a.config.SpaceRatio*cur.size {
				cur.addSpace()
			}
			cur.add(g)
			pendingSpace = false
		}
	}
	flush()
	return spans
}

type spanBuilder struct {
	text     strings.Builder
	fontName string
	size     float64
	box      model.BBox
}

func newSpanBuilder(g Glyph) *spanBuilder {
	b := &spanBuilder{
		fontName: font.BaseName(g.FontName),
		size:     g.FontSize,
		box:      model.NewBBox(g.X, g.Y, g.Width, g.Height),
	}
	b.text.WriteString(g.Text)
	return b
}

func (b *spanBuilder) gapTo(g Glyph, rtl bool) float64 {
	if rtl {
		return b.box.Left() - (g.X + g.Width)
	}
	return g.X - b.box.Right()
}

func (b *spanBuilder) addSpace() {
	s := b.text.String()
	if s != "" && !unicode.IsSpace(rune(s[len(s)-1])) {
		b.text.WriteByte(' ')
	}
}

func (b *spanBuilder) add(g Glyph) {
	b.text.WriteString(g.Text)
	b.box = b.box.Union(model.NewBBox(g.X, g.Y, g.Width, g.Height))
}

func (b *spanBuilder) build(page int) (model.TextSpan, bool) {
	text := strings.TrimSpace(b.text.String())
	if text == "" {
		return model.TextSpan{}, false
	}
	return model.TextSpan{
		Text:     text,
		FontSize: b.size,
		FontName: b.fontName,
		Bold:     font.IsBoldName(b.fontName),
		Italic:   font.IsItalicName(b.fontName),
		Page:     page,
		X:        b.box.X,
		Y:        b.box.Y,
		Width:    b.box.Width,
		Height:   b.box.Height,
	}, true
}
