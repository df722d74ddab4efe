package pdfoutline

import (
	"github.com/tsawler/pdfoutline/font"
	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/reader"
)

// Config aggregates the configuration of every pipeline stage
type Config struct {
	Reader      reader.Config            `mapstructure:"reader" yaml:"reader"`
	Font        font.Config              `mapstructure:"font" yaml:"font"`
	Candidate   layout.CandidateConfig   `mapstructure:"candidate" yaml:"candidate"`
	Heading     layout.HeadingConfig     `mapstructure:"heading" yaml:"heading"`
	Title       layout.TitleConfig       `mapstructure:"title" yaml:"title"`
	RunningText layout.RunningTextConfig `mapstructure:"running_text" yaml:"running_text"`
}

// DefaultConfig returns the default configuration of every stage
func DefaultConfig() Config {
	return Config{
		Reader:      reader.DefaultConfig(),
		Font:        font.DefaultConfig(),
		Candidate:   layout.DefaultCandidateConfig(),
		Heading:     layout.DefaultHeadingConfig(),
		Title:       layout.DefaultTitleConfig(),
		RunningText: layout.DefaultRunningTextConfig(),
	}
}

// Analysis holds the result of running the pipeline over a document along
// with the intermediate values, for diagnostics
type Analysis struct {
	// Result is the final outline
	Result model.DocumentResult

	// Profile is the document font profile
	Profile font.Profile

	// Candidates are every line candidate after classification, in reading
	// order. Title lines carry LevelTitle.
	Candidates []layout.Candidate

	// Title is the extracted title before cleaning
	Title layout.Title

	// RunningText is the detected running headers and footers
	RunningText layout.RunningText
}

// Analyze runs the outline pipeline over doc. It has no side effects and
// returns the same analysis for the same document and configuration.
//
// Example:
//
//	analysis := pdfoutline.Analyze(doc, pdfoutline.DefaultConfig())
//	for _, e := range analysis.Result.Outline {
//	    fmt.Printf("%s %s (p.%d)\n", e.Level, e.Text, e.Page)
//	}
func Analyze(doc *model.Document, config Config) *Analysis {
	prof := font.NewProfilerWithConfig(config.Font).Profile(doc.Spans())

	cands := layout.NewCandidateExtractorWithConfig(config.Candidate).Extract(doc, prof)

	running := layout.NewRunningTextDetectorWithConfig(config.RunningText).Detect(doc, cands)
	running.Mark(cands)

	title := layout.NewTitleExtractorWithConfig(config.Title).Extract(cands, prof)
	inTitle := make(map[int]bool, len(title.Indices))
	for _, idx := range title.Indices {
		inTitle[idx] = true
	}
	for i := range cands {
		if inTitle[cands[i].Index] {
			cands[i].Level = model.LevelTitle
		}
	}

	classified := layout.NewHeadingClassifierWithConfig(config.Heading, nil).Classify(cands, prof)
	result := layout.NewNormalizer().Normalize(title, layout.Headings(classified))

	return &Analysis{
		Result:      result,
		Profile:     prof,
		Candidates:  classified,
		Title:       title,
		RunningText: running,
	}
}

// warnings returns the document-level warnings of an analysis
func (a *Analysis) warnings(doc *model.Document) []Warning {
	if doc.IsEmpty() {
		return []Warning{{Message: warnNoText}}
	}
	if a.Profile.Degenerate {
		return []Warning{{Message: warnDegenerate}}
	}
	return nil
}
