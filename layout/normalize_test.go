package layout

import (
	"testing"

	"github.com/tsawler/pdfoutline/model"
)

func heading(s string, level model.Level, page int, y float64) Candidate {
	c := makeCandidate(s, page, y, 16, true)
	c.Level = level
	return c
}

func outlineTexts(r model.DocumentResult) []string {
	var out []string
	for _, e := range r.Outline {
		out = append(out, e.Text)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNormalizerSortsByPosition(t *testing.T) {
	right := heading("Right Column", model.LevelH2, 1, 100)
	right.BBox.X = 320
	headings := []Candidate{
		heading("Later Page", model.LevelH1, 2, 50),
		heading("Lower", model.LevelH2, 1, 300),
		right,
		heading("Left Column", model.LevelH2, 1, 100),
	}

	result := NewNormalizer().Normalize(Title{}, headings)
	want := []string{"Left Column", "Right Column", "Lower", "Later Page"}
	if got := outlineTexts(result); !equalStrings(got, want) {
		t.Errorf("outline = %v, want %v", got, want)
	}
	if result.Outline[3].Page != 2 {
		t.Errorf("page = %d, want 2", result.Outline[3].Page)
	}
}

func TestNormalizerCollapsesConsecutiveDuplicates(t *testing.T) {
	headings := []Candidate{
		heading("Results", model.LevelH2, 1, 100),
		heading("RESULTS", model.LevelH2, 1, 200),
		heading("Results", model.LevelH1, 1, 300),
		heading("Discussion", model.LevelH2, 2, 100),
		heading("Results", model.LevelH2, 2, 200),
	}

	result := NewNormalizer().Normalize(Title{}, headings)
	want := []string{"Results", "Results", "Discussion", "Results"}
	if got := outlineTexts(result); !equalStrings(got, want) {
		t.Errorf("outline = %v, want %v", got, want)
	}
	if result.Outline[1].Level != model.LevelH1 {
		t.Errorf("second entry level = %s, want H1", result.Outline[1].Level)
	}
}

func TestNormalizerKeepsFirstRunningOccurrence(t *testing.T) {
	var headings []Candidate
	for p := 1; p <= 3; p++ {
		r := heading("Confidential Draft", model.LevelH1, p, 30)
		r.Running = true
		headings = append(headings, r, heading("Section "+string(rune('A'+p-1)), model.LevelH2, p, 200))
	}

	result := NewNormalizer().Normalize(Title{}, headings)
	want := []string{"Confidential Draft", "Section A", "Section B", "Section C"}
	if got := outlineTexts(result); !equalStrings(got, want) {
		t.Errorf("outline = %v, want %v", got, want)
	}
}

func TestNormalizerKeepsNumberedRunningHeadings(t *testing.T) {
	var headings []Candidate
	for p := 1; p <= 3; p++ {
		r := heading("Part "+string(rune('0'+p)), model.LevelH1, p, 40)
		r.Running = true
		headings = append(headings, r)
	}

	result := NewNormalizer().Normalize(Title{}, headings)
	want := []string{"Part 1", "Part 2", "Part 3"}
	if got := outlineTexts(result); !equalStrings(got, want) {
		t.Errorf("outline = %v, want %v", got, want)
	}
}

func TestNormalizerDropsEmptyAndStopwordEntries(t *testing.T) {
	headings := []Candidate{
		heading("The", model.LevelH1, 1, 100),
		heading("   ", model.LevelH1, 1, 150),
		heading("Of And", model.LevelH2, 1, 200),
		heading("  Scope   of   Work ", model.LevelH2, 1, 250),
	}

	result := NewNormalizer().Normalize(Title{}, headings)
	want := []string{"Scope of Work"}
	if got := outlineTexts(result); !equalStrings(got, want) {
		t.Errorf("outline = %v, want %v", got, want)
	}
}

func TestNormalizerIgnoresNonHeadings(t *testing.T) {
	headings := []Candidate{
		heading("Annual Report", model.LevelTitle, 1, 50),
		heading("Plain Paragraph", model.LevelBody, 1, 100),
		heading("Rejected Line", model.LevelNone, 1, 150),
		heading("Overview", model.LevelH3, 1, 200),
	}

	result := NewNormalizer().Normalize(Title{Text: "  Annual   Report "}, headings)
	if result.Title != "Annual Report" {
		t.Errorf("Title = %q", result.Title)
	}
	if got := outlineTexts(result); !equalStrings(got, []string{"Overview"}) {
		t.Errorf("outline = %v, want [Overview]", got)
	}
}

func TestNormalizerEmptyResult(t *testing.T) {
	result := NewNormalizer().Normalize(Title{}, nil)
	if result.Title != "" {
		t.Errorf("Title = %q, want empty", result.Title)
	}
	if result.Outline == nil || len(result.Outline) != 0 {
		t.Errorf("Outline = %#v, want empty non-nil slice", result.Outline)
	}
}
