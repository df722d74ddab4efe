package pattern

import "testing"

func TestMatcherMatch(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		text      string
		wantOK    bool
		wantKind  Kind
		wantDepth int
		wantNum   string
	}{
		{"2.3 Results", true, KindNumbered, 2, "2.3"},
		{"1. Introduction", true, KindNumbered, 1, "1"},
		{"2.3.1 Sampling", true, KindNumbered, 3, "2.3.1"},
		{"Chapter 3 Methods", true, KindChapter, 1, "3"},
		{"SECTION iv", true, KindChapter, 1, "iv"},
		{"Appendix A", true, KindAppendix, 1, "A"},
		{"IV. Results", true, KindRoman, 1, "IV"},
		{"Introduction", true, KindKeyword, 0, ""},
		{"  References:  ", true, KindKeyword, 0, ""},
		{"• item", true, KindList, 0, ""},
		{"a) first point", true, KindList, 0, ""},
		{"2024 Annual Report", false, KindNone, 0, ""},
		{"3.14159 is pi", false, KindNone, 0, ""},
		{"Introduction to the system", false, KindNone, 0, ""},
		{"", false, KindNone, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := m.Match(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", got.Kind, tt.wantKind)
			}
			if got.Depth != tt.wantDepth {
				t.Errorf("Depth = %d, want %d", got.Depth, tt.wantDepth)
			}
			if got.Number != tt.wantNum {
				t.Errorf("Number = %q, want %q", got.Number, tt.wantNum)
			}
		})
	}
}

func TestMatcherPriority(t *testing.T) {
	// "1. Introduction" satisfies both numbered and keyword patterns;
	// numbered is checked first.
	got, ok := NewMatcher().Match("1. Introduction")
	if !ok || got.PatternID != "numbered-section" || got.Priority != 0 {
		t.Errorf("Match = %+v, %v; want numbered-section at priority 0", got, ok)
	}
	if !got.HasDepth() {
		t.Error("numbered match should carry a depth")
	}
}

func TestKindWeights(t *testing.T) {
	if KindNumbered.Weight() <= KindKeyword.Weight() {
		t.Error("numbered should weigh more than keyword")
	}
	if KindKeyword.Weight() <= KindList.Weight() {
		t.Error("keyword should weigh more than list")
	}
	if KindNone.Weight() != 0 {
		t.Error("none should carry no weight")
	}
}

func TestNewPattern(t *testing.T) {
	p, err := NewPattern("step", KindNumbered, `^Step\s+(\d+)`, 2)
	if err != nil {
		t.Fatalf("NewPattern: %v", err)
	}
	m := NewMatcherWithPatterns([]Pattern{p})

	got, ok := m.Match("Step 4 Install")
	if !ok || got.Depth != 2 || got.Number != "4" {
		t.Errorf("Match = %+v, %v", got, ok)
	}
	if _, ok := m.Match("Introduction"); ok {
		t.Error("custom matcher should not use default patterns")
	}

	if _, err := NewPattern("bad", KindNone, `(`, 0); err == nil {
		t.Error("expected error for invalid expression")
	}
}

func TestIsNoise(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"12", true},
		{"Page 3 of 10", true},
		{"© 2024 Acme Corp", true},
		{"Copyright Acme", true},
		{"www.example.com", true},
		{"https://example.com/docs", true},
		{"Version 2.1", true},
		{"contact@example.com", true},
		{"1.1", true},
		{"Introduction ........ 5", true},
		{"   ", true},
		{"Introduction", false},
		{"2.3 Results", false},
		{"Page Layout", false},
	}
	for _, tt := range tests {
		if got := IsNoise(tt.text); got != tt.want {
			t.Errorf("IsNoise(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsTitleNoise(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Version history", true},
		{"Page Layout", true},
		{"42", true},
		{"Annual Report", false},
	}
	for _, tt := range tests {
		if got := IsTitleNoise(tt.text); got != tt.want {
			t.Errorf("IsTitleNoise(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestLooksLikeProse(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"The cat and the dog saw the bird", true},
		{"Apples and pears and plums", true},
		{"This sentence ends with a period and has many words.", true},
		{"Short ending.", false},
		{"Results and Discussion", false},
		{"Overview of the system", false},
	}
	for _, tt := range tests {
		if got := LooksLikeProse(tt.text); got != tt.want {
			t.Errorf("LooksLikeProse(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestStartsLowercase(t *testing.T) {
	if !StartsLowercase("continued from above") {
		t.Error("expected lowercase start")
	}
	if StartsLowercase("1.2 scope") {
		t.Error("numbered text should not count as lowercase start")
	}
	if StartsLowercase("Scope") {
		t.Error("capitalised text is not a lowercase start")
	}
}
