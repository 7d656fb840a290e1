package emotion

import (
	"math"
	"slices"
	"testing"
)

func TestPunctuationAnalyzer(t *testing.T) {
	a := NewPunctuationAnalyzer(DefaultTables().Punctuation)
	cases := []struct {
		text   string
		label  string
		weight float64
		kind   PunctuationKind
	}{
		{"really?", "curious", 1.1, PunctQuestion},
		{"really???", "confused", 1.5, PunctQuestion},
		{"yes!", "excited", 1.1, PunctExclamation},
		{"yes!!", "excited", 1.4, PunctExclamation},
		{"what?!", "surprised", 1.6, PunctInterrobang},
		{"what?!?!", "shocked", 1.8, PunctInterrobang},
		{"well...", "contemplative", 1.1, PunctEllipsis},
		{"well…", "contemplative", 1.1, PunctEllipsis},
		{"well......", "contemplative", 1.3, PunctEllipsis},
		{"ok.", "neutral", 0.5, PunctPeriod},
		{"ok. sure? fine!!", "excited", 1.4, PunctExclamation},
	}
	for _, tc := range cases {
		got, ok := a.Analyze(tc.text)
		if !ok {
			t.Fatalf("Analyze(%q) found nothing", tc.text)
		}
		if got.Label != tc.label || got.Weight != tc.weight || got.Kind != tc.kind {
			t.Fatalf("Analyze(%q)=%+v, want %s/%v/%s", tc.text, got, tc.label, tc.weight, tc.kind)
		}
	}
	if _, ok := a.Analyze("no punctuation here"); ok {
		t.Fatalf("expected no signal without punctuation")
	}
}

func TestPunctuationTieKeepsFirstRun(t *testing.T) {
	a := NewPunctuationAnalyzer(DefaultTables().Punctuation)
	got, _ := a.Analyze("sure! why?")
	if got.Kind != PunctExclamation {
		t.Fatalf("kind=%s, want the first run of equal weight", got.Kind)
	}
}

func TestIntensityModifier(t *testing.T) {
	m, err := NewIntensityModifier(DefaultTables().Modifiers)
	if err != nil {
		t.Fatalf("NewIntensityModifier: %v", err)
	}
	cases := map[string]float64{
		"good":                 1,
		"very good":            1.5,
		"very very good":       2.25,
		"Really quite good":    1.3 * 1.2,
		"a bit tired":          0.6,
		"everyone is tired":    1,
		"kind of extremely ok": 1.8 * 0.7,
	}
	for text, want := range cases {
		if got := m.Multiplier(text); math.Abs(got-want) > 1e-9 {
			t.Fatalf("Multiplier(%q)=%v, want %v", text, got, want)
		}
	}
}

func TestPhraseMatcherDeclaredOrder(t *testing.T) {
	m, err := NewPhraseMatcher(DefaultTables().Phrases)
	if err != nil {
		t.Fatalf("NewPhraseMatcher: %v", err)
	}
	got := m.Match("Thanks, but I can't believe we broke up")
	want := []string{"heartbreak", "gratitude", "surprise"}
	if !slices.Equal(got, want) {
		t.Fatalf("groups=%v, want %v", got, want)
	}
	if got := m.Match("nothing notable"); len(got) != 0 {
		t.Fatalf("groups=%v, want none", got)
	}
}

func TestKeywordMatcherOrder(t *testing.T) {
	m, err := NewKeywordMatcher(DefaultTables().Keywords)
	if err != nil {
		t.Fatalf("NewKeywordMatcher: %v", err)
	}
	if got, ok := m.Match("I wonder why I feel so calm"); !ok || got != "calm" {
		t.Fatalf("Match=%q, want calm (declared before thoughtful and curious)", got)
	}
	if _, ok := m.Match("somehow"); ok {
		t.Fatalf("keyword in the middle of a word must not match")
	}
	if _, ok := m.Match("whatever you say"); !ok {
		t.Fatalf("keyword prefix of a word must match")
	}
	for _, text := range []string{"she hates it", "HATEFUL words", "I hated that"} {
		if got, ok := m.Match(text); !ok || got != "furious" {
			t.Fatalf("Match(%q)=%q, want furious", text, got)
		}
	}
}
