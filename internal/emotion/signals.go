package emotion

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// wordPattern matches any of words as whole words.
func wordPattern(words []string) (*regexp.Regexp, error) {
	return alternation(words, `\b(?:`, `)\b`)
}

// prefixPattern matches any of words at the start of a word, so inflected
// forms ("hates", "hateful") match while "whatever" does not.
func prefixPattern(words []string) (*regexp.Regexp, error) {
	return alternation(words, `\b(?:`, `)`)
}

func alternation(words []string, open, close string) (*regexp.Regexp, error) {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = normalize(w)
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	if len(quoted) == 0 {
		return nil, fmt.Errorf("no words")
	}
	return regexp.Compile(open + strings.Join(quoted, "|") + close)
}

type compiledRule struct {
	re    *regexp.Regexp
	label string
}

// PatternMatcher tests whole-input regexes in order.
type PatternMatcher struct {
	rules []compiledRule
}

func NewPatternMatcher(rules []PatternRule) (PatternMatcher, error) {
	out := PatternMatcher{rules: make([]compiledRule, 0, len(rules))}
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return PatternMatcher{}, fmt.Errorf("pattern %d: %w", i, err)
		}
		out.rules = append(out.rules, compiledRule{re: re, label: r.Label})
	}
	return out, nil
}

func (m PatternMatcher) Match(text string) (string, bool) {
	t := normalize(text)
	for _, r := range m.rules {
		if r.re.MatchString(t) {
			return r.label, true
		}
	}
	return "", false
}

// KeywordMatcher returns the first category, in declared order, with a
// trigger word starting any word of the text.
type KeywordMatcher struct {
	rules []compiledRule
}

func NewKeywordMatcher(rules []KeywordRule) (KeywordMatcher, error) {
	out := KeywordMatcher{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		re, err := prefixPattern(r.Words)
		if err != nil {
			return KeywordMatcher{}, fmt.Errorf("keywords %q: %w", r.Label, err)
		}
		out.rules = append(out.rules, compiledRule{re: re, label: r.Label})
	}
	return out, nil
}

func (m KeywordMatcher) Match(text string) (string, bool) {
	t := normalize(text)
	for _, r := range m.rules {
		if r.re.MatchString(t) {
			return r.label, true
		}
	}
	return "", false
}

// PunctuationSignal is the strongest punctuation run found in a text.
type PunctuationSignal struct {
	Label  string          `json:"label"`
	Weight float64         `json:"weight"`
	Kind   PunctuationKind `json:"kind"`
	Run    string          `json:"run"`
}

var punctuationRun = regexp.MustCompile(`[?!]+|[.…]+`)

type PunctuationAnalyzer struct {
	rules map[PunctuationKind]PunctuationRule
}

func NewPunctuationAnalyzer(rules []PunctuationRule) PunctuationAnalyzer {
	out := PunctuationAnalyzer{rules: make(map[PunctuationKind]PunctuationRule, len(rules))}
	for _, r := range rules {
		out.rules[r.Kind] = r
	}
	return out
}

// classifyRun maps a punctuation run to its kind and whether it counts as
// the repeated form.
func classifyRun(run string) (PunctuationKind, bool) {
	n := utf8.RuneCountInString(run)
	switch {
	case strings.ContainsAny(run, "?!"):
		hasQ := strings.Contains(run, "?")
		hasE := strings.Contains(run, "!")
		if hasQ && hasE {
			return PunctInterrobang, n > 2
		}
		if hasQ {
			return PunctQuestion, n > 1
		}
		return PunctExclamation, n > 1
	case run == ".":
		return PunctPeriod, false
	default:
		// each "…" stands for three dots
		dots := strings.Count(run, ".") + 3*strings.Count(run, "…")
		return PunctEllipsis, dots > 3
	}
}

// Analyze scans every punctuation run. The highest weight wins and ties
// keep the earlier run.
func (a PunctuationAnalyzer) Analyze(text string) (PunctuationSignal, bool) {
	var best PunctuationSignal
	found := false
	for _, run := range punctuationRun.FindAllString(text, -1) {
		kind, multiple := classifyRun(run)
		rule, ok := a.rules[kind]
		if !ok {
			continue
		}
		sig := rule.Single
		if multiple {
			sig = rule.Multiple
		}
		if !found || sig.Weight > best.Weight {
			best = PunctuationSignal{Label: sig.Label, Weight: sig.Weight, Kind: kind, Run: run}
			found = true
		}
	}
	return best, found
}

type compiledModifier struct {
	re     *regexp.Regexp
	weight float64
}

// IntensityModifier multiplies the weight of every modifier occurrence.
type IntensityModifier struct {
	mods []compiledModifier
}

func NewIntensityModifier(mods []Modifier) (IntensityModifier, error) {
	out := IntensityModifier{mods: make([]compiledModifier, 0, len(mods))}
	for _, m := range mods {
		re, err := wordPattern([]string{m.Word})
		if err != nil {
			return IntensityModifier{}, fmt.Errorf("modifier %q: %w", m.Word, err)
		}
		out.mods = append(out.mods, compiledModifier{re: re, weight: m.Weight})
	}
	return out, nil
}

func (m IntensityModifier) Multiplier(text string) float64 {
	t := normalize(text)
	mult := 1.0
	for _, mod := range m.mods {
		for range mod.re.FindAllStringIndex(t, -1) {
			mult *= mod.weight
		}
	}
	return mult
}

type phraseGroup struct {
	name string
	res  []*regexp.Regexp
}

// PhraseMatcher reports the context phrase groups present in a text.
type PhraseMatcher struct {
	groups []phraseGroup
}

func NewPhraseMatcher(groups []PhraseGroup) (PhraseMatcher, error) {
	out := PhraseMatcher{groups: make([]phraseGroup, 0, len(groups))}
	for _, g := range groups {
		pg := phraseGroup{name: g.Name}
		for _, p := range g.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return PhraseMatcher{}, fmt.Errorf("phrase group %q: %w", g.Name, err)
			}
			pg.res = append(pg.res, re)
		}
		out.groups = append(out.groups, pg)
	}
	return out, nil
}

func (m PhraseMatcher) Match(text string) []string {
	t := normalize(text)
	var out []string
	for _, g := range m.groups {
		for _, re := range g.res {
			if re.MatchString(t) {
				out = append(out, g.name)
				break
			}
		}
	}
	return out
}

// Extractors bundles the compiled signal extractors for one table set.
type Extractors struct {
	Patterns    PatternMatcher
	Keywords    KeywordMatcher
	Punctuation PunctuationAnalyzer
	Intensity   IntensityModifier
	Phrases     PhraseMatcher
}

func NewExtractors(t Tables) (*Extractors, error) {
	patterns, err := NewPatternMatcher(t.Patterns)
	if err != nil {
		return nil, err
	}
	keywords, err := NewKeywordMatcher(t.Keywords)
	if err != nil {
		return nil, err
	}
	intensity, err := NewIntensityModifier(t.Modifiers)
	if err != nil {
		return nil, err
	}
	phrases, err := NewPhraseMatcher(t.Phrases)
	if err != nil {
		return nil, err
	}
	return &Extractors{
		Patterns:    patterns,
		Keywords:    keywords,
		Punctuation: NewPunctuationAnalyzer(t.Punctuation),
		Intensity:   intensity,
		Phrases:     phrases,
	}, nil
}
