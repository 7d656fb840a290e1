package emotion

import (
	"fmt"
	"regexp"
	"strings"
)

// Neutral is the fallback label; every catalog must contain it.
const Neutral = "neutral"

type Bucket string

const (
	BucketPositive Bucket = "positive"
	BucketNegative Bucket = "negative"
	BucketSad      Bucket = "sad"
	BucketComplex  Bucket = "complex"
	BucketNeutral  Bucket = "neutral"
)

var buckets = []Bucket{BucketPositive, BucketNegative, BucketSad, BucketComplex, BucketNeutral}

// Category is the coarse grouping transition rules are keyed by.
type Category string

const (
	CategoryThreat   Category = "threat"
	CategoryPositive Category = "positive"
	CategoryNegative Category = "negative"
	CategoryQuestion Category = "question"
	CategoryNeutral  Category = "neutral"
)

func validCategory(c Category) bool {
	switch c {
	case CategoryThreat, CategoryPositive, CategoryNegative, CategoryQuestion, CategoryNeutral:
		return true
	}
	return false
}

type Target struct {
	Compound float64 `yaml:"compound" json:"compound"`
	Positive float64 `yaml:"positive" json:"positive"`
	Negative float64 `yaml:"negative" json:"negative"`
}

// Entry is one catalog label. RuleOnly entries never take part in
// nearest-match selection; they are reached through rules only.
type Entry struct {
	Label    string   `yaml:"label" json:"label"`
	Bucket   Bucket   `yaml:"bucket" json:"bucket"`
	Category Category `yaml:"category" json:"category"`
	Target   Target   `yaml:"target" json:"target"`
	RuleOnly bool     `yaml:"rule_only,omitempty" json:"rule_only,omitempty"`
}

type PatternRule struct {
	Pattern string `yaml:"pattern"`
	Label   string `yaml:"label"`
}

type KeywordRule struct {
	Label string   `yaml:"label"`
	Words []string `yaml:"words"`
}

type Signal struct {
	Label  string  `yaml:"label" json:"label"`
	Weight float64 `yaml:"weight" json:"weight"`
}

type PunctuationKind string

const (
	PunctQuestion    PunctuationKind = "question"
	PunctExclamation PunctuationKind = "exclamation"
	PunctInterrobang PunctuationKind = "interrobang"
	PunctEllipsis    PunctuationKind = "ellipsis"
	PunctPeriod      PunctuationKind = "period"
)

type PunctuationRule struct {
	Kind     PunctuationKind `yaml:"kind"`
	Single   Signal          `yaml:"single"`
	Multiple Signal          `yaml:"multiple"`
}

type Modifier struct {
	Word   string  `yaml:"word"`
	Weight float64 `yaml:"weight"`
}

type PhraseGroup struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// Redirects names the phrase groups that move the negative bucket to sad
// and the neutral bucket to complex.
type Redirects struct {
	Sad     []string `yaml:"sad"`
	Complex []string `yaml:"complex"`
}

// Tables is the static data the resolver runs on.
type Tables struct {
	Catalog     []Entry                        `yaml:"catalog"`
	Patterns    []PatternRule                  `yaml:"patterns"`
	Keywords    []KeywordRule                  `yaml:"keywords"`
	Punctuation []PunctuationRule              `yaml:"punctuation"`
	Modifiers   []Modifier                     `yaml:"modifiers"`
	Phrases     []PhraseGroup                  `yaml:"phrases"`
	Redirects   Redirects                      `yaml:"redirects"`
	Transitions map[string]map[Category]string `yaml:"transitions"`
}

func entry(label string, b Bucket, c Category, compound, pos, neg float64) Entry {
	return Entry{Label: label, Bucket: b, Category: c, Target: Target{Compound: compound, Positive: pos, Negative: neg}}
}

func ruleOnly(e Entry) Entry {
	e.RuleOnly = true
	return e
}

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() Tables {
	return Tables{
		Catalog: []Entry{
			entry("ecstatic", BucketPositive, CategoryPositive, 0.95, 0.80, 0.00),
			entry("excited", BucketPositive, CategoryPositive, 0.85, 0.70, 0.00),
			entry("inspired", BucketPositive, CategoryPositive, 0.80, 0.65, 0.00),
			entry("proud", BucketPositive, CategoryPositive, 0.76, 0.60, 0.00),
			entry("grateful", BucketPositive, CategoryPositive, 0.72, 0.58, 0.00),
			entry("happy", BucketPositive, CategoryPositive, 0.66, 0.55, 0.00),
			entry("confident", BucketPositive, CategoryPositive, 0.62, 0.50, 0.02),
			entry("optimistic", BucketPositive, CategoryPositive, 0.58, 0.48, 0.03),
			entry("peaceful", BucketPositive, CategoryPositive, 0.54, 0.45, 0.00),
			entry("pleased", BucketPositive, CategoryPositive, 0.50, 0.42, 0.02),

			entry("furious", BucketNegative, CategoryNegative, -0.95, 0.00, 0.80),
			entry("angry", BucketNegative, CategoryNegative, -0.85, 0.00, 0.70),
			entry("overwhelmed", BucketNegative, CategoryNegative, -0.78, 0.02, 0.62),
			entry("frustrated", BucketNegative, CategoryNegative, -0.72, 0.03, 0.60),
			entry("stressed", BucketNegative, CategoryNegative, -0.66, 0.03, 0.56),
			entry("anxious", BucketNegative, CategoryThreat, -0.62, 0.04, 0.52),
			entry("worried", BucketNegative, CategoryThreat, -0.58, 0.05, 0.50),
			entry("irritated", BucketNegative, CategoryNegative, -0.54, 0.05, 0.46),
			entry("annoyed", BucketNegative, CategoryNegative, -0.50, 0.06, 0.42),

			entry("devastated", BucketSad, CategoryNegative, -0.95, 0.00, 0.82),
			entry("heartbroken", BucketSad, CategoryNegative, -0.90, 0.00, 0.76),
			entry("grief", BucketSad, CategoryNegative, -0.85, 0.00, 0.72),
			entry("sad", BucketSad, CategoryNegative, -0.75, 0.02, 0.64),
			entry("lonely", BucketSad, CategoryNegative, -0.70, 0.02, 0.60),
			entry("homesick", BucketSad, CategoryNegative, -0.65, 0.04, 0.55),
			entry("melancholic", BucketSad, CategoryNegative, -0.60, 0.04, 0.52),
			entry("disappointed", BucketSad, CategoryNegative, -0.55, 0.05, 0.48),
			entry("nostalgic", BucketSad, CategoryNegative, -0.50, 0.12, 0.40),

			entry("shocked", BucketComplex, CategoryNeutral, -0.40, 0.05, 0.35),
			entry("confused", BucketComplex, CategoryQuestion, -0.30, 0.05, 0.28),
			entry("puzzled", BucketComplex, CategoryQuestion, -0.20, 0.06, 0.20),
			entry("contemplative", BucketComplex, CategoryNeutral, -0.10, 0.08, 0.12),
			entry("reflective", BucketComplex, CategoryNeutral, 0.00, 0.10, 0.10),
			entry("thoughtful", BucketComplex, CategoryNeutral, 0.10, 0.14, 0.06),
			entry("curious", BucketComplex, CategoryQuestion, 0.20, 0.20, 0.04),
			entry("surprised", BucketComplex, CategoryNeutral, 0.30, 0.26, 0.04),
			entry("amazed", BucketComplex, CategoryPositive, 0.40, 0.34, 0.02),

			entry("patient", BucketNeutral, CategoryNeutral, -0.35, 0.02, 0.25),
			entry("observant", BucketNeutral, CategoryNeutral, -0.15, 0.04, 0.12),
			entry(Neutral, BucketNeutral, CategoryNeutral, 0.00, 0.00, 0.00),
			entry("balanced", BucketNeutral, CategoryNeutral, 0.08, 0.08, 0.02),
			entry("mindful", BucketNeutral, CategoryNeutral, 0.15, 0.12, 0.02),
			entry("attentive", BucketNeutral, CategoryQuestion, 0.20, 0.15, 0.02),
			entry("calm", BucketNeutral, CategoryNeutral, 0.28, 0.22, 0.00),
			entry("focused", BucketNeutral, CategoryNeutral, 0.36, 0.28, 0.00),
			entry("determined", BucketNeutral, CategoryNeutral, 0.45, 0.35, 0.02),

			ruleOnly(entry("scared", BucketNegative, CategoryThreat, -0.70, 0.00, 0.60)),
			ruleOnly(entry("alarmed", BucketNegative, CategoryThreat, -0.65, 0.00, 0.55)),
			ruleOnly(entry("threatened", BucketNegative, CategoryThreat, -0.65, 0.00, 0.55)),
			ruleOnly(entry("defensive", BucketNegative, CategoryThreat, -0.45, 0.02, 0.40)),
			ruleOnly(entry("cautious", BucketNeutral, CategoryThreat, -0.20, 0.05, 0.18)),
			ruleOnly(entry("fearful", BucketNegative, CategoryThreat, -0.60, 0.00, 0.52)),
			ruleOnly(entry("wary", BucketNeutral, CategoryThreat, -0.20, 0.04, 0.18)),
			ruleOnly(entry("alert", BucketNeutral, CategoryThreat, -0.10, 0.05, 0.10)),
			ruleOnly(entry("concerned", BucketNegative, CategoryNegative, -0.30, 0.04, 0.26)),
			ruleOnly(entry("sympathetic", BucketSad, CategoryNegative, -0.30, 0.08, 0.24)),
			ruleOnly(entry("hesitant", BucketComplex, CategoryQuestion, -0.10, 0.05, 0.10)),
			ruleOnly(entry("rhetorical", BucketComplex, CategoryQuestion, 0.00, 0.05, 0.05)),
			ruleOnly(entry("interested", BucketComplex, CategoryQuestion, 0.15, 0.15, 0.02)),
			ruleOnly(entry("eager_to_help", BucketComplex, CategoryQuestion, 0.30, 0.25, 0.00)),
			ruleOnly(entry("willing_to_help", BucketComplex, CategoryQuestion, 0.20, 0.18, 0.02)),
			ruleOnly(entry("cautiously_optimistic", BucketPositive, CategoryPositive, 0.35, 0.30, 0.08)),
			ruleOnly(entry("content", BucketPositive, CategoryPositive, 0.40, 0.32, 0.00)),
			ruleOnly(entry("hopeful", BucketPositive, CategoryPositive, 0.45, 0.36, 0.04)),
		},
		Patterns: []PatternRule{
			{Pattern: `^(hi|hello|hey|howdy|greetings|good (morning|afternoon|evening))[.!]?$`, Label: Neutral},
			{Pattern: `^(hi{2,}|hey{2,}|hel{2,}o+|hello{2,})!*$|^(hi+|hey+|hello+)!{2,}$`, Label: "excited"},
			{Pattern: `^(huh|what|eh|wut)\s*[?!]*$`, Label: "confused"},
			{Pattern: `^(who cares|why bother|what'?s the point|isn'?t it obvious|does it even matter|as if)\s*\?*$`, Label: "rhetorical"},
			{Pattern: `^(what|why|how|who|where|when|which)\b[^?]*\?$`, Label: "curious"},
		},
		Keywords: []KeywordRule{
			{Label: "ecstatic", Words: []string{"love", "amazing", "wonderful", "fantastic"}},
			{Label: "furious", Words: []string{"hate", "terrible", "awful", "horrible"}},
			{Label: "devastated", Words: []string{"sad", "unhappy", "miserable", "depressed"}},
			{Label: "scared", Words: []string{"scared", "afraid", "terrified", "frightened"}},
			{Label: "calm", Words: []string{"calm", "peaceful", "relaxed", "serene"}},
			{Label: "thoughtful", Words: []string{"think", "wonder", "consider", "reflect"}},
			{Label: "curious", Words: []string{"why", "how", "what", "when", "where"}},
		},
		Punctuation: []PunctuationRule{
			{Kind: PunctQuestion, Single: Signal{Label: "curious", Weight: 1.1}, Multiple: Signal{Label: "confused", Weight: 1.5}},
			{Kind: PunctExclamation, Single: Signal{Label: "excited", Weight: 1.1}, Multiple: Signal{Label: "excited", Weight: 1.4}},
			{Kind: PunctInterrobang, Single: Signal{Label: "surprised", Weight: 1.6}, Multiple: Signal{Label: "shocked", Weight: 1.8}},
			{Kind: PunctEllipsis, Single: Signal{Label: "contemplative", Weight: 1.1}, Multiple: Signal{Label: "contemplative", Weight: 1.3}},
			{Kind: PunctPeriod, Single: Signal{Label: Neutral, Weight: 0.5}, Multiple: Signal{Label: Neutral, Weight: 0.5}},
		},
		Modifiers: []Modifier{
			{Word: "extremely", Weight: 1.8},
			{Word: "incredibly", Weight: 1.7},
			{Word: "absolutely", Weight: 1.6},
			{Word: "very", Weight: 1.5},
			{Word: "super", Weight: 1.5},
			{Word: "completely", Weight: 1.5},
			{Word: "totally", Weight: 1.4},
			{Word: "really", Weight: 1.3},
			{Word: "quite", Weight: 1.2},
			{Word: "somewhat", Weight: 0.7},
			{Word: "kind of", Weight: 0.7},
			{Word: "sort of", Weight: 0.7},
			{Word: "a bit", Weight: 0.6},
			{Word: "a little", Weight: 0.6},
			{Word: "slightly", Weight: 0.5},
			{Word: "barely", Weight: 0.4},
			{Word: "hardly", Weight: 0.4},
		},
		Phrases: []PhraseGroup{
			{Name: "grief", Patterns: []string{`\b(passed away|died|funeral|mourning|rest in peace)\b`, `\blost my (mom|mother|dad|father|grandma|grandpa|friend|dog|cat)\b`}},
			{Name: "heartbreak", Patterns: []string{`\b(broke up|break ?up|heartbroken|dumped|divorce|cheated on)\b`}},
			{Name: "anxiety", Patterns: []string{`\b(nervous|panic|worried about|can'?t stop thinking)\b`}},
			{Name: "excitement", Patterns: []string{`\b(can'?t wait|looking forward|so excited)\b`}},
			{Name: "frustration", Patterns: []string{`\b(fed up|sick of|had enough|keeps? happening)\b`}},
			{Name: "gratitude", Patterns: []string{`\b(thank you|thanks|grateful|appreciate)\b`}},
			{Name: "pride", Patterns: []string{`\b(proud of|i did it|accomplished|nailed it)\b`}},
			{Name: "nostalgia", Patterns: []string{`\b(remember when|back in the day|used to|miss the old)\b`}},
			{Name: "hope", Patterns: []string{`\b(i hope|hopefully|fingers crossed|i wish)\b`}},
			{Name: "disappointment", Patterns: []string{`\b(let (me )?down|expected more|didn'?t work out|fell through)\b`}},
			{Name: "surprise", Patterns: []string{`\b(can'?t believe|no way|out of nowhere|didn'?t expect|unexpected)\b`}},
			{Name: "confusion", Patterns: []string{`\b(don'?t understand|makes no sense|confusing|not sure|no idea)\b`}},
		},
		Redirects: Redirects{
			Sad:     []string{"grief", "heartbreak", "disappointment", "nostalgia"},
			Complex: []string{"surprise", "confusion"},
		},
		Transitions: map[string]map[Category]string{
			"scared": {
				CategoryPositive: "cautiously_optimistic",
				CategoryNegative: "fearful",
				CategoryNeutral:  "wary",
				CategoryQuestion: "hesitant",
			},
			"happy": {
				CategoryThreat:   "concerned",
				CategoryNegative: "sympathetic",
				CategoryNeutral:  "content",
				CategoryQuestion: "eager_to_help",
			},
			"sad": {
				CategoryThreat:   "anxious",
				CategoryPositive: "hopeful",
				CategoryNeutral:  "reflective",
				CategoryQuestion: "willing_to_help",
			},
			Neutral: {
				CategoryThreat:   "alert",
				CategoryPositive: "pleased",
				CategoryNegative: "concerned",
				CategoryQuestion: "attentive",
			},
		},
	}
}

// Overlay returns t with every non-empty section of o replacing the
// matching section of t.
func (t Tables) Overlay(o Tables) Tables {
	out := t
	if len(o.Catalog) > 0 {
		out.Catalog = o.Catalog
	}
	if len(o.Patterns) > 0 {
		out.Patterns = o.Patterns
	}
	if len(o.Keywords) > 0 {
		out.Keywords = o.Keywords
	}
	if len(o.Punctuation) > 0 {
		out.Punctuation = o.Punctuation
	}
	if len(o.Modifiers) > 0 {
		out.Modifiers = o.Modifiers
	}
	if len(o.Phrases) > 0 {
		out.Phrases = o.Phrases
	}
	if len(o.Redirects.Sad) > 0 || len(o.Redirects.Complex) > 0 {
		out.Redirects = o.Redirects
	}
	if len(o.Transitions) > 0 {
		out.Transitions = o.Transitions
	}
	return out
}

// Validate checks that every label a rule can emit is a catalog member.
func (t Tables) Validate() error {
	known := make(map[string]struct{}, len(t.Catalog))
	nearest := make(map[Bucket]int, len(buckets))
	for _, e := range t.Catalog {
		label := strings.TrimSpace(e.Label)
		if label == "" {
			return fmt.Errorf("catalog entry with empty label")
		}
		if _, dup := known[label]; dup {
			return fmt.Errorf("duplicate catalog label %q", label)
		}
		if !validBucket(e.Bucket) {
			return fmt.Errorf("label %q: unknown bucket %q", label, e.Bucket)
		}
		if !validCategory(e.Category) {
			return fmt.Errorf("label %q: unknown category %q", label, e.Category)
		}
		known[label] = struct{}{}
		if !e.RuleOnly {
			nearest[e.Bucket]++
		}
	}
	if _, ok := known[Neutral]; !ok {
		return fmt.Errorf("catalog must contain %q", Neutral)
	}
	for _, b := range buckets {
		if nearest[b] == 0 {
			return fmt.Errorf("bucket %q has no nearest-match entries", b)
		}
	}

	mustKnow := func(where, label string) error {
		if _, ok := known[label]; !ok {
			return fmt.Errorf("%s: label %q is not in the catalog", where, label)
		}
		return nil
	}
	for i, p := range t.Patterns {
		if _, err := regexp.Compile(p.Pattern); err != nil {
			return fmt.Errorf("pattern %d: %w", i, err)
		}
		if err := mustKnow("pattern", p.Label); err != nil {
			return err
		}
	}
	for _, k := range t.Keywords {
		if len(k.Words) == 0 {
			return fmt.Errorf("keyword rule %q has no words", k.Label)
		}
		if err := mustKnow("keyword", k.Label); err != nil {
			return err
		}
	}
	for _, p := range t.Punctuation {
		if !validPunctuationKind(p.Kind) {
			return fmt.Errorf("unknown punctuation kind %q", p.Kind)
		}
		if err := mustKnow("punctuation", p.Single.Label); err != nil {
			return err
		}
		if err := mustKnow("punctuation", p.Multiple.Label); err != nil {
			return err
		}
	}
	for _, m := range t.Modifiers {
		if strings.TrimSpace(m.Word) == "" || m.Weight <= 0 {
			return fmt.Errorf("invalid modifier %q weight=%v", m.Word, m.Weight)
		}
	}
	groups := make(map[string]struct{}, len(t.Phrases))
	for _, g := range t.Phrases {
		for _, p := range g.Patterns {
			if _, err := regexp.Compile(p); err != nil {
				return fmt.Errorf("phrase group %q: %w", g.Name, err)
			}
		}
		groups[g.Name] = struct{}{}
	}
	for _, name := range append(append([]string{}, t.Redirects.Sad...), t.Redirects.Complex...) {
		if _, ok := groups[name]; !ok {
			return fmt.Errorf("redirect names unknown phrase group %q", name)
		}
	}
	for prev, rules := range t.Transitions {
		if err := mustKnow("transition source", prev); err != nil {
			return err
		}
		for cat, next := range rules {
			if !validCategory(cat) {
				return fmt.Errorf("transition %q: unknown category %q", prev, cat)
			}
			if err := mustKnow("transition target", next); err != nil {
				return err
			}
		}
	}
	return nil
}

func validBucket(b Bucket) bool {
	for _, x := range buckets {
		if x == b {
			return true
		}
	}
	return false
}

func validPunctuationKind(k PunctuationKind) bool {
	switch k {
	case PunctQuestion, PunctExclamation, PunctInterrobang, PunctEllipsis, PunctPeriod:
		return true
	}
	return false
}
