package emotion

import (
	"math"
	"testing"
	"time"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
)

func newTestResolver(t *testing.T, cfg Config) *Resolver {
	t.Helper()
	r, err := NewResolver(DefaultTables(), cfg)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r
}

func score(c float64) domain.PolarityScore {
	return domain.PolarityScore{Compound: c}
}

func contextWith(current string) *domain.ConversationContext {
	return &domain.ConversationContext{
		CurrentEmotion: current,
		History: []domain.ConversationTurn{
			{Input: "earlier", Emotion: current, Timestamp: time.Unix(0, 0)},
		},
	}
}

func TestResolveCases(t *testing.T) {
	r := newTestResolver(t, DefaultConfig())
	cases := []struct {
		name   string
		text   string
		score  float64
		want   string
		source string
	}{
		{"greeting", "hi", 0, "neutral", SourcePattern},
		{"elongated greeting", "hiii!!!", 0, "excited", SourcePattern},
		{"bare what", "what??", 0, "confused", SourcePattern},
		{"rhetorical", "who cares?", 0, "rhetorical", SourcePattern},
		{"wh question", "why is the sky blue?", 0, "curious", SourcePattern},
		{"keyword wins over score", "I hate Mondays", 0.4, "furious", SourceKeyword},
		{"first keyword category wins", "I love it but it is terrible", -0.2, "ecstatic", SourceKeyword},
		{"inflected keyword hates", "She hates me", 0.6, "furious", SourceKeyword},
		{"inflected keyword hated", "I hated every minute", 0.6, "furious", SourceKeyword},
		{"inflected keyword hateful", "that was hateful", 0.6, "furious", SourceKeyword},
		{"keyword inside a word", "the shower is cold", 0, "neutral", SourceNearest},
		{"wh pattern runs before keywords", "why do you hate me?", -0.6, "curious", SourcePattern},
		{"nearest positive", "this is nice", 0.66, "happy", SourceNearest},
		{"weak punctuation does not override", "I am good!", 0.66, "happy", SourceNearest},
		{"strong punctuation overrides", "I am happy??", 0.66, "confused", SourcePunctuation},
		{"interrobang", "you did it?!", 0.1, "surprised", SourcePunctuation},
		{"grief redirects to sad", "my grandma passed away", -0.86, "grief", SourceNearest},
		{"surprise redirects to complex", "I can't believe it", 0.3, "surprised", SourceNearest},
		{"empty input", "", 0, "neutral", SourceNearest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Resolve(tc.text, score(tc.score), nil)
			if got.Label != tc.want || got.Source != tc.source {
				t.Fatalf("Resolve(%q)=%s via %s, want %s via %s", tc.text, got.Label, got.Source, tc.want, tc.source)
			}
		})
	}
}

func TestResolveIntensityMultiplier(t *testing.T) {
	r := newTestResolver(t, DefaultConfig())
	got := r.Resolve("very very good", score(0.5), nil)
	if got.Multiplier != 2.25 {
		t.Fatalf("multiplier=%v, want 2.25", got.Multiplier)
	}
	if got.AdjustedCompound != 1.125 {
		t.Fatalf("adjusted=%v, want 1.125", got.AdjustedCompound)
	}
	if got.Bucket != BucketPositive || got.Label != "ecstatic" {
		t.Fatalf("got %s in %s, want ecstatic in positive", got.Label, got.Bucket)
	}
}

func TestResolveDampenerDropsBucket(t *testing.T) {
	r := newTestResolver(t, DefaultConfig())
	got := r.Resolve("slightly good", score(0.6), nil)
	if got.Bucket != BucketNeutral {
		t.Fatalf("bucket=%s, want neutral for adjusted %.2f", got.Bucket, got.AdjustedCompound)
	}
	if got.Label != "calm" {
		t.Fatalf("emotion=%s, want calm", got.Label)
	}
}

func TestResolveThresholdIsInclusive(t *testing.T) {
	r := newTestResolver(t, DefaultConfig())
	if got := r.Resolve("fine", score(0.5), nil); got.Bucket != BucketPositive {
		t.Fatalf("bucket=%s at +0.5, want positive", got.Bucket)
	}
	if got := r.Resolve("fine", score(-0.5), nil); got.Bucket != BucketNegative {
		t.Fatalf("bucket=%s at -0.5, want negative", got.Bucket)
	}
}

func TestResolveTransition(t *testing.T) {
	r := newTestResolver(t, DefaultConfig())
	got := r.Resolve("this is nice", score(0.6), contextWith("scared"))
	if got.Label != "cautiously_optimistic" || got.Source != SourceTransition {
		t.Fatalf("got %s via %s, want cautiously_optimistic via transition", got.Label, got.Source)
	}

	got = r.Resolve("this is nice", score(0.6), contextWith("happy"))
	if got.Source == SourceTransition {
		t.Fatalf("happy has no positive rule, got transition to %s", got.Label)
	}
}

func TestResolveTransitionNeedsHistory(t *testing.T) {
	r := newTestResolver(t, DefaultConfig())
	conv := &domain.ConversationContext{CurrentEmotion: "scared"}
	got := r.Resolve("this is nice", score(0.6), conv)
	if got.Source == SourceTransition {
		t.Fatalf("transition applied without history: %s", got.Label)
	}
}

func TestResolveKeywordSkipsTransition(t *testing.T) {
	r := newTestResolver(t, DefaultConfig())
	got := r.Resolve("I am scared", score(-0.4), contextWith("happy"))
	if got.Label != "scared" || got.Source != SourceKeyword {
		t.Fatalf("got %s via %s, want scared via keyword", got.Label, got.Source)
	}
}

func TestResolveBasicStages(t *testing.T) {
	r := newTestResolver(t, Config{Stages: StagesBasic})
	got := r.Resolve("hiii!!!", score(0), contextWith("neutral"))
	if got.Label != "neutral" || got.Source != SourceNearest {
		t.Fatalf("got %s via %s, want neutral via nearest", got.Label, got.Source)
	}
	got = r.Resolve("very very good", score(0.5), nil)
	if got.Multiplier != 1 {
		t.Fatalf("multiplier=%v, want 1 without the intensity stage", got.Multiplier)
	}
	got = r.Resolve("I love it", score(0), nil)
	if got.Label != "ecstatic" {
		t.Fatalf("emotion=%s, want ecstatic", got.Label)
	}
}

func TestResolveAlwaysReturnsCatalogLabel(t *testing.T) {
	r := newTestResolver(t, DefaultConfig())
	inputs := []string{"", "   ", "\x00\x01", "…", "?!?!?!", "....", "ÀÉÎ õ", "😀😀", "very very very very very very bad", "a.b.c", "\n\t"}
	scores := []float64{0, 1, -1, 0.49, -0.49, math.NaN(), math.Inf(1), math.Inf(-1), 42}
	convs := []*domain.ConversationContext{nil, contextWith("scared"), contextWith("sad"), contextWith("unknown")}
	for _, in := range inputs {
		for _, s := range scores {
			for _, c := range convs {
				got := r.Resolve(in, score(s), c)
				if _, ok := r.Lookup(got.Label); !ok {
					t.Fatalf("Resolve(%q, %v) returned %q outside the catalog", in, s, got.Label)
				}
				if math.IsNaN(got.AdjustedCompound) {
					t.Fatalf("Resolve(%q, %v) adjusted compound is NaN", in, s)
				}
			}
		}
	}
}

func TestNearestTieKeepsFirstDeclared(t *testing.T) {
	tables := DefaultTables()
	tables.Catalog = append([]Entry{
		entry("first", BucketNeutral, CategoryNeutral, 0.9, 0, 0),
		entry("second", BucketNeutral, CategoryNeutral, 0.9, 0, 0),
	}, tables.Catalog...)
	r, err := NewResolver(tables, DefaultConfig())
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	e, ok := r.nearest(BucketNeutral, 2.0)
	if !ok || e.Label != "first" {
		t.Fatalf("nearest=%s, want first", e.Label)
	}
}
