package emotion

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
)

// Stage selects one optional step of the resolution pipeline.
type Stage uint8

const (
	StagePattern Stage = 1 << iota
	StageKeyword
	StageIntensity
	StageContextPhrase
	StagePunctuation
	StageTransition
)

const (
	// StagesBasic is keyword lookup followed by nearest match.
	StagesBasic = StageKeyword
	StagesFull  = StagePattern | StageKeyword | StageIntensity | StageContextPhrase | StagePunctuation | StageTransition
)

// Source values name the step that produced the final label.
const (
	SourcePattern     = "pattern"
	SourceKeyword     = "keyword"
	SourceNearest     = "nearest"
	SourcePunctuation = "punctuation"
	SourceTransition  = "transition"
	SourceFallback    = "fallback"
)

type Config struct {
	// Zero means StagesFull.
	Stages              Stage
	BucketThreshold     float64
	PunctuationOverride float64
}

func DefaultConfig() Config {
	return Config{
		Stages:              StagesFull,
		BucketThreshold:     0.5,
		PunctuationOverride: 1.2,
	}
}

type Resolution struct {
	Label            string             `json:"label"`
	Source           string             `json:"source"`
	Bucket           Bucket             `json:"bucket"`
	Category         Category           `json:"category"`
	RawCompound      float64            `json:"raw_compound"`
	Multiplier       float64            `json:"multiplier"`
	AdjustedCompound float64            `json:"adjusted_compound"`
	Punctuation      *PunctuationSignal `json:"punctuation,omitempty"`
	ContextGroups    []string           `json:"context_groups,omitempty"`
	Target           Target             `json:"target"`
}

type Resolver struct {
	cfg       Config
	tables    Tables
	ex        *Extractors
	catalog   map[string]Entry
	byBucket  map[Bucket][]Entry
	sadGroups []string
	cpxGroups []string
}

func NewResolver(t Tables, cfg Config) (*Resolver, error) {
	def := DefaultConfig()
	if cfg.Stages == 0 {
		cfg.Stages = def.Stages
	}
	if cfg.BucketThreshold <= 0 {
		cfg.BucketThreshold = def.BucketThreshold
	}
	if cfg.PunctuationOverride <= 0 {
		cfg.PunctuationOverride = def.PunctuationOverride
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid emotion tables: %w", err)
	}
	ex, err := NewExtractors(t)
	if err != nil {
		return nil, err
	}
	r := &Resolver{
		cfg:       cfg,
		tables:    t,
		ex:        ex,
		catalog:   make(map[string]Entry, len(t.Catalog)),
		byBucket:  make(map[Bucket][]Entry, len(buckets)),
		sadGroups: t.Redirects.Sad,
		cpxGroups: t.Redirects.Complex,
	}
	for _, e := range t.Catalog {
		r.catalog[e.Label] = e
		if !e.RuleOnly {
			r.byBucket[e.Bucket] = append(r.byBucket[e.Bucket], e)
		}
	}
	return r, nil
}

func (r *Resolver) enabled(s Stage) bool {
	return r.cfg.Stages&s != 0
}

// Resolve maps text and its polarity score to one catalog label. conv may
// be nil.
func (r *Resolver) Resolve(text string, score domain.PolarityScore, conv *domain.ConversationContext) Resolution {
	t := normalize(text)
	raw := finite(score.Compound)
	res := Resolution{RawCompound: raw, Multiplier: 1, AdjustedCompound: raw}

	if r.enabled(StagePattern) {
		if label, ok := r.ex.Patterns.Match(t); ok {
			return r.finish(res, label, SourcePattern)
		}
	}
	if r.enabled(StageKeyword) {
		if label, ok := r.ex.Keywords.Match(t); ok {
			return r.finish(res, label, SourceKeyword)
		}
	}

	if r.enabled(StageIntensity) {
		res.Multiplier = r.ex.Intensity.Multiplier(t)
	}
	res.AdjustedCompound = finite(raw * res.Multiplier)
	if r.enabled(StageContextPhrase) {
		res.ContextGroups = r.ex.Phrases.Match(t)
	}
	res.Bucket = r.bucketFor(res.AdjustedCompound, res.ContextGroups)

	label, source := Neutral, SourceFallback
	if e, ok := r.nearest(res.Bucket, res.AdjustedCompound); ok {
		label, source = e.Label, SourceNearest
	}

	if r.enabled(StagePunctuation) {
		if sig, ok := r.ex.Punctuation.Analyze(t); ok {
			res.Punctuation = &sig
			if sig.Weight > r.cfg.PunctuationOverride {
				label, source = sig.Label, SourcePunctuation
			}
		}
	}

	if r.enabled(StageTransition) {
		if next, ok := r.transition(conv, label); ok {
			label, source = next, SourceTransition
		}
	}
	return r.finish(res, label, source)
}

func (r *Resolver) finish(res Resolution, label, source string) Resolution {
	e, ok := r.catalog[label]
	if !ok {
		e = r.catalog[Neutral]
		source = SourceFallback
	}
	res.Label = e.Label
	res.Source = source
	res.Category = e.Category
	res.Target = e.Target
	if res.Bucket == "" {
		res.Bucket = e.Bucket
	}
	return res
}

func (r *Resolver) bucketFor(adjusted float64, groups []string) Bucket {
	switch {
	case adjusted >= r.cfg.BucketThreshold:
		return BucketPositive
	case adjusted <= -r.cfg.BucketThreshold:
		if anyIn(groups, r.sadGroups) {
			return BucketSad
		}
		return BucketNegative
	default:
		if anyIn(groups, r.cpxGroups) {
			return BucketComplex
		}
		return BucketNeutral
	}
}

// nearest picks the entry whose target compound is closest; ties keep the
// first declared entry.
func (r *Resolver) nearest(b Bucket, adjusted float64) (Entry, bool) {
	entries := r.byBucket[b]
	if len(entries) == 0 {
		return Entry{}, false
	}
	best := entries[0]
	bestDist := math.Abs(best.Target.Compound - adjusted)
	for _, e := range entries[1:] {
		d := math.Abs(e.Target.Compound - adjusted)
		if d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, true
}

func (r *Resolver) transition(conv *domain.ConversationContext, label string) (string, bool) {
	if conv == nil || len(conv.History) == 0 {
		return "", false
	}
	rules, ok := r.tables.Transitions[normalize(conv.CurrentEmotion)]
	if !ok {
		return "", false
	}
	next, ok := rules[r.CategoryOf(label)]
	if !ok || next == "" {
		return "", false
	}
	if _, known := r.catalog[next]; !known {
		return "", false
	}
	return next, true
}

// Catalog returns the catalog entries in declared order.
func (r *Resolver) Catalog() []Entry {
	return slices.Clone(r.tables.Catalog)
}

func (r *Resolver) Labels() []string {
	labels := make([]string, 0, len(r.catalog))
	for k := range r.catalog {
		labels = append(labels, k)
	}
	slices.Sort(labels)
	return labels
}

func (r *Resolver) Lookup(label string) (Entry, bool) {
	e, ok := r.catalog[normalize(label)]
	return e, ok
}

func (r *Resolver) CategoryOf(label string) Category {
	if e, ok := r.catalog[label]; ok {
		return e.Category
	}
	return CategoryNeutral
}

func anyIn(groups, want []string) bool {
	for _, g := range groups {
		if slices.Contains(want, g) {
			return true
		}
	}
	return false
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// Compact is a short human-readable summary used in logs.
func (r Resolution) Compact() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s via %s", r.Label, r.Source)
	if r.Source != SourcePattern && r.Source != SourceKeyword {
		fmt.Fprintf(&b, " (bucket=%s adjusted=%.3f)", r.Bucket, r.AdjustedCompound)
	}
	return b.String()
}
