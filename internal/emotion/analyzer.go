package emotion

import (
	"errors"
	"fmt"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
)

const (
	Schema = "resolution-v1"
	Engine = "vader-rules-v1"
)

var ErrScoring = errors.New("polarity scoring failed")

// Scorer produces a polarity score for a text span.
type Scorer interface {
	Score(text string) (domain.PolarityScore, error)
}

type Result struct {
	Score domain.PolarityScore `json:"score"`
	Resolution
}

// Analyzer runs the scorer and the resolver for one text.
type Analyzer struct {
	scorer   Scorer
	resolver *Resolver
}

func NewAnalyzer(scorer Scorer, resolver *Resolver) *Analyzer {
	return &Analyzer{scorer: scorer, resolver: resolver}
}

func (a *Analyzer) Resolver() *Resolver {
	return a.resolver
}

// Analyze always returns a usable result. When scoring fails the result is
// built from a neutral score and the scoring error is returned with it.
func (a *Analyzer) Analyze(text string, conv *domain.ConversationContext) (Result, error) {
	score, err := a.score(text)
	return Result{Score: score, Resolution: a.resolver.Resolve(text, score, conv)}, err
}

func neutralScore() domain.PolarityScore {
	return domain.PolarityScore{Neutral: 1}
}

func (a *Analyzer) score(text string) (score domain.PolarityScore, err error) {
	if a.scorer == nil {
		return neutralScore(), nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			score = neutralScore()
			err = fmt.Errorf("%w: panic: %v", ErrScoring, rec)
		}
	}()
	s, err := a.scorer.Score(text)
	if err != nil {
		return neutralScore(), fmt.Errorf("%w: %v", ErrScoring, err)
	}
	return s, nil
}
