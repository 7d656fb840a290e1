package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/jonreiter/govader"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
)

var ErrEmptyLexicon = errors.New("lexicon has no entries")

// Scorer wraps govader's SentimentIntensityAnalyzer. It is safe for
// concurrent use.
type Scorer struct {
	mu  sync.Mutex
	sia *govader.SentimentIntensityAnalyzer
}

func NewScorer() *Scorer {
	return &Scorer{sia: govader.NewSentimentIntensityAnalyzer()}
}

func (s *Scorer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sia.Lexicon)
}

// LoadFile merges a VADER-format lexicon file into the analyzer's lexicon.
// Lines are "token<TAB>mean[<TAB>...]"; blank lines and lines starting
// with # are skipped. Loaded entries replace built-in ratings.
func (s *Scorer) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()
	if err := s.Load(f); err != nil {
		return fmt.Errorf("lexicon %s: %w", path, err)
	}
	return nil
}

func (s *Scorer) Load(r io.Reader) error {
	entries := make(map[string]float64)
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return fmt.Errorf("line %d: want token<TAB>mean", lineNo)
		}
		token := strings.ToLower(strings.TrimSpace(fields[0]))
		mean, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil || token == "" {
			return fmt.Errorf("line %d: invalid entry %q", lineNo, line)
		}
		if mean < -4 || mean > 4 {
			return fmt.Errorf("line %d: valence %v outside [-4, 4]", lineNo, mean)
		}
		entries[token] = mean
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return ErrEmptyLexicon
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for token, mean := range entries {
		s.sia.Lexicon[token] = mean
	}
	return nil
}

// Score rates text with VADER. Input without any scorable token is fully
// neutral.
func (s *Scorer) Score(text string) (domain.PolarityScore, error) {
	if strings.TrimSpace(text) == "" {
		return domain.PolarityScore{Neutral: 1}, nil
	}
	s.mu.Lock()
	scores := s.sia.PolarityScores(text)
	s.mu.Unlock()

	out := domain.PolarityScore{
		Compound: scores.Compound,
		Positive: scores.Positive,
		Negative: scores.Negative,
		Neutral:  scores.Neutral,
	}
	if out.Positive+out.Negative+out.Neutral == 0 {
		out.Neutral = 1
	}
	return out, nil
}
