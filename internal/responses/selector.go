package responses

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// lastResort is returned when neither the label nor the fallback has replies.
const lastResort = "I understand how you're feeling."

// Options bounds reply length in runes. A non-positive MaxLength means no
// upper bound.
type Options struct {
	MinLength int
	MaxLength int
}

func DefaultOptions() Options {
	return Options{MinLength: 20, MaxLength: 150}
}

type Selector struct {
	mu    sync.Mutex
	table Table
	rng   *rand.Rand
	opts  Options
}

// New builds a selector. A nil src is seeded from the clock.
func New(table Table, src rand.Source, opts Options) *Selector {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>1|1)
	}
	if table == nil {
		table = DefaultTable()
	}
	return &Selector{table: table, rng: rand.New(src), opts: opts}
}

// SeededSource returns a deterministic source for seed, or nil for a zero
// seed so that New falls back to the clock.
func SeededSource(seed uint64) rand.Source {
	if seed == 0 {
		return nil
	}
	return rand.NewPCG(seed, seed)
}

func (s *Selector) Has(label string) bool {
	return len(s.table[normalize(label)]) > 0
}

// Select picks a reply for label uniformly at random. Unknown labels use
// the neutral replies.
func (s *Selector) Select(label string) string {
	candidates := s.table[normalize(label)]
	if len(candidates) == 0 {
		candidates = s.table[Fallback]
	}
	if len(candidates) == 0 {
		return lastResort
	}
	if bounded := s.withinBounds(candidates); len(bounded) > 0 {
		candidates = bounded
	}
	s.mu.Lock()
	i := s.rng.IntN(len(candidates))
	s.mu.Unlock()
	return candidates[i]
}

func (s *Selector) withinBounds(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		n := utf8.RuneCountInString(c)
		if n < s.opts.MinLength {
			continue
		}
		if s.opts.MaxLength > 0 && n > s.opts.MaxLength {
			continue
		}
		out = append(out, c)
	}
	return out
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
