package memory

import (
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
)

const (
	DefaultMemoryLength = 5
	InitialEmotion      = "neutral"
)

// Tracker keeps a bounded window of recent turns for one session. It is not
// safe for concurrent use.
type Tracker struct {
	memoryLength   int
	history        []domain.ConversationTurn
	emotions       []string
	currentEmotion string
	currentTopic   string
	now            func() time.Time
}

func NewTracker(memoryLength int) *Tracker {
	if memoryLength <= 0 {
		memoryLength = DefaultMemoryLength
	}
	return &Tracker{
		memoryLength:   memoryLength,
		currentEmotion: InitialEmotion,
		now:            time.Now,
	}
}

func (t *Tracker) MemoryLength() int {
	return t.memoryLength
}

// Update records a completed turn. The topic becomes the first non-empty
// entity, else a capitalised word from the input, else stays unchanged.
func (t *Tracker) Update(input string, score domain.PolarityScore, emotion string, entities ...string) {
	t.history = append(t.history, domain.ConversationTurn{
		Input:     input,
		Emotion:   emotion,
		Score:     score,
		Timestamp: t.now(),
	})
	if over := len(t.history) - t.memoryLength; over > 0 {
		t.history = slices.Delete(t.history, 0, over)
	}
	t.emotions = append(t.emotions, emotion)
	if over := len(t.emotions) - t.memoryLength; over > 0 {
		t.emotions = slices.Delete(t.emotions, 0, over)
	}
	t.currentEmotion = emotion

	for _, e := range entities {
		if e = strings.TrimSpace(e); e != "" {
			t.currentTopic = e
			return
		}
	}
	if e := ExtractEntity(input); e != "" {
		t.currentTopic = e
	}
}

// Summary returns a copy of the tracked state.
func (t *Tracker) Summary() domain.ConversationContext {
	return domain.ConversationContext{
		CurrentEmotion: t.currentEmotion,
		CurrentTopic:   t.currentTopic,
		History:        slices.Clone(t.history),
		EmotionHistory: slices.Clone(t.emotions),
	}
}

// ExtractEntity returns the first capitalised word that does not start a
// sentence, or "".
func ExtractEntity(input string) string {
	sentenceStart := true
	for _, field := range strings.Fields(input) {
		word := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		start := sentenceStart
		sentenceStart = strings.ContainsAny(field[len(field)-1:], ".!?")
		if word == "" || start || word == "I" || strings.HasPrefix(word, "I'") {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(word); unicode.IsUpper(r) {
			return word
		}
	}
	return ""
}
