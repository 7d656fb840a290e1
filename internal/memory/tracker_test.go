package memory

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
)

func TestNewTrackerDefaults(t *testing.T) {
	tr := NewTracker(0)
	assert.Equal(t, DefaultMemoryLength, tr.MemoryLength())

	got := tr.Summary()
	assert.Equal(t, "neutral", got.CurrentEmotion)
	assert.Empty(t, got.CurrentTopic)
	assert.Empty(t, got.History)
}

func TestUpdateEvictsOldestTurns(t *testing.T) {
	tr := NewTracker(3)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	step := 0
	tr.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}
	for i := 1; i <= 5; i++ {
		tr.Update(fmt.Sprintf("turn %d", i), domain.PolarityScore{Compound: float64(i) / 10}, fmt.Sprintf("e%d", i))
	}

	got := tr.Summary()
	require.Len(t, got.History, 3)
	assert.Equal(t, "turn 3", got.History[0].Input)
	assert.Equal(t, "turn 5", got.History[2].Input)
	assert.Equal(t, []string{"e3", "e4", "e5"}, got.EmotionHistory)
	assert.Equal(t, "e5", got.CurrentEmotion)
	assert.True(t, got.History[0].Timestamp.Before(got.History[2].Timestamp))
}

func TestSummaryIsACopy(t *testing.T) {
	tr := NewTracker(2)
	tr.Update("hello", domain.PolarityScore{}, "neutral")
	s := tr.Summary()
	s.History[0].Input = "changed"
	s.EmotionHistory[0] = "changed"
	again := tr.Summary()
	assert.Equal(t, "hello", again.History[0].Input)
	assert.Equal(t, "neutral", again.EmotionHistory[0])
}

func TestTopicSelection(t *testing.T) {
	tr := NewTracker(5)

	tr.Update("I went to Paris last week", domain.PolarityScore{}, "happy")
	assert.Equal(t, "Paris", tr.Summary().CurrentTopic)

	tr.Update("it rained a lot", domain.PolarityScore{}, "sad")
	assert.Equal(t, "Paris", tr.Summary().CurrentTopic, "no entity keeps the previous topic")

	tr.Update("my new job starts", domain.PolarityScore{}, "excited", "", "job", "work")
	assert.Equal(t, "job", tr.Summary().CurrentTopic, "first non-empty entity wins")
}

func TestExtractEntity(t *testing.T) {
	cases := map[string]string{
		"I love Rome":                "Rome",
		"Berlin is cold":             "",
		"I'm tired. Work was long":   "",
		"we met Anna, then Bob":      "Anna",
		"":                           "",
		"nothing capitalised here":   "",
		"my friend Émile called me!": "Émile",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractEntity(in), in)
	}
}
