package domain

import "time"

// PolarityScore is the lexicon scorer output for one text span.
type PolarityScore struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

type ConversationTurn struct {
	Input     string        `json:"input"`
	Emotion   string        `json:"emotion"`
	Score     PolarityScore `json:"score"`
	Timestamp time.Time     `json:"timestamp"`
}

// ConversationContext is a read-only view of the tracker state.
type ConversationContext struct {
	CurrentEmotion string             `json:"current_emotion"`
	CurrentTopic   string             `json:"current_topic,omitempty"`
	History        []ConversationTurn `json:"history"`
	EmotionHistory []string           `json:"emotion_history,omitempty"`
}

// Analysis is the reply of the remote analysis endpoint.
type Analysis struct {
	Meaning         string   `json:"meaning" jsonschema:"description=literal interpretation of the text"`
	Sentiment       string   `json:"sentiment" jsonschema_description:"positive, negative, neutral or another fitting label"`
	SentimentScore  float64  `json:"sentiment_score" jsonschema:"minimum=-1,maximum=1"`
	MachineReaction string   `json:"machine_reaction" jsonschema:"description=how the machine should emotionally react"`
	Confidence      float64  `json:"confidence" jsonschema:"minimum=0,maximum=1"`
	Entities        []string `json:"entities" jsonschema:"description=key entities mentioned in the text"`
	Intent          string   `json:"intent" jsonschema_description:"question, statement, command, greeting or similar"`
}

type TurnResult struct {
	SessionID  string        `json:"session_id"`
	TurnID     string        `json:"turn_id"`
	Input      string        `json:"input"`
	Emotion    string        `json:"emotion"`
	Reply      string        `json:"reply"`
	Score      PolarityScore `json:"score"`
	Source     string        `json:"source"`
	Bucket     string        `json:"bucket"`
	Category   string        `json:"category"`
	Compound   float64       `json:"adjusted_compound"`
	Topic      string        `json:"topic,omitempty"`
	Analysis   *Analysis     `json:"analysis,omitempty"`
	ReceivedAt time.Time     `json:"received_at"`
}

// MQTT payloads

type EmotionUpdatePayload struct {
	SessionID string  `json:"session_id"`
	TurnID    string  `json:"turn_id"`
	Emotion   string  `json:"emotion"`
	Category  string  `json:"category"`
	Bucket    string  `json:"bucket"`
	Compound  float64 `json:"compound"`
	Source    string  `json:"source"`
	Reply     string  `json:"reply"`
	TS        string  `json:"ts"`
}
