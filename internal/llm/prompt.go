package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
)

// AnalysisSchema renders the JSON schema of domain.Analysis.
func AnalysisSchema() string {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&domain.Analysis{})
	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}

// BuildPrompt assembles the analysis request for text and the optional
// conversation context.
func BuildPrompt(text string, conv *domain.ConversationContext, schema string) string {
	var b strings.Builder
	b.WriteString("Analyze the following text for sentiment, meaning, and appropriate machine reaction:\n\n")
	fmt.Fprintf(&b, "TEXT: %s\n\n", text)

	if conv != nil && len(conv.History) > 0 {
		b.WriteString("CONVERSATION HISTORY:\n")
		for i, turn := range conv.History {
			fmt.Fprintf(&b, "[%d] User: %s\n", i+1, turn.Input)
			fmt.Fprintf(&b, "    Machine reaction: %s\n", turn.Emotion)
		}
		current := conv.CurrentEmotion
		if current == "" {
			current = "neutral"
		}
		fmt.Fprintf(&b, "\nCurrent machine emotion: %s\n", current)
		if conv.CurrentTopic != "" {
			fmt.Fprintf(&b, "Current topic: %s\n", conv.CurrentTopic)
		}
	}

	b.WriteString("\nProvide analysis in JSON format with the following fields:\n")
	b.WriteString("- meaning: literal interpretation of the text\n")
	b.WriteString("- sentiment: positive, negative, neutral, or other appropriate label\n")
	b.WriteString("- sentiment_score: numerical score from -1.0 to 1.0\n")
	b.WriteString("- machine_reaction: how the machine should emotionally react\n")
	b.WriteString("- confidence: confidence score for the analysis\n")
	b.WriteString("- entities: key entities mentioned in the text\n")
	b.WriteString("- intent: user's apparent intent (question, statement, command, etc.)\n")
	if schema != "" {
		b.WriteString("\nThe reply must be a single JSON object matching this schema:\n")
		b.WriteString(schema)
		b.WriteString("\n")
	}
	return b.String()
}

func defaultAnalysis() domain.Analysis {
	return domain.Analysis{
		Sentiment:       "neutral",
		MachineReaction: "neutral",
		Entities:        []string{},
		Intent:          "statement",
	}
}

func APIErrorAnalysis() domain.Analysis {
	return domain.Analysis{
		Meaning:         "API error occurred",
		Sentiment:       "neutral",
		MachineReaction: "confused",
		Entities:        []string{},
		Intent:          "unknown",
	}
}

func ParseFailureAnalysis() domain.Analysis {
	a := APIErrorAnalysis()
	a.Meaning = "Unable to analyze text"
	return a
}

// ParseAnalysis decodes a reply, filling absent fields with defaults.
// Markdown code fences around the JSON are tolerated.
func ParseAnalysis(content string) (domain.Analysis, error) {
	body := strings.TrimSpace(content)
	if strings.HasPrefix(body, "```") {
		body = strings.TrimPrefix(body, "```json")
		body = strings.TrimPrefix(body, "```")
		body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	}
	out := defaultAnalysis()
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return domain.Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	if out.Entities == nil {
		out.Entities = []string{}
	}
	return out, nil
}
