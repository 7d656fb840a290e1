package mqtt

import "fmt"

func TopicSessionEmotion(prefix, sessionID string) string {
	return fmt.Sprintf("%s/session/%s/emotion", prefix, sessionID)
}

func TopicSessionOnline(prefix, sessionID string) string {
	return fmt.Sprintf("%s/session/%s/online", prefix, sessionID)
}

// TopicAllEmotions matches the emotion topic of every session.
func TopicAllEmotions(prefix string) string {
	return fmt.Sprintf("%s/session/+/emotion", prefix)
}
