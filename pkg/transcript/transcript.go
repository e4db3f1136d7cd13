// Package transcript implements the data plane access to stored
// conversation transcripts. It is used by the operator's data plane probe
// and by operational tooling that inspects conversations.
package transcript

import (
	"time"
)

// Message is a single utterance within a conversation.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Conversation is the transcript document as stored in the container. The
// document ID equals the session ID, which also serves as the partition key,
// so one conversation is always a single point read.
type Conversation struct {
	ID                string    `json:"id"`
	SessionID         string    `json:"sessionId"`
	Timestamp         time.Time `json:"timestamp"`
	Transcripts       []Message `json:"transcripts"`
	ConversationStart time.Time `json:"conversationStart"`
	ConversationEnd   time.Time `json:"conversationEnd"`
	MessageCount      int       `json:"messageCount"`
	UserMessages      int       `json:"userMessages"`
	AssistantMessages int       `json:"assistantMessages"`
}

// NewConversation assembles a transcript document from the raw messages and
// computes the per role counters.
func NewConversation(sessionID string, start time.Time, end time.Time, messages []Message) Conversation {
	c := Conversation{
		ID:                sessionID,
		SessionID:         sessionID,
		Timestamp:         end,
		Transcripts:       messages,
		ConversationStart: start,
		ConversationEnd:   end,
		MessageCount:      len(messages),
	}

	for _, m := range messages {
		switch m.Role {
		case "user":
			c.UserMessages++
		case "assistant":
			c.AssistantMessages++
		}
	}

	return c
}
