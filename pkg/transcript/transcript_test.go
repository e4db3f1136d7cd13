package transcript

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func Test_NewConversation(t *testing.T) {
	start := time.Date(2023, time.March, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Minute)

	messages := []Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi, how can I help?"},
		{Role: "user", Content: "what are your opening hours?"},
		{Role: "system", Content: "call transferred"},
	}

	c := NewConversation("session-1", start, end, messages)

	if c.ID != "session-1" || c.SessionID != "session-1" {
		t.Fatalf("got id %q session %q, want session-1 for both", c.ID, c.SessionID)
	}
	if c.MessageCount != 4 {
		t.Fatalf("got message count %d, want 4", c.MessageCount)
	}
	if c.UserMessages != 2 {
		t.Fatalf("got user messages %d, want 2", c.UserMessages)
	}
	if c.AssistantMessages != 1 {
		t.Fatalf("got assistant messages %d, want 1", c.AssistantMessages)
	}
	if !c.ConversationStart.Equal(start) || !c.ConversationEnd.Equal(end) {
		t.Fatalf("got window %v/%v, want %v/%v", c.ConversationStart, c.ConversationEnd, start, end)
	}
}

func Test_Conversation_JSON(t *testing.T) {
	c := NewConversation("session-2", time.Now().UTC(), time.Now().UTC(), nil)

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() == %#v, want nil", err)
	}

	var keys map[string]interface{}
	err = json.Unmarshal(b, &keys)
	if err != nil {
		t.Fatalf("Unmarshal() == %#v, want nil", err)
	}

	// The document layout is shared with the conversation service reading
	// it, so the field names are part of the contract.
	for _, k := range []string{"id", "sessionId", "timestamp", "conversationStart", "conversationEnd", "messageCount", "userMessages", "assistantMessages"} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("document misses field %q, got %v", k, keys)
		}
	}

	var decoded Conversation
	err = json.Unmarshal(b, &decoded)
	if err != nil {
		t.Fatalf("Unmarshal() == %#v, want nil", err)
	}
	if !cmp.Equal(c, decoded) {
		t.Fatalf("round trip changed the document:\n%s", cmp.Diff(c, decoded))
	}
}
