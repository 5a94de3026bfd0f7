package internal

// Role identifies the author of a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Display returns the human-readable name used in rendered transcripts
func (r Role) Display() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// Message is a single role-tagged entry in a conversation.
// Messages are never mutated after creation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is the ordered message history of one session.
// The core only ever reads it; the shell owns appends.
type Conversation []Message

// Clone returns an independent copy of the conversation
func (c Conversation) Clone() Conversation {
	if c == nil {
		return nil
	}
	out := make(Conversation, len(c))
	copy(out, c)
	return out
}

// HasSystemMessage reports whether any message carries the system role
func (c Conversation) HasSystemMessage() bool {
	for _, m := range c {
		if m.Role == RoleSystem {
			return true
		}
	}
	return false
}
