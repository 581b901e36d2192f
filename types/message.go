package types

import "time"

// Role represents the role of a message participant.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MetadataKeyRoutePattern is the side-channel metadata key carrying the raw
// routing label produced by a classifier.
const MetadataKeyRoutePattern = "route_pattern"

// Message represents a conversation message. Metadata is a side channel for
// structured values (such as the routing label) that travel alongside the
// visible content.
type Message struct {
	Role      Role           `json:"role"`
	Content   string         `json:"content,omitempty"`
	Name      string         `json:"name,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp,omitempty"`
}

// NewMessage creates a new message with the given role and content.
func NewMessage(role Role, content string) Message {
	return Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) Message {
	return NewMessage(RoleAssistant, content)
}

// WithMetadata adds metadata to the message.
func (m Message) WithMetadata(metadata map[string]any) Message {
	m.Metadata = metadata
	return m
}

// ExecutorResponse is the recognized classifier-response shape: a final
// content string, response-level metadata, and the ordered conversation
// history that produced it.
type ExecutorResponse struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Messages []Message      `json:"messages,omitempty"`
}

// ResponseMetadata returns the response-level side-channel metadata map.
func (r *ExecutorResponse) ResponseMetadata() map[string]any {
	return r.Metadata
}

// ConversationHistory returns the embedded message history, oldest first.
func (r *ExecutorResponse) ConversationHistory() []Message {
	return r.Messages
}
