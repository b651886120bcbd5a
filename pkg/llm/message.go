package llm

import "fmt"

// RoleAssistant is the role carried by model-generated messages.
const RoleAssistant = "assistant"

// AssistantMessage is the message a model produced for one generation.
type AssistantMessage struct {
	Role       string         `json:"role"`                 // Usually "assistant"
	Content    string         `json:"content"`              // The generated text
	Images     []string       `json:"images,omitempty"`     // Optional base64-encoded images
	ToolCalls  []ToolCall     `json:"tool_calls,omitempty"` // Tool invocations requested by the model
	Properties map[string]any `json:"properties,omitempty"` // Provider-specific message fields
}

// ToolCall is a single tool invocation requested by the model.
type ToolCall struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // e.g. "function"
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // Raw JSON arguments
}

// NewAssistantMessage returns a text-only assistant message.
func NewAssistantMessage(content string) AssistantMessage {
	return AssistantMessage{Role: RoleAssistant, Content: content}
}

// HasToolCalls reports whether the model asked for at least one tool call.
func (m AssistantMessage) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

func (m AssistantMessage) String() string {
	return fmt.Sprintf("AssistantMessage{role=%s, content=%q, images=%d, toolCalls=%v, properties=%v}",
		m.Role, m.Content, len(m.Images), m.ToolCalls, m.Properties)
}
