package llm

import (
	"fmt"
	"strings"
)

// Finish reasons reported by providers. Providers may report others.
const (
	FinishReasonStop          = "stop"
	FinishReasonLength        = "length"
	FinishReasonToolCalls     = "tool_calls"
	FinishReasonContentFilter = "content_filter"
)

// Generation is one output of a chat model call.
type Generation struct {
	Output   AssistantMessage   `json:"output"`
	Metadata GenerationMetadata `json:"metadata"`
}

// GenerationMetadata describes how a single generation ended.
type GenerationMetadata struct {
	FinishReason   string          `json:"finish_reason,omitempty"`
	ContentFilters []ContentFilter `json:"content_filters,omitempty"`
	Extra          map[string]any  `json:"extra,omitempty"`
}

// ContentFilter is a moderation verdict attached to a generation.
type ContentFilter struct {
	Category string `json:"category"`
	Severity string `json:"severity,omitempty"`
	Filtered bool   `json:"filtered"`
}

// NewGeneration returns a generation holding a text-only assistant message.
func NewGeneration(content string, finishReason string) Generation {
	return Generation{
		Output:   NewAssistantMessage(content),
		Metadata: GenerationMetadata{FinishReason: finishReason},
	}
}

// HasFinishReason reports whether the generation finished with reason,
// ignoring case.
func (g Generation) HasFinishReason(reason string) bool {
	return g.Metadata.FinishReason != "" && strings.EqualFold(g.Metadata.FinishReason, reason)
}

func (g Generation) String() string {
	return fmt.Sprintf("Generation{output=%v, metadata=%v}", g.Output, g.Metadata)
}

func (m GenerationMetadata) String() string {
	return fmt.Sprintf("GenerationMetadata{finishReason=%s, contentFilters=%v, extra=%v}",
		m.FinishReason, m.ContentFilters, m.Extra)
}
