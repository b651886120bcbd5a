package llm

import "fmt"

// Usage is the token accounting for a provider call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens,omitempty"` // Zero when the provider does not report it
}

// Total returns TotalTokens, or the sum of prompt and completion tokens when
// the provider left it unset.
func (u Usage) Total() int {
	if u.TotalTokens != 0 {
		return u.TotalTokens
	}
	return u.PromptTokens + u.CompletionTokens
}

// Add returns the sum of two usage records.
func (u Usage) Add(other Usage) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CompletionTokens: u.CompletionTokens + other.CompletionTokens,
		TotalTokens:      u.Total() + other.Total(),
	}
}

func (u Usage) String() string {
	return fmt.Sprintf("Usage{promptTokens=%d, completionTokens=%d, totalTokens=%d}",
		u.PromptTokens, u.CompletionTokens, u.Total())
}
