package llm

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"
)

// ResponseMetadata describes a single provider call.
//
// The zero value is the empty metadata: a response built without metadata
// carries EmptyResponseMetadata rather than an absent value, so consumers
// never need to nil-check it.
type ResponseMetadata struct {
	ID             string         `json:"id,omitempty"`              // Provider-assigned response ID
	Model          string         `json:"model,omitempty"`           // Model that produced the response
	Usage          Usage          `json:"usage"`                     // Token accounting
	RateLimit      RateLimit      `json:"rate_limit"`                // Rate limit state after the call
	PromptMetadata PromptMetadata `json:"prompt_metadata,omitempty"` // Per-prompt moderation results
	Extra          map[string]any `json:"extra,omitempty"`           // Provider-specific fields
}

// EmptyResponseMetadata is the metadata used when none is supplied.
var EmptyResponseMetadata ResponseMetadata

// RateLimit is the provider's rate limit state as reported with a response.
type RateLimit struct {
	RequestsLimit     int64         `json:"requests_limit,omitempty"`
	RequestsRemaining int64         `json:"requests_remaining,omitempty"`
	RequestsReset     time.Duration `json:"requests_reset,omitempty"`
	TokensLimit       int64         `json:"tokens_limit,omitempty"`
	TokensRemaining   int64         `json:"tokens_remaining,omitempty"`
	TokensReset       time.Duration `json:"tokens_reset,omitempty"`
}

// PromptMetadata holds moderation results for each prompt of the request.
type PromptMetadata []PromptFilterMetadata

// PromptFilterMetadata is the content filter outcome for one prompt.
type PromptFilterMetadata struct {
	PromptIndex   int            `json:"prompt_index"`
	ContentFilter map[string]any `json:"content_filter,omitempty"`
}

// IsEmpty reports whether m carries no information.
func (m ResponseMetadata) IsEmpty() bool {
	return m.ID == "" &&
		m.Model == "" &&
		m.Usage == (Usage{}) &&
		m.RateLimit == (RateLimit{}) &&
		len(m.PromptMetadata) == 0 &&
		len(m.Extra) == 0
}

// Get returns a provider-specific field.
func (m ResponseMetadata) Get(key string) (any, bool) {
	v, ok := m.Extra[key]
	return v, ok
}

// Clone returns a copy of m that shares no maps or slices with it. Values
// stored inside Extra are copied shallowly.
func (m ResponseMetadata) Clone() ResponseMetadata {
	c := m
	c.Extra = maps.Clone(m.Extra)
	if m.PromptMetadata != nil {
		c.PromptMetadata = make(PromptMetadata, len(m.PromptMetadata))
		for i, p := range m.PromptMetadata {
			c.PromptMetadata[i] = PromptFilterMetadata{
				PromptIndex:   p.PromptIndex,
				ContentFilter: maps.Clone(p.ContentFilter),
			}
		}
	}
	return c
}

// plainMetadata has ResponseMetadata's layout without its methods, so cmp
// does not recurse back into Equal.
type plainMetadata ResponseMetadata

// Equal reports whether m and other hold deeply equal values.
func (m ResponseMetadata) Equal(other ResponseMetadata) bool {
	return cmp.Equal(plainMetadata(m), plainMetadata(other), exportAll)
}

func (m ResponseMetadata) String() string {
	return fmt.Sprintf("ResponseMetadata{id=%s, model=%s, usage=%v, rateLimit=%+v, promptMetadata=%+v, extra=%v}",
		m.ID, m.Model, m.Usage, m.RateLimit, m.PromptMetadata, m.Extra)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (m ResponseMetadata) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if m.ID != "" {
		enc.AddString("id", m.ID)
	}
	if m.Model != "" {
		enc.AddString("model", m.Model)
	}
	enc.AddInt("prompt_tokens", m.Usage.PromptTokens)
	enc.AddInt("completion_tokens", m.Usage.CompletionTokens)
	enc.AddInt("total_tokens", m.Usage.Total())
	if m.RateLimit != (RateLimit{}) {
		enc.AddInt64("requests_remaining", m.RateLimit.RequestsRemaining)
		enc.AddInt64("tokens_remaining", m.RateLimit.TokensRemaining)
	}
	if len(m.Extra) > 0 {
		keys := slices.Sorted(maps.Keys(m.Extra))
		return enc.AddArray("extra_keys", stringArray(keys))
	}
	return nil
}
