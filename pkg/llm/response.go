package llm

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"
)

// AdvisorContext carries side information between response-processing stages.
//
// A ChatResponse stores the AdvisorContext it was given by reference: the
// constructor's caller, the response, and every caller of
// ChatResponse.AdvisorContext observe the same map. It is not synchronized;
// Clone it before handing it to another goroutine.
//
// A context may contain itself, directly or through nested map[string]any
// values; String renders the repeated map as "(this Map)".
type AdvisorContext map[string]any

// Clone returns a shallow copy of c.
func (c AdvisorContext) Clone() AdvisorContext {
	if c == nil {
		return AdvisorContext{}
	}
	return maps.Clone(c)
}

// ChatResponse is the response of a chat model call: the generations the
// provider returned, metadata about the call, and the advisor context.
//
// Generations are copied at construction and never exposed for mutation,
// so they are safe for concurrent reads. The advisor context is shared.
type ChatResponse struct {
	metadata       ResponseMetadata
	results        []Generation
	advisorContext AdvisorContext
}

// NewChatResponse returns a response with empty metadata and an empty
// advisor context.
func NewChatResponse(results []Generation) (*ChatResponse, error) {
	return NewChatResponseWithContext(results, EmptyResponseMetadata, AdvisorContext{})
}

// NewChatResponseWithMetadata returns a response with an empty advisor context.
func NewChatResponseWithMetadata(results []Generation, metadata ResponseMetadata) (*ChatResponse, error) {
	return NewChatResponseWithContext(results, metadata, AdvisorContext{})
}

// NewChatResponseWithContext returns a response holding a copy of results,
// metadata, and advisorContext itself (not a copy). A nil results slice or a
// nil advisorContext fails with ErrInvalidArgument; an empty slice is valid.
func NewChatResponseWithContext(results []Generation, metadata ResponseMetadata, advisorContext AdvisorContext) (*ChatResponse, error) {
	if results == nil {
		return nil, invalidArgument("results", "generations must not be nil")
	}
	if advisorContext == nil {
		return nil, invalidArgument("advisor context", "advisor context must not be nil")
	}

	return &ChatResponse{
		metadata:       metadata,
		results:        slices.Clone(results),
		advisorContext: advisorContext,
	}, nil
}

// Results returns the generations in provider order. The returned slice is a
// copy; modifying it does not affect r.
func (r *ChatResponse) Results() []Generation {
	return slices.Clone(r.results)
}

// Result returns the first generation, or false when there are none.
func (r *ChatResponse) Result() (Generation, bool) {
	if len(r.results) == 0 {
		return Generation{}, false
	}
	return r.results[0], true
}

// Metadata returns the call metadata, EmptyResponseMetadata if none was given.
func (r *ChatResponse) Metadata() ResponseMetadata {
	return r.metadata
}

// AdvisorContext returns the live advisor context. Writes through it are
// visible to every holder of the response.
func (r *ChatResponse) AdvisorContext() AdvisorContext {
	return r.advisorContext
}

// HasToolCalls reports whether any generation requested a tool call.
func (r *ChatResponse) HasToolCalls() bool {
	return slices.ContainsFunc(r.results, func(g Generation) bool {
		return g.Output.HasToolCalls()
	})
}

// HasFinishReasons reports whether any generation finished with one of
// reasons, ignoring case.
func (r *ChatResponse) HasFinishReasons(reasons ...string) bool {
	for _, g := range r.results {
		for _, reason := range reasons {
			if g.HasFinishReason(reason) {
				return true
			}
		}
	}
	return false
}

// exportAll lets cmp descend into unexported fields of values placed in maps.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// Equal reports whether r and other hold deeply equal metadata, generations
// and advisor context. Metadata comparison uses ResponseMetadata.Equal.
//
// Values that compare equal but encode differently, such as the same instant
// in two time zones, are not equal: equal responses always share a Hash.
func (r *ChatResponse) Equal(other *ChatResponse) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r == other {
		return true
	}

	return r.metadata.Equal(other.metadata) &&
		cmp.Equal(r.results, other.results, exportAll) &&
		cmp.Equal(r.advisorContext, other.advisorContext, exportAll) &&
		bytes.Equal(r.canonical(), other.canonical())
}

// Hash returns the hex-encoded SHA-256 of the response's canonical JSON
// encoding. Equal responses have equal hashes.
func (r *ChatResponse) Hash() string {
	h := sha256.Sum256(r.canonical())
	return hex.EncodeToString(h[:])
}

// canonical is the byte form Hash digests.
func (r *ChatResponse) canonical() []byte {
	data, err := json.Marshal(r.wire())
	if err != nil {
		// Context values that JSON cannot encode (channels, funcs, cycles)
		// fall back to the fmt rendering, which is still deterministic.
		return []byte(r.String())
	}
	return data
}

func (r *ChatResponse) String() string {
	return fmt.Sprintf("ChatResponse{metadata=%v, generations=%v, advisorContext=%s}",
		r.metadata, r.results, formatContext(r.advisorContext, nil))
}

// formatContext renders m like fmt's %v, printing a map already being
// rendered further up as "(this Map)" instead of recursing into it.
func formatContext(m map[string]any, seen []uintptr) string {
	ptr := reflect.ValueOf(m).Pointer()
	if m != nil && slices.Contains(seen, ptr) {
		return "(this Map)"
	}
	seen = append(seen, ptr)

	var b strings.Builder
	b.WriteString("map[")
	for i, k := range slices.Sorted(maps.Keys(m)) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(formatValue(m[k], seen))
	}
	b.WriteByte(']')
	return b.String()
}

func formatValue(v any, seen []uintptr) string {
	switch v := v.(type) {
	case AdvisorContext:
		return formatContext(v, seen)
	case map[string]any:
		return formatContext(v, seen)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = formatValue(e, seen)
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

// chatResponseJSON is the JSON layout of a ChatResponse.
type chatResponseJSON struct {
	Metadata       ResponseMetadata `json:"metadata"`
	Results        []Generation     `json:"results"`
	AdvisorContext AdvisorContext   `json:"advisor_context"`
}

func (r *ChatResponse) wire() chatResponseJSON {
	return chatResponseJSON{
		Metadata:       r.metadata,
		Results:        r.results,
		AdvisorContext: r.advisorContext,
	}
}

// MarshalJSON implements json.Marshaler.
func (r *ChatResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

// UnmarshalJSON implements json.Unmarshaler. A document without results
// fails with ErrInvalidArgument; a missing advisor context decodes as empty.
func (r *ChatResponse) UnmarshalJSON(data []byte) error {
	var w chatResponseJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.AdvisorContext == nil {
		w.AdvisorContext = AdvisorContext{}
	}

	decoded, err := NewChatResponseWithContext(w.Results, w.Metadata, w.AdvisorContext)
	if err != nil {
		return err
	}

	*r = *decoded
	return nil
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (r *ChatResponse) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("hash", r.Hash())
	enc.AddInt("result_count", len(r.results))

	if g, ok := r.Result(); ok {
		enc.AddString("finish_reason", g.Metadata.FinishReason)
		enc.AddString("content_preview", truncate(g.Output.Content, 80))
	}
	if r.HasToolCalls() {
		enc.AddBool("tool_calls", true)
	}
	if err := enc.AddObject("metadata", r.metadata); err != nil {
		return err
	}

	keys := slices.Sorted(maps.Keys(r.advisorContext))
	return enc.AddArray("advisor_context_keys", stringArray(keys))
}

type stringArray []string

func (s stringArray) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, v := range s {
		enc.AppendString(v)
	}
	return nil
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
