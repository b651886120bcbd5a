package llm

// Builder assembles a ChatResponse step by step.
type Builder struct {
	generations    []Generation
	metadata       ResponseMetadata
	advisorContext AdvisorContext
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// From seeds the builder with r's generations and a copy of its metadata.
// The advisor context is carried over by reference.
func (b *Builder) From(r *ChatResponse) *Builder {
	b.generations = r.Results()
	b.metadata = r.metadata.Clone()
	b.advisorContext = r.advisorContext
	return b
}

// Generations replaces the generations.
func (b *Builder) Generations(generations []Generation) *Builder {
	b.generations = generations
	return b
}

// AddGeneration appends one generation.
func (b *Builder) AddGeneration(g Generation) *Builder {
	if b.generations == nil {
		b.generations = []Generation{}
	}
	b.generations = append(b.generations, g)
	return b
}

// Metadata replaces the response metadata.
func (b *Builder) Metadata(metadata ResponseMetadata) *Builder {
	b.metadata = metadata
	return b
}

// AdvisorContext sets the advisor context the built response will share.
func (b *Builder) AdvisorContext(advisorContext AdvisorContext) *Builder {
	b.advisorContext = advisorContext
	return b
}

// Build returns the response. It fails with ErrInvalidArgument when no
// generations were set; an unset advisor context becomes an empty one.
func (b *Builder) Build() (*ChatResponse, error) {
	advisorContext := b.advisorContext
	if advisorContext == nil {
		advisorContext = AdvisorContext{}
	}
	return NewChatResponseWithContext(b.generations, b.metadata, advisorContext)
}
