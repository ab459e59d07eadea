package domain

// Prompt is a two-message chat prompt: a fixed instruction preamble and
// the user turn carrying the serialized retrieval context.
type Prompt struct {
	System string
	User   string
}
