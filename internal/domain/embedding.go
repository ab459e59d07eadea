package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the
// decorator chain. CacheHit is set by the caching decorator so the
// assembler can report it in context stats.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
	CacheHit     bool
}

// ZeroVector returns the neutral fallback embedding of the given
// dimensionality. Substituted when the provider is unavailable so
// downstream similarity scoring degrades instead of crashing.
func ZeroVector(dim int) []float32 {
	return make([]float32, dim)
}
