package domain

import "errors"

var (
	// ErrEmptyQuery signals a blank user query.
	ErrEmptyQuery = errors.New("empty query")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrVectorSearchUnavailable signals a vector index failure.
	ErrVectorSearchUnavailable = errors.New("vector search unavailable")
	// ErrGraphUnavailable signals a graph database failure.
	ErrGraphUnavailable = errors.New("graph database unavailable")
	// ErrCompletionProviderError signals a chat completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
	// ErrMalformedResponse signals an unexpected response shape from a provider.
	ErrMalformedResponse = errors.New("malformed provider response")
)
