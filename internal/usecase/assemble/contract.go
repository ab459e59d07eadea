package assemble

import (
	"context"

	"github.com/kailas-cloud/tripweaver/internal/domain"
)

// Embedder vectorizes query text (normally the cached decorator chain).
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// VectorSearcher runs nearest-neighbor queries against the place index.
type VectorSearcher interface {
	Query(ctx context.Context, vector []float32, topK int) ([]domain.VectorMatch, error)
}

// GraphReader fetches relationship and connection facts for entities.
type GraphReader interface {
	FetchFacts(ctx context.Context, entityIDs []string) (*domain.FactSet, error)
	FetchConnections(ctx context.Context, entityIDs []string) (*domain.FactSet, error)
}
