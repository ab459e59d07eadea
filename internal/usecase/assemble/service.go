// Package assemble merges embedding, vector search, and graph lookups into
// one best-effort retrieval context per query.
package assemble

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tripweaver/internal/domain"
	"github.com/kailas-cloud/tripweaver/internal/domain/theme"
	"github.com/kailas-cloud/tripweaver/internal/logger"
	"github.com/kailas-cloud/tripweaver/internal/metrics"
)

// Service orchestrates the hybrid-context-assembly pipeline. Every
// provider failure degrades to a neutral result for that step; Assemble
// never fails for anything except an empty query.
type Service struct {
	embedder    Embedder
	vectors     VectorSearcher
	graph       GraphReader
	dimensions  int
	topK        int
	stepTimeout time.Duration
}

// New creates the assembler. dimensions is the embedding dimensionality
// used for the zero-vector fallback; topK caps vector matches.
func New(embedder Embedder, vectors VectorSearcher, graph GraphReader,
	dimensions, topK int, stepTimeout time.Duration,
) *Service {
	return &Service{
		embedder:    embedder,
		vectors:     vectors,
		graph:       graph,
		dimensions:  dimensions,
		topK:        topK,
		stepTimeout: stepTimeout,
	}
}

// Assemble runs the pipeline: normalize → theme → embed (cached) → vector
// search → graph facts + connections → theme filter → stats. The steps are
// a strict dependency chain (graph needs vector-search ids, search needs
// the embedding), so they run sequentially.
func (s *Service) Assemble(ctx context.Context, queryText string) (domain.AssembledContext, error) {
	log := logger.FromContext(ctx)

	query := domain.NormalizeQuery(queryText)
	if query == "" {
		return domain.AssembledContext{}, domain.ErrEmptyQuery
	}

	detected := theme.Detect(query)
	steps := make(map[string]domain.StepStatus, 4)

	embedding, cacheHit := s.embedQuery(ctx, log, query, steps)
	matches := s.searchVectors(ctx, log, embedding, steps)
	facts := s.fetchGraph(ctx, log, domain.EntityIDs(matches), steps)
	facts = filterByTheme(facts, detected)

	connections := len(facts.Connections())
	return domain.AssembledContext{
		Query:     query,
		Embedding: embedding,
		Matches:   matches,
		Facts:     facts,
		Theme:     string(detected),
		Stats: domain.ContextStats{
			Matches:     len(matches),
			Facts:       facts.Len() - connections,
			Connections: connections,
			Theme:       string(detected),
			CacheHit:    cacheHit,
			Steps:       steps,
		},
	}, nil
}

// embedQuery obtains the query embedding through the cache. On provider
// failure it degrades to a zero vector of the configured dimensionality so
// downstream scoring does not crash; the degradation is logged and counted
// rather than swallowed.
func (s *Service) embedQuery(
	ctx context.Context, log *zap.Logger, query string, steps map[string]domain.StepStatus,
) (embedding []float32, cacheHit bool) {
	stepCtx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	result, err := s.embedder.Embed(stepCtx, query)
	if err != nil {
		s.degrade(log, domain.StepEmbedding, steps, err)
		return domain.ZeroVector(s.dimensions), false
	}

	steps[domain.StepEmbedding] = domain.StepOK
	return result.Embedding, result.CacheHit
}

// searchVectors returns top-k matches, degrading to none on failure.
func (s *Service) searchVectors(
	ctx context.Context, log *zap.Logger, embedding []float32, steps map[string]domain.StepStatus,
) []domain.VectorMatch {
	stepCtx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	matches, err := s.vectors.Query(stepCtx, embedding, s.topK)
	if err != nil {
		s.degrade(log, domain.StepVectorQuery, steps, err)
		return nil
	}

	steps[domain.StepVectorQuery] = domain.StepOK
	if len(matches) > s.topK {
		matches = matches[:s.topK]
	}
	return matches
}

// fetchGraph unions relationship and connection facts for the matched
// entities. With no entity ids both lookups are skipped, not degraded.
func (s *Service) fetchGraph(
	ctx context.Context, log *zap.Logger, entityIDs []string, steps map[string]domain.StepStatus,
) *domain.FactSet {
	facts := domain.NewFactSet()
	if len(entityIDs) == 0 {
		steps[domain.StepGraphFacts] = domain.StepSkipped
		steps[domain.StepConnections] = domain.StepSkipped
		return facts
	}

	stepCtx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	rels, err := s.graph.FetchFacts(stepCtx, entityIDs)
	cancel()
	if err != nil {
		s.degrade(log, domain.StepGraphFacts, steps, err)
	} else {
		steps[domain.StepGraphFacts] = domain.StepOK
		facts.Union(rels)
	}

	stepCtx, cancel = context.WithTimeout(ctx, s.stepTimeout)
	conns, err := s.graph.FetchConnections(stepCtx, entityIDs)
	cancel()
	if err != nil {
		s.degrade(log, domain.StepConnections, steps, err)
	} else {
		steps[domain.StepConnections] = domain.StepOK
		facts.Union(conns)
	}

	return facts
}

func (s *Service) degrade(log *zap.Logger, step string, steps map[string]domain.StepStatus, err error) {
	steps[step] = domain.StepDegraded
	metrics.PipelineDegradationsTotal.WithLabelValues(step).Inc()
	log.Warn("Pipeline step degraded to neutral result",
		zap.String("step", step),
		zap.Error(err),
	)
}

// filterByTheme narrows relationship facts to the detected theme.
// Connection facts are sequencing data, not attractions, and pass through
// untouched.
func filterByTheme(facts *domain.FactSet, detected theme.Theme) *domain.FactSet {
	if detected == theme.None {
		return facts
	}

	filtered := domain.NewFactSet(theme.Filter(facts.Relationships(), detected)...)
	filtered.Add(facts.Connections()...)
	return filtered
}
