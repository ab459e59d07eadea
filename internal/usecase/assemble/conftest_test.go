package assemble

import (
	"context"
	"time"

	"github.com/kailas-cloud/tripweaver/internal/domain"
)

const testDimensions = 8

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
	texts  []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	m.texts = append(m.texts, text)
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return m.result, nil
}

type mockVectorSearcher struct {
	matches    []domain.VectorMatch
	err        error
	calls      int
	lastVector []float32
	lastTopK   int
}

func (m *mockVectorSearcher) Query(_ context.Context, vector []float32, topK int) ([]domain.VectorMatch, error) {
	m.calls++
	m.lastVector = vector
	m.lastTopK = topK
	if m.err != nil {
		return nil, m.err
	}
	return m.matches, nil
}

type mockGraphReader struct {
	facts       *domain.FactSet
	connections *domain.FactSet
	factsErr    error
	connsErr    error
	factCalls   int
	connCalls   int
	lastIDs     []string
}

func (m *mockGraphReader) FetchFacts(_ context.Context, entityIDs []string) (*domain.FactSet, error) {
	m.factCalls++
	m.lastIDs = entityIDs
	if m.factsErr != nil {
		return domain.NewFactSet(), m.factsErr
	}
	if m.facts == nil {
		return domain.NewFactSet(), nil
	}
	return m.facts, nil
}

func (m *mockGraphReader) FetchConnections(_ context.Context, entityIDs []string) (*domain.FactSet, error) {
	m.connCalls++
	if m.connsErr != nil {
		return domain.NewFactSet(), m.connsErr
	}
	if m.connections == nil {
		return domain.NewFactSet(), nil
	}
	return m.connections, nil
}

func testVector(v float32) []float32 {
	out := make([]float32, testDimensions)
	for i := range out {
		out[i] = v
	}
	return out
}

func newTestService(e *mockEmbedder, v *mockVectorSearcher, g *mockGraphReader) *Service {
	return New(e, v, g, testDimensions, 5, time.Second)
}
