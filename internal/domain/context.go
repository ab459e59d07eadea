package domain

// Pipeline step names used in stats and degradation metrics.
const (
	StepEmbedding   = "embedding"
	StepVectorQuery = "vector_search"
	StepGraphFacts  = "graph_facts"
	StepConnections = "graph_connections"
)

// StepStatus describes how a pipeline step concluded.
type StepStatus string

const (
	// StepOK means the step ran against its provider and succeeded.
	StepOK StepStatus = "ok"
	// StepDegraded means the provider failed and the step fell back to
	// its neutral result (zero vector, empty matches, empty facts).
	StepDegraded StepStatus = "degraded"
	// StepSkipped means the step had no input to act on (e.g. graph
	// lookup with no entity ids) and was not attempted.
	StepSkipped StepStatus = "skipped"
)

// ContextStats summarizes what went into an assembled context. Returned to
// the caller alongside the answer for observability.
type ContextStats struct {
	Matches     int                   `json:"matches"`
	Facts       int                   `json:"facts"`
	Connections int                   `json:"connections"`
	Theme       string                `json:"theme"`
	CacheHit    bool                  `json:"cache_hit"`
	Steps       map[string]StepStatus `json:"steps"`
}

// Degraded reports whether any pipeline step fell back to its neutral
// result. Lets callers distinguish degraded success from true success.
func (s ContextStats) Degraded() bool {
	for _, st := range s.Steps {
		if st == StepDegraded {
			return true
		}
	}
	return false
}

// AssembledContext is the merged retrieval context for one query. Built
// fresh per request, consumed exactly once by prompt construction, never
// persisted.
type AssembledContext struct {
	Query     string
	Embedding []float32
	Matches   []VectorMatch
	Facts     *FactSet
	Theme     string
	Stats     ContextStats
}
