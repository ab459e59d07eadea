// Package vector maps KNN hits from the index store to domain matches.
package vector

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/tripweaver/internal/db"
	"github.com/kailas-cloud/tripweaver/internal/domain"
)

// store is the consumer interface for KNN search (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Fields indexed per place document.
const (
	fieldEntityID = "entity_id"
	fieldName     = "name"
	fieldType     = "type"
	fieldCity     = "city"
	fieldTags     = "tags"
)

// Repo runs similarity queries against the place index.
type Repo struct {
	store     store
	indexName string
}

// New creates a vector search repository scoped to one FT index.
func New(s store, indexName string) *Repo {
	return &Repo{store: s, indexName: indexName}
}

// Query returns up to topK matches ordered descending by similarity.
// Any store failure is wrapped in domain.ErrVectorSearchUnavailable so the
// assembler can degrade to "no semantic matches".
func (r *Repo) Query(ctx context.Context, vector []float32, topK int) ([]domain.VectorMatch, error) {
	q := &db.KNNQuery{
		IndexName:    r.indexName,
		Vector:       vector,
		K:            topK,
		ReturnFields: []string{fieldEntityID, fieldName, fieldType, fieldCity, fieldTags},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w: %w", domain.ErrVectorSearchUnavailable, err)
	}

	matches := make([]domain.VectorMatch, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		matches = append(matches, entryToMatch(e))
	}
	return matches, nil
}

func entryToMatch(e db.SearchEntry) domain.VectorMatch {
	id := e.Fields[fieldEntityID]
	if id == "" {
		// Fall back to the document key minus the storage prefix.
		id = e.Key
		if i := strings.LastIndexByte(id, ':'); i >= 0 {
			id = id[i+1:]
		}
	}

	return domain.VectorMatch{
		EntityID: id,
		Score:    e.Score,
		Name:     e.Fields[fieldName],
		Type:     e.Fields[fieldType],
		City:     e.Fields[fieldCity],
		Tags:     splitTags(e.Fields[fieldTags]),
	}
}

// splitTags parses the comma-separated TAG field format.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
