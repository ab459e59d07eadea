// Package graph reads relationship facts from Neo4j.
package graph

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tripweaver/internal/domain"
)

const (
	// factsQuery fetches direct relationships only: depth 1, never the
	// transitive closure. The row limit bounds response size and cost.
	factsQuery = `MATCH (n:Entity {id: $id})-[r]-(m:Entity)
RETURN type(r) AS rel, m.id AS id, m.name AS name, m.type AS type,
       m.description AS description, m.tags AS tags
LIMIT $limit`

	// connectionsQuery fetches city-to-city connectivity edges used for
	// itinerary sequencing.
	connectionsQuery = `MATCH (c1:City)-[r:CONNECTED_TO]->(c2:City)
WHERE c1.id IN $ids
RETURN c1.id AS from_id, c2.id AS id, c2.name AS name
LIMIT $limit`

	// descriptionMax caps fact descriptions carried into the prompt.
	descriptionMax = 400
)

// runner abstracts read-only cypher execution so the repository can be
// tested without a live database.
type runner interface {
	Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// Repo fetches graph facts with bounded row counts. All operations fail
// closed: on failure at most one retry, then a wrapped
// domain.ErrGraphUnavailable for the caller to degrade on.
type Repo struct {
	runner          runner
	factLimit       int
	connectionLimit int
	logger          *zap.Logger
}

// New creates a graph repository.
func New(r runner, factLimit, connectionLimit int, logger *zap.Logger) *Repo {
	return &Repo{
		runner:          r,
		factLimit:       factLimit,
		connectionLimit: connectionLimit,
		logger:          logger,
	}
}

// FetchFacts returns the direct relationships of the given entities,
// deduplicated by (from, relation, to). A failing per-entity query drops
// only that entity's facts; a total failure returns the error.
func (r *Repo) FetchFacts(ctx context.Context, entityIDs []string) (*domain.FactSet, error) {
	facts := domain.NewFactSet()
	if len(entityIDs) == 0 {
		return facts, nil
	}

	var lastErr error
	failed := 0
	for _, id := range entityIDs {
		rows, err := r.runWithRetry(ctx, factsQuery, map[string]any{
			"id":    id,
			"limit": r.factLimit,
		})
		if err != nil {
			r.logger.Warn("Failed to fetch graph facts", zap.String("entity_id", id), zap.Error(err))
			lastErr = err
			failed++
			continue
		}
		for _, row := range rows {
			facts.Add(rowToFact(id, row))
		}
	}

	if failed == len(entityIDs) && lastErr != nil {
		return domain.NewFactSet(), fmt.Errorf("fetch facts: %w: %w", domain.ErrGraphUnavailable, lastErr)
	}
	return facts, nil
}

// FetchConnections returns city-to-city connection facts for the given
// entities, restricted to the CONNECTED_TO relation.
func (r *Repo) FetchConnections(ctx context.Context, entityIDs []string) (*domain.FactSet, error) {
	facts := domain.NewFactSet()
	if len(entityIDs) == 0 {
		return facts, nil
	}

	rows, err := r.runWithRetry(ctx, connectionsQuery, map[string]any{
		"ids":   entityIDs,
		"limit": r.connectionLimit,
	})
	if err != nil {
		return domain.NewFactSet(), fmt.Errorf("fetch connections: %w: %w", domain.ErrGraphUnavailable, err)
	}

	for _, row := range rows {
		facts.Add(domain.GraphFact{
			From:     stringValue(row, "from_id"),
			Relation: domain.ConnectionRelation,
			To:       stringValue(row, "id"),
			ToName:   stringValue(row, "name"),
			ToType:   "city",
		})
	}
	return facts, nil
}

// runWithRetry runs a query with at most one retry. No backoff beyond the
// single attempt: unbounded retries would turn a graph outage into
// unbounded request latency.
func (r *Repo) runWithRetry(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	rows, err := r.runner.Run(ctx, query, params)
	if err == nil {
		return rows, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	r.logger.Warn("Graph query failed, retrying once", zap.Error(err))
	rows, err = r.runner.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func rowToFact(fromID string, row map[string]any) domain.GraphFact {
	desc := stringValue(row, "description")
	if len(desc) > descriptionMax {
		desc = desc[:descriptionMax]
	}

	return domain.GraphFact{
		From:        fromID,
		Relation:    stringValue(row, "rel"),
		To:          stringValue(row, "id"),
		ToName:      stringValue(row, "name"),
		ToType:      stringValue(row, "type"),
		Description: desc,
		Tags:        stringSlice(row, "tags"),
	}
}

func stringValue(row map[string]any, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

func stringSlice(row map[string]any, key string) []string {
	raw, ok := row[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
